package postgresql

import (
	"context"
	"os"
	"testing"

	"github.com/madar-hris/hrms-backend-go/internal/pkg/database"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The state table tests need a live database; set TEST_DATABASE_URL to run them.
func stateTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, 2)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

var _ storage.BlobStore = (*StateRepository)(nil)
var _ storage.BatchPutter = (*StateRepository)(nil)

func TestStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(stateTestDB(t))
	require.NoError(t, repo.EnsureSchema(ctx))

	const key = "hrms_test_collection"
	require.NoError(t, repo.Delete(ctx, key))

	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrBlobNotFound)

	require.NoError(t, repo.Put(ctx, key, []byte(`[{"id":"a"}]`)))
	require.NoError(t, repo.Put(ctx, key, []byte(`[{"id":"b"}]`)))

	data, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b"}]`, string(data))

	ok, err := repo.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.PutMany(ctx, map[string][]byte{
		key:            []byte(`[]`),
		key + "_other": []byte(`{"x":1}`),
	}))
	data, err = repo.Get(ctx, key+"_other")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, string(data))

	require.NoError(t, repo.Delete(ctx, key))
	require.NoError(t, repo.Delete(ctx, key+"_other"))
}
