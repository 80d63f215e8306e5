package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ok, err := s.Exists(ctx, "hrms_employees")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Get(ctx, "hrms_employees")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, s.Put(ctx, "hrms_employees", []byte(`[{"id":"e1"}]`)))
	require.NoError(t, s.Put(ctx, "hrms_employees", []byte(`[{"id":"e2"}]`)))

	data, err := s.Get(ctx, "hrms_employees")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"e2"}]`, string(data))

	ok, err = s.Exists(ctx, "hrms_employees")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "hrms_employees"))
	require.NoError(t, s.Delete(ctx, "hrms_employees"))
	ok, _ = s.Exists(ctx, "hrms_employees")
	assert.False(t, ok)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Put(context.Background(), "../outside", []byte("x"))
	assert.Error(t, err)
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	buf := []byte("v1")
	require.NoError(t, s.Put(ctx, "k", buf))
	buf[0] = 'x'

	data, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}
