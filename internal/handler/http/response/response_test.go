package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestList(t *testing.T) {
	tests := []struct {
		name      string
		items     []string
		scope     Meta
		wantTotal float64
		wantMonth interface{}
	}{
		{"counts items", []string{"a", "b"}, Meta{Month: "2024-05"}, 2, "2024-05"},
		{"nil is empty", nil, Meta{}, 0, nil},
		{"total is recomputed", []string{"a"}, Meta{Total: 9}, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			List(rec, tt.items, tt.scope)

			assert.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, true, body["success"])
			assert.NotNil(t, body["data"])
			meta := body["meta"].(map[string]interface{})
			assert.Equal(t, tt.wantTotal, meta["total"])
			assert.Equal(t, tt.wantMonth, meta["month"])
		})
	}
}

func TestReport(t *testing.T) {
	rec := httptest.NewRecorder()
	Report(rec, map[string]interface{}{"date": "2024-05-02", "rows": []int{1, 2, 3}}, 3, Meta{Date: "2024-05-02"})

	body := decode(t, rec)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, "2024-05-02", meta["date"])
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"name": "is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["data"])
	detail := body["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", detail["code"])
	assert.Equal(t, map[string]interface{}{"name": "is required"}, detail["details"])
}
