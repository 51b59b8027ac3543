package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, 201, map[string]string{"id": "abc"})

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestRespondJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, 204, nil)

	assert.Equal(t, 204, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, 404, "goal not found")

	assert.Equal(t, 404, rec.Code)
	assert.JSONEq(t, `{"error":"goal not found"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Run"}`))
	require.NoError(t, decodeJSON(req, &dst))
	assert.Equal(t, "Run", dst.Title)

	// Unknown fields are rejected
	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Run","bogus":1}`))
	assert.Error(t, decodeJSON(req, &dst))

	// Malformed JSON is rejected
	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))
	assert.Error(t, decodeJSON(req, &dst))

	// Oversized bodies are rejected
	big := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req = httptest.NewRequest("POST", "/", strings.NewReader(big))
	assert.Error(t, decodeJSON(req, &dst))
}
