package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "templatehub/internal/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]int{"count": 3}, quietLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["data"].(map[string]any)["count"])
	assert.NotContains(t, body, "error")
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, "nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "nope", body["error"])
}

func TestHandleError_DomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domainerrors.NotFoundf("template %q not found", "x"), http.StatusNotFound, "NOT_FOUND"},
		{"unavailable", domainerrors.ContentUnavailable("content unavailable", errors.New("boom")), http.StatusServiceUnavailable, "CONTENT_UNAVAILABLE"},
		{"rate limited", domainerrors.New(domainerrors.CodeRateLimited, "slow down"), http.StatusTooManyRequests, "RATE_LIMITED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err, quietLogger())

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, domainerrors.ValidationWithDetails("validation failed", map[string]string{"title": "is required"}), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "is required", body["details"].(map[string]any)["title"])
}

func TestHandleError_Unknown(t *testing.T) {
	w := httptest.NewRecorder()
	HandleError(w, errors.New("secret internals"), quietLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, w.Body.String(), "secret internals")
}
