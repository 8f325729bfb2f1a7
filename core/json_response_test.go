package core_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/core"
)

func render(t *testing.T, resp core.Response) (*httptest.ResponseRecorder, core.JSONResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))

	var got core.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return w, got
}

func TestJSON(t *testing.T) {
	t.Parallel()

	w, got := render(t, core.JSON("ok", map[string]any{"name": "&lt;b&gt;"}, map[string]any{"request_id": "abc"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"&lt;b&gt;"`, "ampersands are not escaped")
	assert.Equal(t, "ok", got.Code)
	assert.Equal(t, map[string]any{"name": "&lt;b&gt;"}, got.Data)
	assert.Equal(t, "abc", got.Meta["request_id"])
	assert.Nil(t, got.Error)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
	}{
		{name: "invalid input", err: core.ErrInvalidInput, wantCode: http.StatusBadRequest, wantKey: "invalid_input"},
		{name: "wrapped", err: fmt.Errorf("decode body: %w", core.ErrRequestEntityTooLarge), wantCode: http.StatusRequestEntityTooLarge, wantKey: "request_entity_too_large"},
		{name: "joined", err: errors.Join(errors.New("x"), core.ErrNotFound), wantCode: http.StatusNotFound, wantKey: "not_found"},
		{name: "plain error", err: errors.New("secret db dsn"), wantCode: http.StatusInternalServerError, wantKey: "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, got := render(t, core.JSONError(tt.err))
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantKey, got.Code)
			require.NotNil(t, got.Error)
			assert.Equal(t, tt.wantKey, got.Error.Code)
			assert.Equal(t, http.StatusText(tt.wantCode), got.Error.Message)
			assert.NotContains(t, w.Body.String(), "secret")
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "invalid_input", core.ErrInvalidInput.Error())

	e := core.NewHTTPError(http.StatusTeapot, "")
	assert.Equal(t, http.StatusTeapot, e.Code)
	assert.Equal(t, "http_418", e.Key)

	assert.Equal(t, "custom", core.NewHTTPError(http.StatusConflict, "custom").Key)
}

func TestHandlerFunc(t *testing.T) {
	t.Parallel()

	t.Run("renders response", func(t *testing.T) {
		t.Parallel()
		h := core.HandlerFunc(func(r *http.Request) core.Response {
			return core.JSONError(core.ErrNotFound)
		})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("nil response is 204", func(t *testing.T) {
		t.Parallel()
		h := core.HandlerFunc(func(r *http.Request) core.Response { return nil })
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
