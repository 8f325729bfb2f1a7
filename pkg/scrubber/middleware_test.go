package scrubber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
	"github.com/dmitrymomot/inputguard/pkg/scrubber"
)

type captured struct {
	called      bool
	body        string
	contentType string
	query       string
	param       string
	pathValue   string
}

func newRouter(t *testing.T, opts ...scrubber.Option) (http.Handler, *captured) {
	t.Helper()
	got := &captured{}
	s := sanitizer.New()

	r := chi.NewRouter()
	r.With(scrubber.Middleware(s, opts...)).HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		got.called = true
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got.body = string(data)
		got.contentType = r.Header.Get("Content-Type")
		got.query = r.URL.Query().Get("q")
		got.param = chi.URLParam(r, "id")
		got.pathValue = r.PathValue("id")
		w.WriteHeader(http.StatusOK)
	})
	return r, got
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_JSONBody(t *testing.T) {
	t.Parallel()

	h, got := newRouter(t)
	body := `{"user":{"name":"<script>x</script>John","tags":["<b>a</b>",1,true,null]},"z":"ok","a":"<i>"}`
	req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, got.called)

	want := `{"user":{"name":"xJohn","tags":["&lt;b&gt;a&lt;/b&gt;",1,true,null]},"z":"ok","a":"&lt;i&gt;"}`
	assert.Equal(t, want, got.body, "key order and non-string leaves survive")
}

func TestMiddleware_VendorJSON(t *testing.T) {
	t.Parallel()

	h, got := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(`["<b>"]`))
	req.Header.Set("Content-Type", "application/vnd.api+json")

	require.Equal(t, http.StatusOK, serve(h, req).Code)
	assert.Equal(t, `["&lt;b&gt;"]`, got.body)
}

func TestMiddleware_FormBody(t *testing.T) {
	t.Parallel()

	var name string
	r := chi.NewRouter()
	r.With(scrubber.Middleware(sanitizer.New())).Post("/form", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		name = r.PostFormValue("name")
	})
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("name=%3Cb%3EJohn%3C%2Fb%3E&age=3"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusOK, serve(r, req).Code)
	assert.Equal(t, "&lt;b&gt;John&lt;/b&gt;", name)
}

func TestMiddleware_QueryAndParams(t *testing.T) {
	t.Parallel()

	h, got := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/items/%3Cb%3Ex?q=%3Cscript%3Ealert(1)%3C%2Fscript%3Ehi", nil)

	require.Equal(t, http.StatusOK, serve(h, req).Code)
	assert.Equal(t, "alert(1)hi", got.query)
	assert.Equal(t, "&lt;b&gt;x", got.param)
	assert.Equal(t, "&lt;b&gt;x", got.pathValue)
}

func TestMiddleware_Params(t *testing.T) {
	t.Parallel()

	t.Run("path value matches url param", func(t *testing.T) {
		t.Parallel()
		h, got := newRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/items/%3Cb%20onclick=x%3E", nil)

		require.Equal(t, http.StatusOK, serve(h, req).Code)
		assert.Equal(t, "&lt;b &gt;", got.param)
		assert.Equal(t, "&lt;b &gt;", got.pathValue)
	})

	t.Run("escaped path is decoded before cleaning", func(t *testing.T) {
		t.Parallel()
		h, got := newRouter(t)
		// %2F keeps URL.RawPath set, so chi matches on the escaped form.
		req := httptest.NewRequest(http.MethodGet, "/items/%3Cscript%3Ealert(1)%3C%2Fscript%3E", nil)
		require.NotEmpty(t, req.URL.RawPath)

		require.Equal(t, http.StatusOK, serve(h, req).Code)
		assert.Equal(t, "alert(1)", got.param)
		assert.Equal(t, "alert(1)", got.pathValue)
	})

	t.Run("escaped safe value", func(t *testing.T) {
		t.Parallel()
		h, got := newRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/items/a%2Fb", nil)

		require.Equal(t, http.StatusOK, serve(h, req).Code)
		assert.Equal(t, "a/b", got.param)
		assert.Equal(t, "a/b", got.pathValue)
	})
}

func TestMiddleware_PassThrough(t *testing.T) {
	t.Parallel()

	t.Run("other media types", func(t *testing.T) {
		t.Parallel()
		h, got := newRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader("<b>raw</b>"))
		req.Header.Set("Content-Type", "text/plain")

		require.Equal(t, http.StatusOK, serve(h, req).Code)
		assert.Equal(t, "<b>raw</b>", got.body)
	})

	t.Run("empty json body", func(t *testing.T) {
		t.Parallel()
		h, got := newRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/items/1", http.NoBody)
		req.Header.Set("Content-Type", "application/json")

		require.Equal(t, http.StatusOK, serve(h, req).Code)
		assert.True(t, got.called)
		assert.Empty(t, got.body)
	})

	t.Run("safe request", func(t *testing.T) {
		t.Parallel()
		h, got := newRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/items/42?q=plain", strings.NewReader(`{"b":2,"a":"hello"}`))
		req.Header.Set("Content-Type", "application/json")

		require.Equal(t, http.StatusOK, serve(h, req).Code)
		assert.Equal(t, `{"b":2,"a":"hello"}`, got.body)
		assert.Equal(t, "plain", got.query)
		assert.Equal(t, "42", got.param)
	})
}

func TestMiddleware_Rejections(t *testing.T) {
	t.Parallel()

	deep := strings.Repeat("[", 200) + strings.Repeat("]", 200)

	tests := []struct {
		name     string
		target   string
		body     string
		ctype    string
		opts     []scrubber.Option
		wantCode int
		wantKey  string
	}{
		{
			name:     "malformed json",
			target:   "/items/1",
			body:     `{"a":`,
			ctype:    "application/json",
			wantCode: http.StatusBadRequest,
			wantKey:  "invalid_input",
		},
		{
			name:     "too deep",
			target:   "/items/1",
			body:     deep,
			ctype:    "application/json",
			wantCode: http.StatusBadRequest,
			wantKey:  "invalid_input",
		},
		{
			name:     "body too large",
			target:   "/items/1",
			body:     `{"a":"` + strings.Repeat("x", 64) + `"}`,
			ctype:    "application/json",
			opts:     []scrubber.Option{scrubber.WithMaxBodySize(16)},
			wantCode: http.StatusRequestEntityTooLarge,
			wantKey:  "request_entity_too_large",
		},
		{
			name:     "string that does not settle",
			target:   "/items/1",
			body:     `{"a":"` + strings.Repeat("java", 5) + strings.Repeat("script:", 5) + `"}`,
			ctype:    "application/json",
			wantCode: http.StatusBadRequest,
			wantKey:  "invalid_input",
		},
		{
			name:     "malformed query",
			target:   "/items/1?a=%zz",
			wantCode: http.StatusBadRequest,
			wantKey:  "invalid_input",
		},
		{
			name:     "malformed form",
			target:   "/items/1",
			body:     "a=%zz",
			ctype:    "application/x-www-form-urlencoded",
			wantCode: http.StatusBadRequest,
			wantKey:  "invalid_input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, got := newRouter(t, tt.opts...)
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}

			rec := serve(h, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.False(t, got.called, "handler must not run")

			var resp struct {
				Code  string `json:"code"`
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKey, resp.Error.Code)
			assert.Equal(t, http.StatusText(tt.wantCode), resp.Error.Message)
		})
	}
}

func TestMiddleware_WithSurfaces(t *testing.T) {
	t.Parallel()

	h, got := newRouter(t, scrubber.WithSurfaces(scrubber.SurfaceBody))
	req := httptest.NewRequest(http.MethodPost, "/items/%3Cb%3E?q=%3Ci%3E", strings.NewReader(`"<u>"`))
	req.Header.Set("Content-Type", "application/json")

	require.Equal(t, http.StatusOK, serve(h, req).Code)
	assert.Equal(t, `"&lt;u&gt;"`, got.body)
	assert.Equal(t, "<i>", got.query)
	assert.Equal(t, "<b>", got.param)
}

func TestMiddleware_WithErrorHandler(t *testing.T) {
	t.Parallel()

	var seen error
	h, _ := newRouter(t, scrubber.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		seen = err
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")

	assert.Equal(t, http.StatusTeapot, serve(h, req).Code)
	assert.ErrorIs(t, seen, scrubber.ErrInvalidBody)
}

func TestMiddleware_UpdatesContentLength(t *testing.T) {
	t.Parallel()

	var length int64
	var replay []byte
	r := chi.NewRouter()
	r.With(scrubber.Middleware(sanitizer.New())).Post("/", func(w http.ResponseWriter, r *http.Request) {
		length = r.ContentLength
		body, err := r.GetBody()
		require.NoError(t, err)
		replay, err = io.ReadAll(body)
		require.NoError(t, err)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`"<b>"`)))
	req.Header.Set("Content-Type", "application/json")
	serve(r, req)

	assert.Equal(t, int64(len(`"&lt;b&gt;"`)), length)
	assert.Equal(t, `"&lt;b&gt;"`, string(replay))
}

func TestMiddleware_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { scrubber.Middleware(nil) })
	assert.Panics(t, func() { scrubber.WithMaxBodySize(0) })
	assert.Panics(t, func() { scrubber.WithErrorHandler(nil) })
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	scrubber.DefaultErrorHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("internal detail"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "internal detail")
}

func TestSurface_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", scrubber.Surface(0).String())
	assert.Equal(t, "body|query|params", scrubber.SurfaceAll.String())
	assert.Equal(t, "query", scrubber.SurfaceQuery.String())
	assert.True(t, scrubber.SurfaceAll.Has(scrubber.SurfaceParams))
	assert.False(t, scrubber.SurfaceBody.Has(scrubber.SurfaceQuery))
}
