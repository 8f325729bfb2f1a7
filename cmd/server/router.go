package main

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/inputguard/core"
	"github.com/dmitrymomot/inputguard/pkg/clientip"
	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

type routerDeps struct {
	sanitizer      *sanitizer.Sanitizer
	scrubber       func(http.Handler) http.Handler
	metricsHandler http.Handler
	logger         *slog.Logger
}

// echoResponse mirrors what a handler behind the scrubber sees.
type echoResponse struct {
	ID    string     `json:"id"`
	Query url.Values `json:"query,omitempty"`
	Body  any        `json:"body,omitempty"`
}

func newRouter(d routerDeps) http.Handler {
	if d.logger == nil {
		d.logger = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware())
	r.Use(middleware.Recoverer)

	r.NotFound(core.HandlerFunc(func(*http.Request) core.Response {
		return core.JSONError(core.ErrNotFound)
	}).ServeHTTP)
	r.MethodNotAllowed(core.HandlerFunc(func(*http.Request) core.Response {
		return core.JSONError(core.ErrMethodNotAllowed)
	}).ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ALIVE")
	})
	if d.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.metricsHandler)
	}

	r.Route("/cache", func(r chi.Router) {
		r.Method(http.MethodGet, "/", core.HandlerFunc(func(*http.Request) core.Response {
			return core.JSON("ok", d.sanitizer.CacheStats(), nil)
		}))
		r.Method(http.MethodDelete, "/", core.HandlerFunc(func(req *http.Request) core.Response {
			d.sanitizer.ClearCache()
			d.logger.InfoContext(req.Context(), "sanitizer cache cleared via api", logger.Component("server"))
			return core.JSON("cleared", d.sanitizer.CacheStats(), nil)
		}))
	})

	echo := core.HandlerFunc(handleEcho)
	r.With(d.scrubber).Method(http.MethodGet, "/echo/{id}", echo)
	r.With(d.scrubber).Method(http.MethodPost, "/echo/{id}", echo)

	return r
}

func handleEcho(r *http.Request) core.Response {
	resp := echoResponse{
		ID:    chi.URLParam(r, "id"),
		Query: r.URL.Query(),
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/json":
		if r.ContentLength == 0 {
			break
		}
		body, err := sanitizer.DecodeJSON(r.Body)
		if err != nil {
			return core.JSONError(core.ErrBadRequest)
		}
		resp.Body = body
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return core.JSONError(core.ErrBadRequest)
		}
		resp.Body = r.PostForm
	}

	return core.JSON("ok", resp, map[string]any{"request_id": requestid.FromContext(r.Context())})
}
