package scrubber

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// ErrorHandler writes the response for a request that failed sanitization.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures the middleware.
type Option func(*scrubber)

// WithLogger sets the logger used for rejected requests.
func WithLogger(l *slog.Logger) Option {
	return func(s *scrubber) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodySize limits how many body bytes are read. Larger bodies fail with
// ErrBodyTooLarge.
func WithMaxBodySize(n int64) Option {
	if n <= 0 {
		panic("WithMaxBodySize: size must be > 0")
	}
	return func(s *scrubber) { s.maxBodySize = n }
}

// WithErrorHandler replaces the default JSON error response.
func WithErrorHandler(h ErrorHandler) Option {
	if h == nil {
		panic("WithErrorHandler: nil handler")
	}
	return func(s *scrubber) { s.onError = h }
}

// WithMetrics records request outcomes on m. See NewMetrics.
func WithMetrics(m Metrics) Option {
	return func(s *scrubber) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer wraps each request's sanitization in a span from t.
func WithTracer(t trace.Tracer) Option {
	return func(s *scrubber) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithSurfaces restricts which parts of the request are rewritten.
func WithSurfaces(surfaces Surface) Option {
	return func(s *scrubber) { s.surfaces = surfaces & SurfaceAll }
}
