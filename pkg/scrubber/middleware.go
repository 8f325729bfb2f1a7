package scrubber

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/dmitrymomot/inputguard/core"
	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// DefaultMaxBodySize is the body limit used when none is configured (1 MiB).
const DefaultMaxBodySize int64 = 1 << 20

const spanName = "inputguard.scrub"

type scrubber struct {
	sanitizer   *sanitizer.Sanitizer
	surfaces    Surface
	maxBodySize int64
	logger      *slog.Logger
	metrics     Metrics
	tracer      trace.Tracer
	onError     ErrorHandler
}

// Middleware rewrites the body, query string and chi route parameters of each
// request with their sanitized versions before calling next. A request that
// cannot be sanitized never reaches next.
//
// It panics if s is nil.
func Middleware(s *sanitizer.Sanitizer, opts ...Option) func(http.Handler) http.Handler {
	if s == nil {
		panic("scrubber.Middleware: nil sanitizer")
	}
	sc := &scrubber{
		sanitizer:   s,
		surfaces:    SurfaceAll,
		maxBodySize: DefaultMaxBodySize,
		logger:      logger.Discard(),
		metrics:     noopMetrics{},
		tracer:      tracenoop.NewTracerProvider().Tracer("inputguard"),
		onError:     DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(sc)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, span := sc.tracer.Start(r.Context(), spanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("inputguard.surfaces", sc.surfaces.String())),
			)
			r = r.WithContext(ctx)

			surface, err := sc.scrub(r)
			elapsed := time.Since(start)
			if err != nil {
				outcome := OutcomeRejected
				if errors.Is(err, ErrBodyTooLarge) {
					outcome = OutcomeTooLarge
				}
				span.SetStatus(codes.Error, outcome)
				span.RecordError(err)
				span.SetAttributes(attribute.String("inputguard.failed_surface", surface.String()))
				span.End()

				sc.metrics.RecordRequest(ctx, outcome, sc.surfaces, elapsed)
				sc.logger.WarnContext(ctx, "request rejected by input scrubber",
					logger.Component("scrubber"),
					logger.Surface(surface.String()),
					logger.Error(err),
				)
				sc.onError(w, r, err)
				return
			}

			span.SetStatus(codes.Ok, "")
			span.End()
			sc.metrics.RecordRequest(ctx, OutcomeOK, sc.surfaces, elapsed)

			next.ServeHTTP(w, r)
		})
	}
}

// scrub returns the surface that failed along with the error.
func (sc *scrubber) scrub(r *http.Request) (Surface, error) {
	if sc.surfaces.Has(SurfaceParams) {
		if err := scrubParams(r, sc.sanitizer); err != nil {
			return SurfaceParams, err
		}
	}
	if sc.surfaces.Has(SurfaceQuery) {
		if err := scrubQuery(r, sc.sanitizer); err != nil {
			return SurfaceQuery, err
		}
	}
	if sc.surfaces.Has(SurfaceBody) {
		if err := scrubBody(r, sc.sanitizer, sc.maxBodySize); err != nil {
			return SurfaceBody, err
		}
	}
	return 0, nil
}

// DefaultErrorHandler answers 413 for oversized bodies and a generic 400
// invalid_input for every other failure.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := core.ErrInvalidInput
	if errors.Is(err, ErrBodyTooLarge) {
		httpErr = core.ErrRequestEntityTooLarge
	}
	_ = core.JSONError(httpErr).Render(w, r)
}
