// Package scrubber is HTTP middleware that sanitizes everything a handler is
// about to read from a request.
//
// Three surfaces are rewritten before the next handler runs:
//
//   - body: application/json (and +json) bodies are decoded with key order
//     preserved, sanitized and re-encoded; form bodies are parsed and
//     re-encoded. Other media types pass through untouched.
//   - query: r.URL.RawQuery is rebuilt from sanitized values.
//   - params: chi route parameter values are replaced in place and mirrored
//     into r.PathValue. Values chi matched on the escaped path are unescaped
//     first.
//
// A request that cannot be sanitized, such as malformed JSON or nesting past
// the sanitizer depth limit, is answered with 400 invalid_input and never
// reaches the handler. Bodies over the size limit get 413.
//
// Route parameters only exist after chi has matched the route, so attach the
// middleware per route when the params surface matters:
//
//	r.With(scrubber.Middleware(s)).Post("/users/{id}", h)
//
// NewMetrics wires OpenTelemetry instruments, including gauges for the
// sanitizer cache; WithTracer adds a span per request.
package scrubber
