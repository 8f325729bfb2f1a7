// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware keeps a client supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-]; anything else, including markup, is replaced
// with a fresh UUID. The id is stored in the request context and returned in
// the response header. LoggerExtractor plugs it into pkg/logger.
package requestid
