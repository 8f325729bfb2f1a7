package scrubber

import (
	"net/http"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// Config holds environment-driven settings for the middleware.
type Config struct {
	MaxBodySize int64 `env:"SCRUBBER_MAX_BODY_SIZE" envDefault:"1048576"`
}

// MiddlewareFromConfig creates the middleware from cfg. Zero values keep the
// defaults; opts run last.
func MiddlewareFromConfig(cfg Config, s *sanitizer.Sanitizer, opts ...Option) func(http.Handler) http.Handler {
	configOpts := make([]Option, 0, 1+len(opts))
	if cfg.MaxBodySize > 0 {
		configOpts = append(configOpts, WithMaxBodySize(cfg.MaxBodySize))
	}
	configOpts = append(configOpts, opts...)
	return Middleware(s, configOpts...)
}
