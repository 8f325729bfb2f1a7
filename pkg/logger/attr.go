package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// Empty ids produce an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Surface records which part of a request was being processed: body, query or params.
func Surface(name string) slog.Attr {
	return slog.String("surface", name)
}

// Depth records the nesting depth reached while walking a value.
func Depth(depth int) slog.Attr {
	return slog.Int("depth", depth)
}

// Duration records a duration in milliseconds under the key "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Float64("duration_ms", float64(d.Microseconds())/1000)
}

// CacheStats groups cache counters under the key "cache".
func CacheStats(size, maxSize int, hitRate float64) slog.Attr {
	return Group("cache",
		slog.Int("size", size),
		slog.Int("max_size", maxSize),
		slog.Float64("hit_rate", hitRate),
	)
}

// ClientIP records the client address under the key "client_ip".
func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}
