package sanitizer

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/inputguard/pkg/cache"
	"github.com/dmitrymomot/inputguard/pkg/logger"
)

const (
	// DefaultMaxDepth is the deepest container nesting Sanitize accepts.
	DefaultMaxDepth = 128
	// DefaultCacheSize is the maximum number of memoized strings.
	DefaultCacheSize = 1000
	// DefaultMaxCacheEntryLength is the longest string (in bytes) that gets memoized.
	DefaultMaxCacheEntryLength = 1024
)

// CacheStats describes the result cache of a Sanitizer.
type CacheStats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	HitRate float64 `json:"hit_rate"`
}

// Sanitizer walks untrusted values and cleans every string leaf. It owns a
// bounded cache of string results and is safe for concurrent use.
type Sanitizer struct {
	detector       *Detector
	cache          *cache.BatchCache[string, string]
	maxDepth       int
	cacheSize      int
	maxEntryLength int
	evictRatio     float64
	cacheSafe      bool
	logger         *slog.Logger
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithMaxDepth sets the deepest container nesting accepted by Sanitize.
func WithMaxDepth(n int) Option {
	if n <= 0 {
		panic("WithMaxDepth: depth must be > 0")
	}
	return func(s *Sanitizer) { s.maxDepth = n }
}

// WithCacheSize sets the number of strings kept in the result cache.
func WithCacheSize(n int) Option {
	if n <= 0 {
		panic("WithCacheSize: size must be > 0")
	}
	return func(s *Sanitizer) { s.cacheSize = n }
}

// WithMaxCacheEntryLength sets the longest string, in bytes, stored in the cache.
func WithMaxCacheEntryLength(n int) Option {
	if n < 0 {
		panic("WithMaxCacheEntryLength: length must be >= 0")
	}
	return func(s *Sanitizer) { s.maxEntryLength = n }
}

// WithCacheEvictRatio sets the share of the cache dropped when it is full.
func WithCacheEvictRatio(ratio float64) Option {
	if ratio <= 0 || ratio > 1 {
		panic("WithCacheEvictRatio: ratio must be in (0, 1]")
	}
	return func(s *Sanitizer) { s.evictRatio = ratio }
}

// WithCacheSafeStrings controls whether strings that need no cleaning are
// cached as mapping to themselves. Enabled by default.
func WithCacheSafeStrings(enabled bool) Option {
	return func(s *Sanitizer) { s.cacheSafe = enabled }
}

// WithDetector replaces the default marker scan.
func WithDetector(d *Detector) Option {
	return func(s *Sanitizer) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithLogger supplies a logger. If nil, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sanitizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Sanitizer with its own result cache.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		detector:       defaultDetector,
		maxDepth:       DefaultMaxDepth,
		cacheSize:      DefaultCacheSize,
		maxEntryLength: DefaultMaxCacheEntryLength,
		evictRatio:     cache.DefaultEvictRatio,
		cacheSafe:      true,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	maxLen := s.maxEntryLength
	s.cache = cache.NewBatchCache(s.cacheSize,
		cache.WithEvictRatio[string, string](s.evictRatio),
		cache.WithAdmission[string, string](func(k string) bool { return len(k) <= maxLen }),
	)
	return s
}

// Sanitize returns a copy of v with every string leaf cleaned. Shape, key order
// and non-string leaves are preserved; keys are never modified.
// It fails with ErrMaxDepthExceeded when containers nest deeper than the limit
// and with ErrUnstableInput when a string leaf does not settle within MaxPasses.
func (s *Sanitizer) Sanitize(v Value) (Value, error) {
	return s.walk(v, 0)
}

// SanitizeAny converts in with FromAny, sanitizes it and converts the result back
// with Value.Any.
func (s *Sanitizer) SanitizeAny(in any) (any, error) {
	v, err := FromAny(in)
	if err != nil {
		return nil, err
	}
	out, err := s.Sanitize(v)
	if err != nil {
		return nil, err
	}
	return out.Any(), nil
}

// SanitizeString cleans a single string, consulting the result cache first.
// Strings without any dangerous marker are returned unchanged. Strings that do
// not settle within MaxPasses runs come back collapsed (see SanitizeString);
// Sanitize rejects them instead.
func (s *Sanitizer) SanitizeString(text string) string {
	clean, err := s.cleanString(text)
	if err != nil {
		return collapse(clean)
	}
	return clean
}

func (s *Sanitizer) cleanString(text string) (string, error) {
	if cached, ok := s.cache.Get(text); ok {
		return cached, nil
	}

	if !s.detector.IsDangerous(text) {
		if s.cacheSafe {
			s.cache.Put(text, text)
		}
		return text, nil
	}

	clean, err := Clean(text)
	if err != nil {
		s.logger.Debug("sanitizer input did not settle",
			logger.Component("sanitizer"),
			slog.Int("length", len(text)),
		)
		return clean, err
	}
	s.cache.Put(text, clean)
	return clean, nil
}

// ClearCache empties the result cache and resets its counters.
func (s *Sanitizer) ClearCache() {
	s.cache.Clear()
	s.logger.Debug("sanitizer cache cleared", logger.Component("sanitizer"))
}

// CacheStats reports the current size, capacity and hit rate of the result cache.
func (s *Sanitizer) CacheStats() CacheStats {
	st := s.cache.Stats()
	return CacheStats{
		Size:    st.Size,
		MaxSize: st.MaxSize,
		HitRate: st.HitRate,
	}
}

func (s *Sanitizer) walk(v Value, depth int) (Value, error) {
	switch v.kind {
	case KindNull, KindBool, KindNumber:
		return v, nil

	case KindString:
		clean, err := s.cleanString(v.text)
		if err != nil {
			return Value{}, err
		}
		return String(clean), nil

	case KindSequence:
		if depth >= s.maxDepth {
			return Value{}, s.depthError(depth)
		}
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			clean, err := s.walk(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items[i] = clean
		}
		return Value{kind: KindSequence, items: items}, nil

	case KindKeyed:
		if depth >= s.maxDepth {
			return Value{}, s.depthError(depth)
		}
		pairs := make([]Pair, len(v.pairs))
		for i, p := range v.pairs {
			clean, err := s.walk(p.Value, depth+1)
			if err != nil {
				return Value{}, err
			}
			pairs[i] = Pair{Key: p.Key, Value: clean}
		}
		return Value{kind: KindKeyed, pairs: pairs}, nil

	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedValue, v.kind)
	}
}

func (s *Sanitizer) depthError(depth int) error {
	s.logger.Debug("sanitizer depth limit reached",
		logger.Component("sanitizer"),
		logger.Depth(depth),
	)
	return fmt.Errorf("%w: limit %d", ErrMaxDepthExceeded, s.maxDepth)
}
