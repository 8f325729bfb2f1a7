package sanitizer

// Config holds environment-driven settings for a Sanitizer.
type Config struct {
	MaxDepth            int      `env:"SANITIZER_MAX_DEPTH" envDefault:"128"`
	CacheSize           int      `env:"SANITIZER_CACHE_SIZE" envDefault:"1000"`
	CacheMaxEntryLength int      `env:"SANITIZER_CACHE_MAX_ENTRY_LENGTH" envDefault:"1024"`
	CacheEvictRatio     float64  `env:"SANITIZER_CACHE_EVICT_RATIO" envDefault:"0.1"`
	CacheSafeStrings    bool     `env:"SANITIZER_CACHE_SAFE_STRINGS" envDefault:"true"`
	ExtraMarkers        []string `env:"SANITIZER_EXTRA_MARKERS" envSeparator:","`
}

// NewFromConfig creates a Sanitizer from cfg.
// Only valid non-zero values from the config are applied; opts run last.
func NewFromConfig(cfg Config, opts ...Option) *Sanitizer {
	configOpts := make([]Option, 0, 6)

	if cfg.MaxDepth > 0 {
		configOpts = append(configOpts, WithMaxDepth(cfg.MaxDepth))
	}
	if cfg.CacheSize > 0 {
		configOpts = append(configOpts, WithCacheSize(cfg.CacheSize))
	}
	if cfg.CacheMaxEntryLength > 0 {
		configOpts = append(configOpts, WithMaxCacheEntryLength(cfg.CacheMaxEntryLength))
	}
	if cfg.CacheEvictRatio > 0 && cfg.CacheEvictRatio <= 1 {
		configOpts = append(configOpts, WithCacheEvictRatio(cfg.CacheEvictRatio))
	}
	configOpts = append(configOpts, WithCacheSafeStrings(cfg.CacheSafeStrings))
	if len(cfg.ExtraMarkers) > 0 {
		configOpts = append(configOpts, WithDetector(NewDetector(cfg.ExtraMarkers...)))
	}

	configOpts = append(configOpts, opts...)
	return New(configOpts...)
}
