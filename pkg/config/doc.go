// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Structs
// are described with env tags and parsed once per type; the parsed copy is
// cached for the lifetime of the process.
//
//	var cfg sanitizer.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// The default .env in the working directory is read on first Load if present.
// LoadEnv reads additional files explicitly; later files override earlier ones.
//
// Reload re-parses a single type after the environment changed and ResetCache
// drops everything. Both exist mostly for tests.
//
// Errors are sentinel values: ErrParsingConfig, ErrConfigNotLoaded,
// ErrNilPointer and ErrLoadingEnvFile.
package config
