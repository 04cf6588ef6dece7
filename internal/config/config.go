// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Store backend identifiers.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects the participant store: "memory" or "redis".
	StoreBackend string `koanf:"store_backend"`

	// RedisAddr and RedisDB configure the Redis participant store.
	RedisAddr string `koanf:"redis_addr"`
	RedisDB   int    `koanf:"redis_db"`

	// MaxImportRows caps the number of rows accepted per import call.
	MaxImportRows int `koanf:"max_import_rows"`

	// WriteBatchChunkSize bounds a single store batch commit.
	WriteBatchChunkSize int `koanf:"write_batch_chunk_size"`

	// MaxRankingLimit caps GET rankings ?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// DefaultTemplate is the base drill template used when an event
	// does not declare one, e.g. "football".
	DefaultTemplate string `koanf:"default_template"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:            "info",
		Addr:                ":9090",
		StoreBackend:        StoreMemory,
		RedisAddr:           "localhost:6379",
		RedisDB:             0,
		MaxImportRows:       5000,
		WriteBatchChunkSize: 400,
		MaxRankingLimit:     500,
		DefaultTemplate:     "football",
	}
	return c
}
