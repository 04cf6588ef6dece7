package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if COMBINE_CONFIG is set
//  3. env (prefix COMBINE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("COMBINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: COMBINE_ADDR, COMBINE_MAX_IMPORT_ROWS, ...
	// Map env keys like COMBINE_MAX_IMPORT_ROWS -> max_import_rows (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("COMBINE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "combine_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.StoreBackend != StoreMemory && cfg.StoreBackend != StoreRedis {
		return nil, errors.New("store_backend must be memory or redis")
	}
	if cfg.MaxImportRows <= 0 {
		return nil, errors.New("max_import_rows must be positive")
	}
	if cfg.WriteBatchChunkSize <= 0 {
		return nil, errors.New("write_batch_chunk_size must be positive")
	}
	return &cfg, nil
}
