// Runtime settings, read from the environment and an optional .env file.

package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/pipeline"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultDataDir       = "./data"
	defaultAddr          = "0.0.0.0:8080"
	defaultCacheSize     = 128
	defaultSearchBackend = pipeline.BackendApprox
)

type Config struct {
	DataDir       string
	Addr          string
	LogLevel      zapcore.Level
	CacheSize     int
	SearchBackend string
}

// DBPath is the sqlite file holding stored analyses.
func (c Config) DBPath() string {
	return path.Join(c.DataDir, "db", "analyses.db")
}

// LoadDotenv loads files (default .env) into the environment without
// overriding variables that are already set. A missing file is only a warning.
func LoadDotenv(files ...string) bool {
	if err := godotenv.Load(files...); err != nil {
		logger.Warn("No .env found, using local environment", zap.Error(err))
		return false
	}
	return true
}

// Load reads HITVIEW_* variables. Missing values fall back to defaults with a
// warning; malformed values are an error.
func Load() (Config, error) {
	cfg := Config{
		DataDir:       os.Getenv("HITVIEW_DATA"),
		Addr:          os.Getenv("HITVIEW_ADDR"),
		CacheSize:     defaultCacheSize,
		SearchBackend: defaultSearchBackend,
	}

	if cfg.DataDir == "" {
		logger.Warn("No local environment (HITVIEW_DATA), using default value", zap.String("default", defaultDataDir))
		cfg.DataDir = defaultDataDir
	}

	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}

	level, err := logger.ParseLevel(os.Getenv("HITVIEW_LOG_LEVEL"))
	if err != nil {
		return cfg, fmt.Errorf("HITVIEW_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if raw := os.Getenv("HITVIEW_CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			return cfg, fmt.Errorf("HITVIEW_CACHE_SIZE must be a non-negative integer, got %q", raw)
		}
		cfg.CacheSize = size
	}

	if raw := os.Getenv("HITVIEW_SEARCH_BACKEND"); raw != "" {
		backend := strings.ToLower(strings.TrimSpace(raw))
		if _, err := pipeline.NewIndexBuilder(backend, pipeline.DefaultFuzzyOptions); err != nil {
			return cfg, fmt.Errorf("HITVIEW_SEARCH_BACKEND: %w", err)
		}
		cfg.SearchBackend = backend
	}

	return cfg, nil
}
