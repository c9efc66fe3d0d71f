// Package config reads process settings from the environment, after loading
// any .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/validation"
)

// Environment variables
const (
	EnvCatalog      = "GENENET_CATALOG"
	EnvTemplates    = "GENENET_TEMPLATES"
	EnvSeed         = "GENENET_SEED"
	EnvMaxSolutions = "GENENET_MAX_SOLUTIONS"
	EnvWorkers      = "GENENET_WORKERS"
	EnvCacheSize    = "GENENET_CACHE_SIZE"
	EnvLogLevel     = "LOG_LEVEL"
)

// SnapshotExt marks a catalog path as a snapshot file rather than a directory
const SnapshotExt = ".snap"

// Config holds the settings shared by every command
type Config struct {
	CatalogPath  string
	TemplatesDir string
	Seed         uint64
	MaxSolutions int
	Workers      int
	CacheSize    int
	LogLevel     string

	// parse errors from the environment, reported by Validate
	errs []error
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		CatalogPath:  "catalog",
		TemplatesDir: "templates",
		Seed:         1,
		Workers:      runtime.NumCPU(),
		CacheSize:    256,
		LogLevel:     "info",
	}
}

// Load reads the configuration with Read and validates it
func Load(files ...string) (*Config, error) {
	cfg, err := Read(files...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads the given .env files, or ./.env when none are named, then reads
// the environment. Variables already set are not overridden by the files. A
// missing file is not an error. The result is not validated, so callers can
// apply overrides first.
func Read(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv overlays environment variables on the defaults without validating
func FromEnv() *Config {
	cfg := Default()
	cfg.CatalogPath = getEnv(EnvCatalog, cfg.CatalogPath)
	cfg.TemplatesDir = getEnv(EnvTemplates, cfg.TemplatesDir)
	cfg.LogLevel = strings.ToLower(getEnv(EnvLogLevel, cfg.LogLevel))
	cfg.MaxSolutions = cfg.getEnvAsInt(EnvMaxSolutions, cfg.MaxSolutions)
	cfg.Workers = cfg.getEnvAsInt(EnvWorkers, cfg.Workers)
	cfg.CacheSize = cfg.getEnvAsInt(EnvCacheSize, cfg.CacheSize)

	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			cfg.errs = append(cfg.errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			cfg.Seed = seed
		}
	}
	return cfg
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Custom("Env", func() error { return errors.Join(c.errs...) }).
		Required("CatalogPath", c.CatalogPath).
		Required("TemplatesDir", c.TemplatesDir).
		NonNegative("MaxSolutions", c.MaxSolutions).
		Positive("Workers", c.Workers).
		Positive("CacheSize", c.CacheSize).
		OneOf("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "warning", "error"}).
		Validate()
}

// CatalogIsSnapshot reports whether CatalogPath names a snapshot file
func (c *Config) CatalogIsSnapshot() bool {
	return strings.HasSuffix(c.CatalogPath, SnapshotExt)
}

// Logger returns a JSON logger writing to w at the configured level
func (c *Config) Logger(w io.Writer) logging.Logger {
	return logging.NewJSONLogger(w, logging.ParseLevel(c.LogLevel))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		c.errs = append(c.errs, fmt.Errorf("%s: invalid integer %q", key, valueStr))
		return defaultValue
	}
	return value
}
