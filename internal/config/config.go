package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"business-analysis/internal/metrics"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Server   ServerConfig   `yaml:"server"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

type AnalysisConfig struct {
	// PeriodsPerYear is the record cadence: 12 for monthly, 4 for quarterly, ...
	PeriodsPerYear int `yaml:"periods_per_year"`
	// Parallel evaluates report sections concurrently.
	Parallel bool `yaml:"parallel"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"`
	CORSOrigins []string `yaml:"cors_origins"`
	// MaxBodyBytes caps inline request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type DatasetConfig struct {
	// Path is loaded as the "default" dataset.
	Path string `yaml:"path"`
	// Dir is scanned for additional *.csv / *.json datasets.
	Dir string `yaml:"dir"`
	// MaxFetchBytes caps documents fetched from a source_url.
	MaxFetchBytes int64 `yaml:"max_fetch_bytes"`
	// AllowPrivateSources lets source_url point at loopback, private or link-local hosts.
	AllowPrivateSources bool `yaml:"allow_private_sources"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{PeriodsPerYear: metrics.DefaultPeriodsPerYear},
		Server:   ServerConfig{
			Port:         "8080",
			Env:          "development",
			CORSOrigins:  []string{"*"},
			MaxBodyBytes: 10 << 20,
		},
		Dataset: DatasetConfig{MaxFetchBytes: 10 << 20},
		Cache:   CacheConfig{Enabled: true, TTL: time.Hour},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path (optional; "" means defaults only), applies environment overrides
// from the process and an optional .env file, and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges the YAML file over the defaults, but does not validate
// or apply environment overrides.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// Interpret relative dataset paths as relative to the config file directory,
	// falling back to the provided path (relative to cwd) if that doesn't exist.
	c.Dataset.Path = resolveRelative(path, c.Dataset.Path)
	c.Dataset.Dir = resolveRelative(path, c.Dataset.Dir)
	return c, nil
}

func resolveRelative(cfgPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(filepath.Dir(cfgPath), p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

// ApplyEnv overlays environment variables. A missing .env file is not an error.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		c.Dataset.Path = v
	}
	if v := os.Getenv("DATASET_DIR"); v != "" {
		c.Dataset.Dir = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("PERIODS_PER_YEAR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PERIODS_PER_YEAR: %w", err)
		}
		c.Analysis.PeriodsPerYear = n
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_BODY_BYTES: %w", err)
		}
		c.Server.MaxBodyBytes = n
	}
	if v := os.Getenv("MAX_FETCH_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_FETCH_BYTES: %w", err)
		}
		c.Dataset.MaxFetchBytes = n
	}
	if v := os.Getenv("ALLOW_PRIVATE_SOURCES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALLOW_PRIVATE_SOURCES: %w", err)
		}
		c.Dataset.AllowPrivateSources = b
	}
	if v := os.Getenv("ENABLE_REPORT_CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ENABLE_REPORT_CACHE: %w", err)
		}
		c.Cache.Enabled = b
	}
	if v := os.Getenv("REPORT_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REPORT_CACHE_TTL: %w", err)
		}
		c.Cache.TTL = d
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := metrics.ValidatePeriodsPerYear(c.Analysis.PeriodsPerYear); err != nil {
		return fmt.Errorf("analysis config invalid: %w", err)
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be > 0")
	}
	if c.Dataset.MaxFetchBytes <= 0 {
		return errors.New("dataset.max_fetch_bytes must be > 0")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be > 0 when the cache is enabled")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not supported", c.Log.Level)
	}
	return nil
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
