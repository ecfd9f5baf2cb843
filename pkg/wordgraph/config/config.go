// Package config loads compressor settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
	"github.com/cognicore/wordgraph/pkg/wordgraph/report"
	"github.com/cognicore/wordgraph/pkg/wordgraph/weight"
)

// Default values.
const (
	DefaultMaxResults = 5
	DefaultMinLength  = 8
)

// SearchConfig bounds the candidate search.
type SearchConfig struct {
	MaxResults int           `yaml:"max_results"`
	MinLength  int           `yaml:"min_length"`
	Budget     time.Duration `yaml:"budget"`
}

// WeightingConfig selects the edge weighting scheme.
type WeightingConfig struct {
	Scheme weight.Scheme `yaml:"scheme"`
}

// StoreConfig locates the run history.
type StoreConfig struct {
	// Path of the sqlite run history; empty keeps runs in memory.
	Path string `yaml:"path"`
}

// OutputConfig selects the report format.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Config is the full settings document.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Weighting WeightingConfig `yaml:"weighting"`
	Store     StoreConfig     `yaml:"store"`
	Output    OutputConfig    `yaml:"output"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			MaxResults: DefaultMaxResults,
			MinLength:  DefaultMinLength,
		},
		Weighting: WeightingConfig{Scheme: weight.Naive},
		Output:    OutputConfig{Format: string(report.Text)},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv loads .env when present and overlays WORDGRAPH_* variables.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	var err error
	if c.Search.MaxResults, err = getEnvInt("WORDGRAPH_MAX_RESULTS", c.Search.MaxResults); err != nil {
		return err
	}
	if c.Search.MinLength, err = getEnvInt("WORDGRAPH_MIN_LENGTH", c.Search.MinLength); err != nil {
		return err
	}
	if v := os.Getenv("WORDGRAPH_BUDGET"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WORDGRAPH_BUDGET %q: %w", v, internalerr.ErrInvalidConfig)
		}
		c.Search.Budget = d
	}
	if v := os.Getenv("WORDGRAPH_SCHEME"); v != "" {
		s, err := weight.ParseScheme(v)
		if err != nil {
			return fmt.Errorf("WORDGRAPH_SCHEME: %w", err)
		}
		c.Weighting.Scheme = s
	}
	c.Store.Path = getEnv("WORDGRAPH_DB", c.Store.Path)
	c.Output.Format = getEnv("WORDGRAPH_FORMAT", c.Output.Format)

	return c.Validate()
}

// Validate rejects negative limits and unknown names.
func (c *Config) Validate() error {
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results %d: %w", c.Search.MaxResults, internalerr.ErrInvalidConfig)
	}
	if c.Search.MinLength < 0 {
		return fmt.Errorf("search.min_length %d: %w", c.Search.MinLength, internalerr.ErrInvalidConfig)
	}
	if c.Search.Budget < 0 {
		return fmt.Errorf("search.budget %s: %w", c.Search.Budget, internalerr.ErrInvalidConfig)
	}
	switch c.Weighting.Scheme {
	case weight.Naive, weight.Advanced:
	default:
		return fmt.Errorf("weighting.scheme %s: %w", c.Weighting.Scheme, internalerr.ErrInvalidConfig)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, value, internalerr.ErrInvalidConfig)
	}
	return n, nil
}
