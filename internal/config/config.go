// Package config loads image-features settings from a YAML file, a .env file
// and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-features/internal/detection"
)

// DefaultPath is the config file used when neither a flag nor
// IMAGE_FEATURES_CONFIG names one.
const DefaultPath = "image-features.yaml"

// Environment variables that override file settings.
const (
	EnvConfig       = "IMAGE_FEATURES_CONFIG"
	EnvLogLevel     = "IMAGE_FEATURES_LOG_LEVEL"
	EnvParallel     = "IMAGE_FEATURES_PARALLEL"
	EnvShapeBackend = "IMAGE_FEATURES_SHAPE_BACKEND"
	EnvCacheSize    = "IMAGE_FEATURES_CACHE_MAX_ENTRIES"
)

// Log levels.
const (
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// Config is the application configuration.
type Config struct {
	Logging struct {
		// Level is "info" or "debug"
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Extraction struct {
		// Parallel runs the feature stages of one image concurrently
		Parallel bool `yaml:"parallel"`

		// ShapeBackend selects the contour implementation: "native" or "opencv"
		ShapeBackend string `yaml:"shapeBackend"`
	} `yaml:"extraction"`

	Cache struct {
		// MaxEntries bounds the decoded image cache; 0 means unbounded
		MaxEntries int `yaml:"maxEntries"`
	} `yaml:"cache"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Logging.Level = LevelInfo
	cfg.Extraction.Parallel = true
	cfg.Extraction.ShapeBackend = detection.BackendNative
	cfg.Cache.MaxEntries = 64
	return cfg
}

// ResolvePath picks the config file path: the explicit flag value, then
// IMAGE_FEATURES_CONFIG, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads the configuration. A missing file yields the defaults; a .env
// file in the working directory is loaded if present; environment variables
// override both. The result is validated.
func Load(path string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvParallel); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvParallel, err)
		}
		c.Extraction.Parallel = b
	}
	if v := os.Getenv(EnvShapeBackend); v != "" {
		c.Extraction.ShapeBackend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCacheSize, err)
		}
		c.Cache.MaxEntries = n
	}
	return nil
}

// Validate rejects unknown enum values and negative sizes.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case LevelInfo, LevelDebug:
	default:
		return fmt.Errorf("invalid logging.level %q: want %q or %q", c.Logging.Level, LevelInfo, LevelDebug)
	}

	switch c.Extraction.ShapeBackend {
	case detection.BackendNative, detection.BackendOpenCV:
	default:
		return fmt.Errorf("invalid extraction.shapeBackend %q: want %q or %q",
			c.Extraction.ShapeBackend, detection.BackendNative, detection.BackendOpenCV)
	}

	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("invalid cache.maxEntries %d: must be >= 0", c.Cache.MaxEntries)
	}
	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.Logging.Level == LevelDebug
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
