// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults applied by MergeWithDefaults.
const (
	DefaultPort             = 8080
	DefaultModelPath        = "models/skill_trend_model.json"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultBatchConcurrency = 8
	DefaultMaxBodyBytes     = 1 << 20
)

var validModelFormats = map[string]bool{"": true, "json": true, "yaml": true, "postgres": true}

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Server
	Port           int      `json:"port,omitempty"`            // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins; "*" allows any

	// Model artifact
	ModelPath   string `json:"model_path,omitempty"`   // Path to the JSON or YAML model artifact
	ModelFormat string `json:"model_format,omitempty"` // json, yaml, postgres; empty detects from extension
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for the postgres format

	// Limits
	BatchConcurrency int   `json:"batch_concurrency,omitempty"` // Parallel analyses per batch request
	MaxBodyBytes     int64 `json:"max_body_bytes,omitempty"`    // Maximum request body size

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // logrus level name
	LogFormat string `json:"log_format,omitempty"` // text or json
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:             DefaultPort,
		AllowedOrigins:   []string{"*"},
		ModelPath:        DefaultModelPath,
		BatchConcurrency: DefaultBatchConcurrency,
		MaxBodyBytes:     DefaultMaxBodyBytes,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields with any environment variables that are set.
// Values that fail to parse are reported rather than ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be an integer: %w", err)
		}
		c.Port = port
	}
	if v := getenv("SKILL_MODEL_PATH"); v != "" {
		c.ModelPath = v
	}
	if v := getenv("SKILL_MODEL_FORMAT"); v != "" {
		c.ModelFormat = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := getenv("BATCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: BATCH_CONCURRENCY must be an integer: %w", err)
		}
		c.BatchConcurrency = n
	}
	if v := getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config error: MAX_BODY_BYTES must be an integer: %w", err)
		}
		c.MaxBodyBytes = n
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}

	format := strings.ToLower(c.ModelFormat)
	if !validModelFormats[format] {
		return fmt.Errorf("config error: unknown 'model_format' %q", c.ModelFormat)
	}
	if format == "postgres" {
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required when 'model_format' is postgres")
		}
	} else if c.ModelPath == "" {
		return fmt.Errorf("config error: 'model_path' is required")
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.ModelPath == "" {
		result.ModelPath = defaults.ModelPath
	}
	if result.ModelFormat == "" {
		result.ModelFormat = defaults.ModelFormat
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	return result
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
