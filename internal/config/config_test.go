package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"model_path": "models/custom.yaml",
		"allowed_origins": ["https://jobs.example.com"],
		"batch_concurrency": 4,
		"log_format": "json"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "models/custom.yaml", cfg.ModelPath)
	assert.Equal(t, []string{"https://jobs.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 4, cfg.BatchConcurrency)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"PORT":                 "7000",
		"SKILL_MODEL_PATH":     "/srv/model.yaml",
		"SKILL_MODEL_FORMAT":   "yaml",
		"DATABASE_URL":         "postgres://localhost/skills",
		"LOG_LEVEL":            "debug",
		"LOG_FORMAT":           "json",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
		"BATCH_CONCURRENCY":    "2",
		"MAX_BODY_BYTES":       "4096",
	}))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "/srv/model.yaml", cfg.ModelPath)
	assert.Equal(t, "yaml", cfg.ModelFormat)
	assert.Equal(t, "postgres://localhost/skills", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2, cfg.BatchConcurrency)
	assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
}

func TestApplyEnv_Unset(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.ApplyEnv(envMap(nil)))
	assert.Equal(t, Defaults(), cfg)
}

func TestApplyEnv_InvalidNumbers(t *testing.T) {
	for _, key := range []string{"PORT", "BATCH_CONCURRENCY", "MAX_BODY_BYTES"} {
		t.Run(key, func(t *testing.T) {
			cfg := Defaults()
			err := cfg.ApplyEnv(envMap(map[string]string{key: "lots"}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "port out of range", modify: func(c *Config) { c.Port = 70000 }, errMsg: "'port'"},
		{name: "negative batch concurrency", modify: func(c *Config) { c.BatchConcurrency = -1 }, errMsg: "batch_concurrency"},
		{name: "negative body limit", modify: func(c *Config) { c.MaxBodyBytes = -5 }, errMsg: "max_body_bytes"},
		{name: "unknown model format", modify: func(c *Config) { c.ModelFormat = "pickle" }, errMsg: "model_format"},
		{name: "postgres without url", modify: func(c *Config) { c.ModelFormat = "postgres" }, errMsg: "database_url"},
		{name: "postgres with url", modify: func(c *Config) {
			c.ModelFormat = "postgres"
			c.ModelPath = ""
			c.DatabaseURL = "postgres://localhost/skills"
		}},
		{name: "missing model path", modify: func(c *Config) { c.ModelPath = "" }, errMsg: "model_path"},
		{name: "bad log format", modify: func(c *Config) { c.LogFormat = "xml" }, errMsg: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Port:      9000,
		ModelPath: "custom.json",
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "custom.json", merged.ModelPath)

	// Default values should fill in empty fields
	assert.Equal(t, []string{"*"}, merged.AllowedOrigins)
	assert.Equal(t, DefaultBatchConcurrency, merged.BatchConcurrency)
	assert.Equal(t, int64(DefaultMaxBodyBytes), merged.MaxBodyBytes)
	assert.Equal(t, DefaultLogLevel, merged.LogLevel)
	assert.Equal(t, DefaultLogFormat, merged.LogFormat)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: 1234}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 1234, merged.Port)
	assert.Empty(t, merged.ModelPath)
}
