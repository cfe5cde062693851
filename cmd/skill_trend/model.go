package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-trend-detector/internal/config"
	"github.com/jonathan/skill-trend-detector/internal/logger"
	"github.com/jonathan/skill-trend-detector/internal/modelstore"
	"github.com/jonathan/skill-trend-detector/internal/trend"
)

// Flags shared by every command that loads a model.
var (
	configPath  string
	modelPath   string
	modelFormat string
	databaseURL string
	logLevel    string
	logFormat   string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a JSON config file")
	flags.StringVar(&modelPath, "model", "", "Path to the skill model artifact (default "+config.DefaultModelPath+")")
	flags.StringVar(&modelFormat, "model-format", "", "Model format: json, yaml or postgres (default: from file extension)")
	flags.StringVar(&databaseURL, "database-url", "", "PostgreSQL URL for the postgres model format")
	flags.StringVar(&logLevel, "log-level", "", "Log level (default "+config.DefaultLogLevel+")")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// resolveConfig layers defaults, the config file, environment variables and
// explicitly set flags, in increasing priority, then applies logging settings.
func resolveConfig(cmd *cobra.Command, getenv func(string) string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.ModelPath = modelPath
	}
	if flags.Changed("model-format") {
		cfg.ModelFormat = modelFormat
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("port") {
		cfg.Port = servePort
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}

	if err := logger.SetLogLevel(merged.LogLevel); err != nil {
		return config.Config{}, fmt.Errorf("config error: invalid 'log_level': %w", err)
	}
	if err := logger.SetLogFormat(merged.LogFormat); err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}

	return merged, nil
}

// loadModel builds the model source described by cfg and loads it.
func loadModel(ctx context.Context, cfg config.Config) (*trend.Model, modelstore.Source, error) {
	src, err := modelstore.NewSource(modelstore.Options{
		Path:        cfg.ModelPath,
		Format:      cfg.ModelFormat,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}

	model, err := modelstore.Load(ctx, src)
	if err != nil {
		return nil, src, err
	}
	return model, src, nil
}
