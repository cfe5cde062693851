package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-trend-detector/internal/logger"
	"github.com/jonathan/skill-trend-detector/internal/server"
	"github.com/jonathan/skill-trend-detector/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Load the skill model and start an HTTP server that exposes the skill trend API
and the web front end. The model is loaded once; a model that fails to load stops startup.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}

	model, _, err := loadModel(cmd.Context(), cfg)
	if err != nil {
		logger.L.WithError(err).Error("skill model could not be loaded")
		return err
	}

	rateLimit := ratelimit.LoadConfig(os.Getenv)
	logger.L.WithFields(logrus.Fields{
		"allowed_origins":   cfg.AllowedOrigins,
		"batch_concurrency": cfg.BatchConcurrency,
		"max_body_bytes":    cfg.MaxBodyBytes,
		"rate_limit":        rateLimit.Enabled,
	}).Debug("server configuration")

	srv, err := server.New(model, server.Config{
		Port:             cfg.Port,
		AllowedOrigins:   cfg.AllowedOrigins,
		BatchConcurrency: cfg.BatchConcurrency,
		MaxBodyBytes:     cfg.MaxBodyBytes,
		RateLimit:        rateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
