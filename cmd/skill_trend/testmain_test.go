package main

import (
	"io"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/jonathan/skill-trend-detector/internal/logger"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	// Try to load .env file - ignore error if it doesn't exist (CI environment)
	_ = godotenv.Load()
	logger.SetLogOutput(io.Discard)

	os.Exit(m.Run())
}
