// Package main provides the entry point for the skill trend detector CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill_trend",
	Short: "Skill Trend Detector",
	Long: "Skill Trend Detector finds known technical skills in job descriptions and reports " +
		"each skill's trend category and normalized demand score.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
