package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-trend-detector/internal/observability"
)

var validateModelCmd = &cobra.Command{
	Use:   "validate-model",
	Short: "Validate a skill model artifact",
	Long: `Load the configured skill model exactly as the server would and print a summary.
Exits non-zero when the artifact is missing, malformed or rejected.`,
	Args: cobra.NoArgs,
	RunE: runValidateModel,
}

func init() {
	rootCmd.AddCommand(validateModelCmd)
}

func runValidateModel(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}

	model, src, err := loadModel(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintModelSummary(src.Describe(), model)
	_, _ = fmt.Fprintln(out, "Model is valid")
	return nil
}
