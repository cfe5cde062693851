package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-trend-detector/internal/fetch"
	"github.com/jonathan/skill-trend-detector/internal/observability"
	"github.com/jonathan/skill-trend-detector/internal/trend"
	"github.com/jonathan/skill-trend-detector/internal/types"
)

var (
	analyzeText   string
	analyzeFile   string
	analyzeURL    string
	analyzeRender bool
	analyzeJSON   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect skills in a job description",
	Long: `Detect known skills in a job description and print each skill's category and
trend score. The description is read from --text, --file, --url, or standard input.
With --url the job posting page is downloaded and its description text extracted.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the job description from a file")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "Fetch the job description from a job posting URL")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "Render --url pages with little static text in headless Chrome")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the API response JSON instead of a table")
	analyzeCmd.MarkFlagsMutuallyExclusive("text", "file", "url")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}

	text, err := readDescription(cmd)
	if err != nil {
		return err
	}

	model, _, err := loadModel(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return writeAnalysis(cmd.OutOrStdout(), model, text, analyzeJSON)
}

// readDescription returns the job description from --text, --file, --url or stdin.
func readDescription(cmd *cobra.Command) (string, error) {
	switch {
	case cmd.Flags().Changed("text"):
		return analyzeText, nil
	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return string(data), nil
	case analyzeURL != "":
		opts := fetch.DefaultOptions()
		opts.Render = analyzeRender
		page, err := fetch.JobPosting(cmd.Context(), analyzeURL, opts)
		if err != nil {
			return "", err
		}
		return page.Text, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read job description from stdin: %w", err)
		}
		return string(data), nil
	}
}

// writeAnalysis analyzes text and writes either a table or the same JSON
// body POST /skill-trend would return.
func writeAnalysis(out io.Writer, model *trend.Model, text string, asJSON bool) error {
	detected := trend.Analyze(model, text)
	if !asJSON {
		observability.NewPrinter(out).PrintDetectedSkills(detected)
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(types.SkillTrendResponse{DetectedSkills: detected}); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
