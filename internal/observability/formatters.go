// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/skill-trend-detector/internal/trend"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// skillColumnWidth is the width of the skill column in result tables
	skillColumnWidth = 24
)

// Printer handles formatted output for the analyze and validate-model commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDetectedSkills outputs one row per detected skill with its category
// and trend score.
func (p *Printer) PrintDetectedSkills(detected []trend.DetectedSkill) {
	var sb strings.Builder

	if len(detected) == 0 {
		sb.WriteString("No skills detected")
	} else {
		sb.WriteString(fmt.Sprintf("%-*s %-16s %s\n", skillColumnWidth, "SKILL", "CATEGORY", "SCORE"))
		for _, d := range detected {
			skill := d.Skill
			if len(skill) > skillColumnWidth {
				skill = skill[:skillColumnWidth-3] + "..."
			}
			sb.WriteString(fmt.Sprintf("%-*s %-16s %.2f\n", skillColumnWidth, skill, d.Category, d.TrendScore))
		}
		sb.WriteString(fmt.Sprintf("\n%d skill(s) detected", len(detected)))
	}

	p.printBox("DETECTED SKILLS", sb.String())
}

// PrintModelSummary outputs the size of a loaded model, its top skills by
// trend score and any skills that can never match.
func (p *Printer) PrintModelSummary(source string, model *trend.Model) {
	if model == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:         %s\n", source))
	sb.WriteString(fmt.Sprintf("Skills:         %d\n", model.Len()))
	sb.WriteString(fmt.Sprintf("Max frequency:  %g\n", model.MaxFrequency()))

	catalog := trend.Catalog(model)
	classified := 0
	for _, d := range catalog {
		if d.Category != trend.DefaultCategory {
			classified++
		}
	}
	sb.WriteString(fmt.Sprintf("Classified:     %d\n", classified))

	top := topByScore(catalog, maxItemsToShow)
	if len(top) > 0 {
		sb.WriteString("\nTop skills:\n")
		for _, d := range top {
			sb.WriteString(fmt.Sprintf("  • %s (%s, %.2f)\n", d.Skill, d.Category, d.TrendScore))
		}
	}

	if unmatchable := model.Unmatchable(); len(unmatchable) > 0 {
		sb.WriteString(fmt.Sprintf("\nUnmatchable skills: %d\n", len(unmatchable)))
		count := min(len(unmatchable), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", unmatchable[i]))
		}
		if len(unmatchable) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(unmatchable)-maxItemsToShow))
		}
	}

	p.printBox("SKILL MODEL", strings.TrimSuffix(sb.String(), "\n"))
}

// topByScore returns up to n entries with the highest trend score. Ties keep
// vocabulary order.
func topByScore(catalog []trend.DetectedSkill, n int) []trend.DetectedSkill {
	sorted := slices.Clone(catalog)
	slices.SortStableFunc(sorted, func(a, b trend.DetectedSkill) int {
		return cmp.Compare(b.TrendScore, a.TrendScore)
	})
	return sorted[:min(n, len(sorted))]
}
