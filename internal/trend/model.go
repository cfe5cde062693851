// Package trend detects known skills in job description text and scores them
// against historical frequency data.
package trend

import (
	"fmt"
	"math"
)

// DefaultCategory is reported for skills missing from the classification table.
const DefaultCategory = "new/emerging"

// ModelError indicates a model table that cannot be used for analysis.
type ModelError struct {
	Field   string
	Message string
}

func (e *ModelError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid model: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid model: %s", e.Message)
}

// Model holds the skill vocabulary and the lookup tables used to classify
// detected skills. It is built once and is safe for concurrent use.
type Model struct {
	vocabulary   []string
	frequencies  map[string]float64
	categories   map[string]string
	maxFrequency float64
	unmatchable  []string
}

// NewModel copies the given tables into an immutable Model.
// Vocabulary order is preserved and determines the order of extraction results.
func NewModel(skills []string, frequencies map[string]float64, categories map[string]string) (*Model, error) {
	vocabulary := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	var unmatchable []string

	for i, skill := range skills {
		if skill == "" {
			return nil, &ModelError{Field: fmt.Sprintf("skills[%d]", i), Message: "skill is empty"}
		}
		if _, dup := seen[skill]; dup {
			return nil, &ModelError{Field: fmt.Sprintf("skills[%d]", i), Message: fmt.Sprintf("duplicate skill %q", skill)}
		}
		seen[skill] = struct{}{}
		vocabulary = append(vocabulary, skill)

		// Normalized text only contains a-z, 0-9 and whitespace.
		if Normalize(skill) != skill {
			unmatchable = append(unmatchable, skill)
		}
	}

	freqCopy := make(map[string]float64, len(frequencies))
	maxFreq := 0.0
	for skill, freq := range frequencies {
		if math.IsNaN(freq) || math.IsInf(freq, 0) {
			return nil, &ModelError{Field: "skill_frequencies", Message: fmt.Sprintf("frequency of %q is not finite", skill)}
		}
		if freq < 0 {
			return nil, &ModelError{Field: "skill_frequencies", Message: fmt.Sprintf("frequency of %q is negative", skill)}
		}
		freqCopy[skill] = freq
		maxFreq = max(maxFreq, freq)
	}

	catCopy := make(map[string]string, len(categories))
	for skill, category := range categories {
		catCopy[skill] = category
	}

	return &Model{
		vocabulary:   vocabulary,
		frequencies:  freqCopy,
		categories:   catCopy,
		maxFrequency: max(1, maxFreq),
		unmatchable:  unmatchable,
	}, nil
}

// Vocabulary returns a copy of the skill list in its original order.
func (m *Model) Vocabulary() []string {
	out := make([]string, len(m.vocabulary))
	copy(out, m.vocabulary)
	return out
}

// Len returns the number of skills in the vocabulary.
func (m *Model) Len() int {
	return len(m.vocabulary)
}

// Frequency returns the historical frequency of skill, or 0 when unknown.
func (m *Model) Frequency(skill string) float64 {
	return m.frequencies[skill]
}

// Category returns the classification of skill, falling back to DefaultCategory.
func (m *Model) Category(skill string) string {
	if category, ok := m.categories[skill]; ok {
		return category
	}
	return DefaultCategory
}

// MaxFrequency returns the normalization divisor. It is never below 1.
func (m *Model) MaxFrequency() float64 {
	return m.maxFrequency
}

// Unmatchable lists vocabulary entries that contain characters Normalize never
// produces, so they can never be detected.
func (m *Model) Unmatchable() []string {
	out := make([]string, len(m.unmatchable))
	copy(out, m.unmatchable)
	return out
}
