package trend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel_MaxFrequency(t *testing.T) {
	tests := []struct {
		name        string
		frequencies map[string]float64
		expected    float64
	}{
		{name: "empty table", frequencies: nil, expected: 1},
		{name: "all zero", frequencies: map[string]float64{"go": 0}, expected: 1},
		{name: "below one", frequencies: map[string]float64{"go": 0.4}, expected: 1},
		{name: "regular", frequencies: map[string]float64{"go": 20, "sql": 40}, expected: 40},
		{name: "key outside vocabulary", frequencies: map[string]float64{"go": 20, "cobol": 90}, expected: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := NewModel([]string{"go", "sql"}, tt.frequencies, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, model.MaxFrequency())
			assert.GreaterOrEqual(t, model.MaxFrequency(), 1.0)
		})
	}
}

func TestNewModel_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		skills      []string
		frequencies map[string]float64
		contains    string
	}{
		{name: "empty skill", skills: []string{"go", ""}, contains: "skills[1]: skill is empty"},
		{name: "duplicate skill", skills: []string{"go", "sql", "go"}, contains: `duplicate skill "go"`},
		{name: "negative frequency", skills: []string{"go"}, frequencies: map[string]float64{"go": -1}, contains: "negative"},
		{name: "NaN frequency", skills: []string{"go"}, frequencies: map[string]float64{"go": math.NaN()}, contains: "not finite"},
		{name: "infinite frequency", skills: []string{"go"}, frequencies: map[string]float64{"go": math.Inf(1)}, contains: "not finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := NewModel(tt.skills, tt.frequencies, nil)
			require.Error(t, err)
			assert.Nil(t, model)

			var modelErr *ModelError
			require.ErrorAs(t, err, &modelErr)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestNewModel_CopiesInput(t *testing.T) {
	skills := []string{"go", "sql"}
	freqs := map[string]float64{"go": 10}
	cats := map[string]string{"go": "hot"}

	model, err := NewModel(skills, freqs, cats)
	require.NoError(t, err)

	skills[0] = "rust"
	freqs["go"] = 99
	cats["go"] = "cold"

	assert.Equal(t, []string{"go", "sql"}, model.Vocabulary())
	assert.Equal(t, 10.0, model.Frequency("go"))
	assert.Equal(t, "hot", model.Category("go"))

	vocab := model.Vocabulary()
	vocab[0] = "changed"
	assert.Equal(t, "go", model.Vocabulary()[0])
}

func TestNewModel_Unmatchable(t *testing.T) {
	model, err := NewModel([]string{"go", "C++", "node.js", "machine learning"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"C++", "node.js"}, model.Unmatchable())
	assert.Equal(t, 4, model.Len())
}

func TestModelError(t *testing.T) {
	err := &ModelError{Field: "skills[0]", Message: "skill is empty"}
	assert.Equal(t, "invalid model: skills[0]: skill is empty", err.Error())

	err = &ModelError{Message: "no data"}
	assert.Equal(t, "invalid model: no data", err.Error())
}
