package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-trend-detector/internal/trend"
)

func TestPrintDetectedSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDetectedSkills([]trend.DetectedSkill{
		{Skill: "python", Category: "hot", TrendScore: 1},
		{Skill: "sql", Category: "stable", TrendScore: 0.333},
	})
	output := buf.String()

	assert.Contains(t, output, "DETECTED SKILLS")
	assert.Contains(t, output, "python")
	assert.Contains(t, output, "hot")
	assert.Contains(t, output, "1.00")
	assert.Contains(t, output, "0.33")
	assert.Contains(t, output, "2 skill(s) detected")
}

func TestPrintDetectedSkills_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDetectedSkills(nil)

	assert.Contains(t, buf.String(), "No skills detected")
}

func TestPrintDetectedSkills_TruncatesLongSkill(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	long := strings.Repeat("k", 40)
	p.PrintDetectedSkills([]trend.DetectedSkill{{Skill: long, Category: "hot", TrendScore: 1}})

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), strings.Repeat("k", skillColumnWidth-3)+"...")
}

func TestPrintModelSummary(t *testing.T) {
	model, err := trend.NewModel(
		[]string{"python", "sql", "node.js"},
		map[string]float64{"python": 10, "sql": 40},
		map[string]string{"sql": "stable"},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintModelSummary("json:models/test.json", model)
	output := buf.String()

	assert.Contains(t, output, "SKILL MODEL")
	assert.Contains(t, output, "json:models/test.json")
	assert.Contains(t, output, "Skills:         3")
	assert.Contains(t, output, "Max frequency:  40")
	assert.Contains(t, output, "Classified:     1")
	assert.Contains(t, output, "Unmatchable skills: 1")
	assert.Contains(t, output, "node.js")
	assert.Less(t, strings.Index(output, "• sql"), strings.Index(output, "• python"))
}

func TestPrintModelSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintModelSummary("x", nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_Width(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestTopByScore(t *testing.T) {
	catalog := []trend.DetectedSkill{
		{Skill: "a", TrendScore: 0.5},
		{Skill: "b", TrendScore: 1},
		{Skill: "c", TrendScore: 0.5},
	}

	top := topByScore(catalog, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Skill)
	assert.Equal(t, "a", top[1].Skill)
	assert.Equal(t, "a", catalog[0].Skill, "input is not reordered")
}
