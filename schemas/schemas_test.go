package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillModelSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile("skill_model.schema.json")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema["$schema"])
	assert.ElementsMatch(t, []any{"skills", "skill_frequencies", "classification"}, schema["required"])
}

func TestSkillModelSchema_Embedded(t *testing.T) {
	data, err := os.ReadFile("skill_model.schema.json")
	require.NoError(t, err)
	assert.Equal(t, string(data), SkillModel)
}
