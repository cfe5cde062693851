// Package schemas holds the JSON Schema documents for data artifacts.
package schemas

import _ "embed"

// SkillModel is the JSON Schema of the skill trend model artifact.
//
//go:embed skill_model.schema.json
var SkillModel string
