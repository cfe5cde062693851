// Package types provides the request and response payloads of the skill trend API.
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-trend-detector/internal/trend"
)

// MaxBatchSize caps the number of descriptions in one batch request.
const MaxBatchSize = 100

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SkillTrendRequest is the body of POST /skill-trend. The description may be
// empty but the field must be present.
type SkillTrendRequest struct {
	JobDescription *string `json:"job_description" validate:"required"`
}

// Validate validates the SkillTrendRequest using the validator.
func (r *SkillTrendRequest) Validate() error {
	return validate.Struct(r)
}

// SkillTrendResponse lists the detected skills in vocabulary order.
type SkillTrendResponse struct {
	DetectedSkills []trend.DetectedSkill `json:"detected_skills"`
}

// BatchSkillTrendRequest is the body of POST /skill-trend/batch.
type BatchSkillTrendRequest struct {
	JobDescriptions []string `json:"job_descriptions" validate:"required,min=1,max=100"`
}

// Validate validates the BatchSkillTrendRequest using the validator.
func (r *BatchSkillTrendRequest) Validate() error {
	return validate.Struct(r)
}

// BatchSkillTrendResponse holds one result per description, in request order.
type BatchSkillTrendResponse struct {
	Results []SkillTrendResponse `json:"results"`
}

// SkillCatalogResponse is the body of GET /skills.
type SkillCatalogResponse struct {
	Skills       []trend.DetectedSkill `json:"skills"`
	MaxFrequency float64               `json:"max_frequency"`
}
