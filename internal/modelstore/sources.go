package modelstore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/skill-trend-detector/internal/db"
	"github.com/jonathan/skill-trend-detector/internal/schemas"
)

// JSONFile reads a JSON artifact and validates it against the embedded
// skill model schema before decoding.
type JSONFile struct {
	Path string
}

func (s *JSONFile) Describe() string { return "json:" + s.Path }

func (s *JSONFile) Fetch(_ context.Context) (*Artifact, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Describe(), Message: "failed to read file", Cause: err}
	}

	if err := schemas.ValidateSkillModel(data); err != nil {
		return nil, &LoadError{Source: s.Describe(), Message: "artifact does not match schema", Cause: err}
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &LoadError{Source: s.Describe(), Message: "failed to parse JSON", Cause: err}
	}
	return &artifact, nil
}

// YAMLFile reads a YAML artifact. Unknown keys are rejected.
type YAMLFile struct {
	Path string
}

func (s *YAMLFile) Describe() string { return "yaml:" + s.Path }

func (s *YAMLFile) Fetch(_ context.Context) (*Artifact, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Describe(), Message: "failed to read file", Cause: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var artifact Artifact
	if err := dec.Decode(&artifact); err != nil {
		return nil, &LoadError{Source: s.Describe(), Message: "failed to parse YAML", Cause: err}
	}
	return &artifact, nil
}

// Postgres reads the model tables from a PostgreSQL database.
type Postgres struct {
	DatabaseURL string
}

func (s *Postgres) Describe() string { return "postgres" }

func (s *Postgres) Fetch(ctx context.Context) (*Artifact, error) {
	database, err := db.Connect(ctx, s.DatabaseURL)
	if err != nil {
		return nil, &LoadError{Source: s.Describe(), Message: "failed to connect", Cause: err}
	}
	defer database.Close()

	model, err := database.LoadSkillModel(ctx)
	if err != nil {
		return nil, &LoadError{Source: s.Describe(), Message: "failed to read model tables", Cause: err}
	}

	return &Artifact{
		Skills:           model.Skills,
		SkillFrequencies: model.Frequencies,
		Classification:   model.Classification,
	}, nil
}

var (
	_ Source = (*JSONFile)(nil)
	_ Source = (*YAMLFile)(nil)
	_ Source = (*Postgres)(nil)
)
