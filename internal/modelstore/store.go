// Package modelstore loads the skill trend model artifact from files or
// PostgreSQL and turns it into an immutable trend.Model.
package modelstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/skill-trend-detector/internal/logger"
	"github.com/jonathan/skill-trend-detector/internal/trend"
)

// Supported artifact formats.
const (
	FormatAuto     = ""
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatPostgres = "postgres"
)

// Artifact is the decoded model artifact. Field names follow the keys of the
// trained model bundle.
type Artifact struct {
	Skills           []string           `json:"skills" yaml:"skills"`
	SkillFrequencies map[string]float64 `json:"skill_frequencies" yaml:"skill_frequencies"`
	Classification   map[string]string  `json:"classification" yaml:"classification"`
}

// Source produces an Artifact.
type Source interface {
	// Describe names the source in logs and errors.
	Describe() string
	// Fetch reads and decodes the artifact.
	Fetch(ctx context.Context) (*Artifact, error)
}

// Options selects where the model comes from.
type Options struct {
	Path        string
	Format      string
	DatabaseURL string
}

// NewSource picks a Source for opts. With FormatAuto the format follows the
// file extension of Path.
func NewSource(opts Options) (Source, error) {
	format := strings.ToLower(opts.Format)
	if format == FormatAuto {
		detected, err := DetectFormat(opts.Path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatJSON:
		if opts.Path == "" {
			return nil, fmt.Errorf("model path is required for %s format", format)
		}
		return &JSONFile{Path: opts.Path}, nil
	case FormatYAML:
		if opts.Path == "" {
			return nil, fmt.Errorf("model path is required for %s format", format)
		}
		return &YAMLFile{Path: opts.Path}, nil
	case FormatPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL is required for %s format", format)
		}
		return &Postgres{DatabaseURL: opts.DatabaseURL}, nil
	default:
		return nil, fmt.Errorf("unsupported model format %q", opts.Format)
	}
}

// DetectFormat maps a file extension to an artifact format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case "":
		return "", fmt.Errorf("cannot detect model format of %q: no file extension", path)
	default:
		return "", fmt.Errorf("cannot detect model format of %q: unknown extension", path)
	}
}

// Load fetches the artifact from src and builds the model. Any failure is
// returned as *LoadError.
func Load(ctx context.Context, src Source) (*trend.Model, error) {
	log := logger.G(ctx).WithField("source", src.Describe())

	artifact, err := src.Fetch(ctx)
	if err != nil {
		return nil, asLoadError(src, err)
	}

	model, err := FromArtifact(artifact)
	if err != nil {
		return nil, &LoadError{Source: src.Describe(), Message: "artifact rejected", Cause: err}
	}

	for _, skill := range model.Unmatchable() {
		log.WithField("skill", skill).Warn("skill contains characters removed by normalization and can never match")
	}
	log.WithFields(logrus.Fields{
		"skills":        model.Len(),
		"max_frequency": model.MaxFrequency(),
	}).Info("skill model loaded")

	return model, nil
}

// FromArtifact checks that every table is present and builds the model.
func FromArtifact(a *Artifact) (*trend.Model, error) {
	if a == nil {
		return nil, fmt.Errorf("artifact is empty")
	}
	if a.Skills == nil {
		return nil, fmt.Errorf("missing required field %q", "skills")
	}
	if a.SkillFrequencies == nil {
		return nil, fmt.Errorf("missing required field %q", "skill_frequencies")
	}
	if a.Classification == nil {
		return nil, fmt.Errorf("missing required field %q", "classification")
	}
	return trend.NewModel(a.Skills, a.SkillFrequencies, a.Classification)
}

func asLoadError(src Source, err error) error {
	if loadErr, ok := err.(*LoadError); ok {
		return loadErr
	}
	return &LoadError{Source: src.Describe(), Message: "failed to read artifact", Cause: err}
}
