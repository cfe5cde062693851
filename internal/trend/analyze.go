package trend

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DetectedSkill is a skill found in a job description together with its
// classification.
type DetectedSkill struct {
	Skill      string  `json:"skill"`
	Category   string  `json:"category"`
	TrendScore float64 `json:"trend_score"`
}

// Analyze extracts the model's skills from text and classifies each one.
// The result follows vocabulary order and is never nil.
func Analyze(model *Model, text string) []DetectedSkill {
	skills := Extract(text, model.vocabulary)
	out := make([]DetectedSkill, 0, len(skills))
	for _, skill := range skills {
		category, score := model.Classify(skill)
		out = append(out, DetectedSkill{
			Skill:      skill,
			Category:   category,
			TrendScore: score,
		})
	}
	return out
}

// AnalyzeBatch runs Analyze over texts with at most limit analyses in flight.
// Results are returned in input order. A limit below 1 means no limit.
// Only context cancellation produces an error.
func AnalyzeBatch(ctx context.Context, model *Model, texts []string, limit int) ([][]DetectedSkill, error) {
	results := make([][]DetectedSkill, len(texts))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, text := range texts {
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// each goroutine owns results[i]
			results[i] = Analyze(model, text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
