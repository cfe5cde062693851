package trend

// Catalog returns every vocabulary skill with its classification, in
// vocabulary order.
func Catalog(model *Model) []DetectedSkill {
	out := make([]DetectedSkill, 0, len(model.vocabulary))
	for _, skill := range model.vocabulary {
		category, score := model.Classify(skill)
		out = append(out, DetectedSkill{Skill: skill, Category: category, TrendScore: score})
	}
	return out
}
