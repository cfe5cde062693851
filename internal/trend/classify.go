package trend

import "strconv"

// Classify returns the category and trend score of skill. The score is the
// skill's frequency divided by the model's maximum frequency, rounded to two
// decimals. Unknown skills score 0 in DefaultCategory.
func (m *Model) Classify(skill string) (category string, score float64) {
	score = roundScore(m.Frequency(skill) / m.maxFrequency)
	return m.Category(skill), score
}

// roundScore rounds the exact binary value of v to two decimals, ties to
// even, and clamps to [0, 1]. Scaling by 100 first would turn values just
// off a half into exact ties.
func roundScore(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return min(1, max(0, r))
}
