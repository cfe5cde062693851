package trend

import "strings"

// Extract returns the vocabulary skills that occur in the normalized text, in
// vocabulary order. Matching is plain substring containment, so a short skill
// such as "go" is also found inside "golang" or "algorithm".
func Extract(text string, vocabulary []string) []string {
	detected := make([]string, 0)
	normalized := Normalize(text)
	if normalized == "" {
		return detected
	}

	for _, skill := range vocabulary {
		if skill == "" {
			continue
		}
		if strings.Contains(normalized, skill) {
			detected = append(detected, skill)
		}
	}
	return detected
}
