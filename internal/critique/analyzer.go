// Package critique scores resume prose against a fixed set of writing heuristics.
package critique

// Analyze runs every rule against text and returns the score, the issues in
// detection order and the word count. It never fails.
func Analyze(text string) Result {
	doc := newDocument(text)

	score := startingScore
	issues := []Issue{}
	for _, r := range defaultRules {
		found, penalty := r.Check(doc)
		issues = append(issues, found...)
		score -= penalty
	}

	return Result{
		Score:     max(0, score),
		Issues:    issues,
		WordCount: doc.wordCount,
	}
}
