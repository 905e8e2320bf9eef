package critique

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	startingScore  = 100
	minWordCount   = 100
	fallbackStrong = "Executed"
)

// verbSwap pairs a weak verb with the power verb suggested in its place.
type verbSwap struct {
	Weak   string
	Strong string
}

// weakVerbs is ordered; the index is part of the issue id.
var weakVerbs = []verbSwap{
	{Weak: "helped", Strong: "Collaborated"},
	{Weak: "worked", Strong: "Orchestrated"},
	{Weak: "responsible for", Strong: "Spearheaded"},
	{Weak: "handled", Strong: "Managed"},
	{Weak: "made", Strong: "Developed"},
}

var pronouns = []string{" i ", " me ", " my ", " we "}

// space matches JavaScript's \s: ASCII whitespace, \v, Unicode separators and BOM.
const space = `[\s\v\p{Z}\x{FEFF}]`

var (
	whitespaceRun  = regexp.MustCompile(space + `+`)
	passivePattern = regexp.MustCompile(`(?i)\bwas\b` + space + `+\w+ed\b`)
	digitPattern   = regexp.MustCompile(`[0-9]+`)
)

// dottedCapitalI lowercases to i plus a combining dot, as full Unicode case
// mapping does, instead of a bare i.
var dottedCapitalI = strings.NewReplacer("\u0130", "i\u0307")

// document is the precomputed view every rule checks against.
type document struct {
	raw       string
	lower     string
	wordCount int
}

func newDocument(text string) document {
	return document{
		raw:       text,
		lower:     strings.ToLower(dottedCapitalI.Replace(text)),
		wordCount: countWords(text),
	}
}

// countWords splits on whitespace runs and counts every field, including empty
// leading and trailing ones, so "" counts as one word.
func countWords(text string) int {
	return len(whitespaceRun.Split(text, -1))
}

// rule is a single independent check. It returns the issues it found and the
// points to deduct for them.
type rule struct {
	Name  string
	Check func(doc document) ([]Issue, int)
}

var defaultRules = []rule{
	{Name: "weak-verbs", Check: checkWeakVerbs},
	{Name: "pronouns", Check: checkPronouns},
	{Name: "length", Check: checkLength},
	{Name: "passive-voice", Check: checkPassiveVoice},
	{Name: "quantification", Check: checkQuantification},
}

func strongVerbFor(weak string) string {
	for _, swap := range weakVerbs {
		if swap.Weak == weak && swap.Strong != "" {
			return swap.Strong
		}
	}
	return fallbackStrong
}

func checkWeakVerbs(doc document) ([]Issue, int) {
	var issues []Issue
	for i, swap := range weakVerbs {
		if !strings.Contains(doc.lower, swap.Weak) {
			continue
		}
		issues = append(issues, Issue{
			ID:          fmt.Sprintf("weak-verb-%d", i),
			Category:    CategoryImpact,
			Severity:    SeverityMedium,
			Title:       fmt.Sprintf("Weak Action Verb Found: %q", swap.Weak),
			Description: fmt.Sprintf("Using %q undermines your impact. Use stronger power verbs to showcase leadership.", swap.Weak),
			Fix:         fmt.Sprintf("Replace %q with %q or similar.", swap.Weak, strongVerbFor(swap.Weak)),
		})
	}
	return issues, 5 * len(issues)
}

func checkPronouns(doc document) ([]Issue, int) {
	for _, p := range pronouns {
		if strings.Contains(doc.lower, p) {
			return []Issue{{
				ID:          "pronouns",
				Category:    CategoryStyle,
				Severity:    SeverityHigh,
				Title:       "First-Person Pronouns Detected",
				Description: `Resumes should be written in implied first person (e.g., "Managed team" instead of "I managed the team").`,
				Fix:         `Remove instances of "I", "Me", "My", or "We". Start sentences directly with verbs.`,
			}}, 10
		}
	}
	return nil, 0
}

func checkLength(doc document) ([]Issue, int) {
	if doc.wordCount >= minWordCount {
		return nil, 0
	}
	return []Issue{{
		ID:          "length-short",
		Category:    CategoryStructure,
		Severity:    SeverityHigh,
		Title:       "Resume is too short",
		Description: "Your content seems sparse. A standard resume should be detailed enough to explain your value.",
		Fix:         `Expand on your bullet points using the "Result + Action + Context" formula.`,
	}}, 15
}

func checkPassiveVoice(doc document) ([]Issue, int) {
	if !passivePattern.MatchString(doc.raw) && !strings.Contains(doc.raw, " by ") {
		return nil, 0
	}
	return []Issue{{
		ID:          "passive-voice",
		Category:    CategoryStyle,
		Severity:    SeverityMedium,
		Title:       "Passive Voice Detected",
		Description: `Phrases like "was handled" or "done by" obscure your specific contribution.`,
		Fix:         `Switch to active voice: "Orchestrated the project" instead of "Project was orchestrated by me".`,
	}}, 5
}

func checkQuantification(doc document) ([]Issue, int) {
	if digitPattern.MatchString(doc.raw) {
		return nil, 0
	}
	return []Issue{{
		ID:          "no-numbers",
		Category:    CategoryImpact,
		Severity:    SeverityMedium,
		Title:       "Lack of Quantification",
		Description: "Your resume lacks numbers or metrics. Recruiters look for data to prove your value.",
		Fix:         `Add specific numbers: "Managed team of 5", "Increased sales by 20%", "Reduced load time by 3s".`,
	}}, 5
}
