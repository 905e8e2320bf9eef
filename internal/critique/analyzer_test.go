package critique

import (
	"strings"
	"testing"
)

func cleanResume() string {
	return strings.TrimSpace(strings.Repeat("Delivered 3 dashboards for finance stakeholders. ", 17))
}

func issueIDs(res Result) []string {
	ids := make([]string, 0, len(res.Issues))
	for _, is := range res.Issues {
		ids = append(ids, is.ID)
	}
	return ids
}

func hasIssue(res Result, id string) bool {
	for _, is := range res.Issues {
		if is.ID == id {
			return true
		}
	}
	return false
}

func TestAnalyzeCleanResume(t *testing.T) {
	res := Analyze(cleanResume())
	if res.Score != 100 {
		t.Fatalf("expected score 100, got %d (issues %v)", res.Score, issueIDs(res))
	}
	if len(res.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", issueIDs(res))
	}
	if res.WordCount != 102 {
		t.Fatalf("expected 102 words, got %d", res.WordCount)
	}
}

func TestAnalyzeScenario(t *testing.T) {
	res := Analyze("I was responsible for managing the team. I helped with tasks.")

	want := []string{"weak-verb-0", "weak-verb-2", "pronouns", "length-short", "no-numbers"}
	got := issueIDs(res)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("issues = %v, want %v", got, want)
	}
	if res.Score != 60 {
		t.Fatalf("expected score 60, got %d", res.Score)
	}
	if res.WordCount != 11 {
		t.Fatalf("expected 11 words, got %d", res.WordCount)
	}
}

func TestAnalyzeEmptyString(t *testing.T) {
	res := Analyze("")
	if res.WordCount != 1 {
		t.Fatalf("expected word count 1 for empty input, got %d", res.WordCount)
	}
	want := []string{"length-short", "no-numbers"}
	if got := issueIDs(res); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("issues = %v, want %v", got, want)
	}
	if res.Score != 80 {
		t.Fatalf("expected score 80, got %d", res.Score)
	}
}

func TestAnalyzeRules(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		present []string
		absent  []string
	}{
		{name: "weak verb uppercase", text: "HELPED the team", present: []string{"weak-verb-0"}},
		{name: "weak verb lowercase", text: "helped the team", present: []string{"weak-verb-0"}},
		{name: "multi word weak verb", text: "Responsible For billing", present: []string{"weak-verb-2"}},
		{name: "india is not a pronoun", text: "Based in India with 5 years", absent: []string{"pronouns"}},
		{name: "space bounded pronoun", text: "Honestly i am proud", present: []string{"pronouns"}},
		{name: "pronoun at start is not space bounded", text: "I led 4 teams", absent: []string{"pronouns"}},
		{name: "passive pattern", text: "The budget was managed well", present: []string{"passive-voice"}},
		{name: "passive pattern case insensitive", text: "It WAS Approved quickly", present: []string{"passive-voice"}},
		{name: "by phrase", text: "Grew revenue by 5%", present: []string{"passive-voice"}, absent: []string{"no-numbers"}},
		{name: "no digits", text: "Grew revenue significantly", present: []string{"no-numbers"}, absent: []string{"passive-voice"}},
		{name: "by is case sensitive", text: "Led 2 teams. By design", absent: []string{"passive-voice"}},
		{name: "passive across nbsp", text: "Budget was\u00a0approved in 2020", present: []string{"passive-voice"}},
		{name: "passive across vertical tab", text: "Budget was\vapproved in 2020", present: []string{"passive-voice"}},
		{name: "dotted capital I is not a pronoun", text: "Met \u0130 twice in 2020", absent: []string{"pronouns"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Analyze(tt.text)
			for _, id := range tt.present {
				if !hasIssue(res, id) {
					t.Errorf("expected issue %s, got %v", id, issueIDs(res))
				}
			}
			for _, id := range tt.absent {
				if hasIssue(res, id) {
					t.Errorf("unexpected issue %s in %v", id, issueIDs(res))
				}
			}
		})
	}
}

func TestAnalyzeOneIssuePerWeakVerb(t *testing.T) {
	res := Analyze("helped helped helped with 1 thing")
	count := 0
	for _, is := range res.Issues {
		if is.ID == "weak-verb-0" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one weak-verb-0 issue, got %d", count)
	}
}

func TestAnalyzePronounPenaltyAppliedOnce(t *testing.T) {
	base := cleanResume()
	res := Analyze(base + " and i told me my we plan")
	if res.Score != 90 {
		t.Fatalf("expected score 90, got %d (issues %v)", res.Score, issueIDs(res))
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"I helped, worked, made and handled things I was responsible for. It was handled by me.",
		cleanResume(),
		strings.Repeat("we helped ", 500),
	}
	for _, in := range inputs {
		res := Analyze(in)
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("score %d out of range for %q", res.Score, in)
		}
	}

	worst := Analyze("So i helped, worked, made and handled what i was responsible for; it was handled by me.")
	if worst.Score != 40 {
		t.Fatalf("expected every rule to fire for score 40, got %d (issues %v)", worst.Score, issueIDs(worst))
	}
}

func TestWeakVerbFix(t *testing.T) {
	res := Analyze("Made 3 tools")
	if len(res.Issues) == 0 || res.Issues[0].ID != "weak-verb-4" {
		t.Fatalf("expected weak-verb-4 first, got %v", issueIDs(res))
	}
	want := `Replace "made" with "Developed" or similar.`
	if res.Issues[0].Fix != want {
		t.Fatalf("fix = %q, want %q", res.Issues[0].Fix, want)
	}
	if res.Issues[0].Category != CategoryImpact || res.Issues[0].Severity != SeverityMedium {
		t.Fatalf("unexpected classification: %+v", res.Issues[0])
	}
}

func TestStrongVerbFallback(t *testing.T) {
	if got := strongVerbFor("assisted"); got != "Executed" {
		t.Fatalf("expected fallback Executed, got %q", got)
	}
	if got := strongVerbFor("handled"); got != "Managed" {
		t.Fatalf("expected Managed, got %q", got)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"a", 1},
		{"a  b", 2},
		{"a\tb\nc", 3},
		{"a b", 2},
		{" a b ", 4},
		{"was\u00a0approved", 2},
	}
	for _, tt := range tests {
		if got := countWords(tt.in); got != tt.want {
			t.Errorf("countWords(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
