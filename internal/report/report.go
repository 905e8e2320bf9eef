// Package report turns a critique result into something a person can read.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muhammadolammi/resumecritic/internal/critique"
	"gopkg.in/yaml.v3"
)

// Tab selects which issues are listed.
type Tab string

const (
	TabAll    Tab = "all"
	TabImpact Tab = "impact"
	TabStyle  Tab = "style"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabAll, "":
		return TabAll, nil
	case TabImpact:
		return TabImpact, nil
	case TabStyle:
		return TabStyle, nil
	default:
		return "", fmt.Errorf("unknown tab %q (want all, impact or style)", s)
	}
}

// View is the state a report is rendered from.
type View struct {
	Result    critique.Result `json:"result" yaml:"result"`
	Filename  string          `json:"filename" yaml:"filename"`
	ActiveTab Tab             `json:"active_tab" yaml:"active_tab"`
}

func NewView(res critique.Result, filename string) View {
	return View{Result: res, Filename: filename, ActiveTab: TabAll}
}

// WithTab returns a copy of v showing tab.
func (v View) WithTab(tab Tab) View {
	v.ActiveTab = tab
	return v
}

// Filtered returns the issues visible under the active tab. The style tab
// also lists structure issues.
func (v View) Filtered() []critique.Issue {
	out := []critique.Issue{}
	for _, is := range v.Result.Issues {
		switch v.ActiveTab {
		case TabAll:
			out = append(out, is)
		case TabImpact:
			if is.Category == critique.CategoryImpact {
				out = append(out, is)
			}
		case TabStyle:
			if is.Category == critique.CategoryStyle || is.Category == critique.CategoryStructure {
				out = append(out, is)
			}
		}
	}
	return out
}

// CategoryCounts are the per-tab badge numbers. Style counts only style
// issues even though the style tab lists structure issues too.
type CategoryCounts struct {
	All    int `json:"all" yaml:"all"`
	Impact int `json:"impact" yaml:"impact"`
	Style  int `json:"style" yaml:"style"`
}

func Counts(res critique.Result) CategoryCounts {
	c := CategoryCounts{All: len(res.Issues)}
	for _, is := range res.Issues {
		switch is.Category {
		case critique.CategoryImpact:
			c.Impact++
		case critique.CategoryStyle:
			c.Style++
		}
	}
	return c
}

// Rating is the label shown on a summary card.
type Rating string

const (
	RatingGreat     Rating = "Great"
	RatingMedium    Rating = "Medium"
	RatingTooShort  Rating = "Too Short"
	RatingNeedsWork Rating = "Needs Work"
)

func IssueRating(count int) Rating {
	switch {
	case count == 0:
		return RatingGreat
	case count <= 2:
		return RatingMedium
	default:
		return RatingNeedsWork
	}
}

func BrevityRating(words int) Rating {
	switch {
	case words < 50 || words > 1000:
		return RatingNeedsWork
	case words < 100:
		return RatingTooShort
	default:
		return RatingGreat
	}
}

// Band is the coarse quality bucket for a score.
type Band string

const (
	BandStrong Band = "strong"
	BandFair   Band = "fair"
	BandWeak   Band = "weak"
)

func ScoreBand(score int) Band {
	switch {
	case score >= 80:
		return BandStrong
	case score >= 60:
		return BandFair
	default:
		return BandWeak
	}
}

// Render writes a plain-text report of v to w.
func Render(w io.Writer, v View) error {
	res := v.Result
	counts := Counts(res)

	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d/100 (%s)\n", res.Score, ScoreBand(res.Score))
	if v.Filename != "" {
		fmt.Fprintf(&b, "File: %s\n", v.Filename)
	}
	fmt.Fprintf(&b, "%d words, %d issues\n\n", res.WordCount, counts.All)
	fmt.Fprintf(&b, "  Impact:  %-10s (%d)\n", IssueRating(counts.Impact), counts.Impact)
	fmt.Fprintf(&b, "  Style:   %-10s (%d)\n", IssueRating(counts.Style), counts.Style)
	fmt.Fprintf(&b, "  Brevity: %s\n\n", BrevityRating(res.WordCount))

	filtered := v.Filtered()
	fmt.Fprintf(&b, "Issues [%s]\n", v.ActiveTab)
	if len(filtered) == 0 {
		b.WriteString("  No issues found in this category.\n")
	}
	for _, is := range filtered {
		fmt.Fprintf(&b, "  [%s] %s\n", strings.ToUpper(string(is.Severity)), is.Title)
		fmt.Fprintf(&b, "      %s\n", is.Description)
		if is.Fix != "" {
			fmt.Fprintf(&b, "      Suggestion: %s\n", is.Fix)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// document is the machine-readable shape of a report.
type document struct {
	Filename string           `json:"filename" yaml:"filename"`
	Tab      Tab              `json:"tab" yaml:"tab"`
	Score    int              `json:"score" yaml:"score"`
	Band     Band             `json:"band" yaml:"band"`
	Words    int              `json:"word_count" yaml:"word_count"`
	Counts   CategoryCounts   `json:"counts" yaml:"counts"`
	Issues   []critique.Issue `json:"issues" yaml:"issues"`
}

// Encode writes v in the given format: text, json or yaml.
func Encode(w io.Writer, format string, v View) error {
	doc := document{
		Filename: v.Filename,
		Tab:      v.ActiveTab,
		Score:    v.Result.Score,
		Band:     ScoreBand(v.Result.Score),
		Words:    v.Result.WordCount,
		Counts:   Counts(v.Result),
		Issues:   v.Filtered(),
	}

	switch strings.ToLower(format) {
	case "", "text":
		return Render(w, v)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
