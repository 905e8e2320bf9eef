package critique

// Category groups issues for filtering.
type Category string

const (
	CategoryImpact    Category = "impact"
	CategoryStyle     Category = "style"
	CategoryStructure Category = "structure"
)

// Severity indicates how much an issue hurts the resume.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is a single detected writing weakness.
type Issue struct {
	ID          string   `json:"id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Fix         string   `json:"fix" yaml:"fix"`
}

// Result is the outcome of one Analyze call. Issues keep detection order.
type Result struct {
	Score     int     `json:"score" yaml:"score"`
	Issues    []Issue `json:"issues" yaml:"issues"`
	WordCount int     `json:"word_count" yaml:"word_count"`
}
