package critique

import (
	"math/rand/v2"
	"strings"
	"sync"
)

var badSentences = []string{
	"I was responsible for managing the team.",
	"I helped with the project deliverables.",
	"The project was handled by me entirely.",
	"I worked on sales reports.",
	"Made a new website for the client.",
	"My duties included filing reports and data entry.",
	"I am a hard worker and team player.",
	"Tasks were completed by me on time.",
}

var goodSentences = []string{
	"Orchestrated a team of 5 developers to launch the app.",
	"Spearheaded the Q3 marketing initiative, increasing leads by 15%.",
	"Developed a Python script that automated daily tasks.",
	"Managed a budget of $50,000 for the fiscal year.",
	"Collaborated with cross-functional teams to ensure quality.",
	"Reduced load times by 30% through code optimization.",
	"Executed a new sales strategy resulting in 10% growth.",
}

// Generator fabricates resume-like paragraphs for files that cannot be read
// as text. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a Generator drawing from rnd. A nil rnd uses a
// randomly seeded source.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rnd: rnd}
}

// Generate picks 1-4 bad and 2-5 good sentences, shuffles them together and
// joins them with spaces.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	badCount := g.rnd.IntN(4) + 1
	goodCount := g.rnd.IntN(4) + 2

	selected := append(g.pick(badSentences, badCount), g.pick(goodSentences, goodCount)...)
	g.rnd.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return strings.Join(selected, " ")
}

// pick returns n sentences from a shuffled copy of pool.
func (g *Generator) pick(pool []string, n int) []string {
	shuffled := append([]string(nil), pool...)
	g.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:min(n, len(shuffled))]
}
