// Package card generates experiment cards: the hypothesis, metrics and
// go/no-go criteria a PoC is judged against.
package card

import (
	"fmt"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

const maxBestPractices = 5

// GoNoGo holds the decision criteria and the threshold narrative.
type GoNoGo struct {
	Criteria         []string `json:"criteria"`
	Threshold        string   `json:"threshold"`
	SuccessThreshold int      `json:"successThreshold"`
	FirstCheckpoint  int      `json:"firstCheckpoint"`
}

// Card is the experiment card for one idea.
type Card struct {
	IdeaID        string   `json:"ideaId"`
	IdeaTitle     string   `json:"ideaTitle"`
	Problem       string   `json:"problem"`
	Hypothesis    string   `json:"hypothesis"`
	Dataset       string   `json:"dataset"`
	Metrics       []string `json:"metrics"`
	GoNoGo        GoNoGo   `json:"goNoGo"`
	BestPractices []string `json:"bestPractices"`
}

// Practices supplies playbook tips for an idea.
type Practices interface {
	RelevantPractices(i idea.Idea) ([]string, error)
}

// Generator builds experiment cards.
type Generator struct {
	practices Practices
}

// NewGenerator creates a Generator drawing best practices from p.
func NewGenerator(p Practices) *Generator {
	return &Generator{practices: p}
}

// Generate builds the card for a validated idea. The only failure is the
// practices source failing.
func (g *Generator) Generate(i idea.Idea) (Card, error) {
	tips, err := g.practices.RelevantPractices(i)
	if err != nil {
		return Card{}, fmt.Errorf("best practices for %q: %w", i.Title, err)
	}

	p := ProfileOf(i)
	return Card{
		IdeaID:     i.ID,
		IdeaTitle:  i.Title,
		Problem:    problemStatement(i),
		Hypothesis: hypothesis(i, p),
		Dataset:    datasetText[p.Data],
		Metrics:    metrics(p),
		GoNoGo: GoNoGo{
			Criteria:         criteria(p),
			Threshold:        thresholdNarrative(p),
			SuccessThreshold: p.SuccessThreshold,
			FirstCheckpoint:  p.FirstCheckpoint,
		},
		BestPractices: append([]string{}, tips[:min(len(tips), maxBestPractices)]...),
	}, nil
}

// GenerateAll builds one card per idea, stopping at the first failure.
func (g *Generator) GenerateAll(ideas []idea.Idea) ([]Card, error) {
	cards := make([]Card, 0, len(ideas))
	for _, i := range ideas {
		c, err := g.Generate(i)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
