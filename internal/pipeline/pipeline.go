// Package pipeline runs the backlog through ranking, planning and card
// generation and assembles the Markdown report.
package pipeline

import (
	"errors"
	"fmt"
	"log"

	"github.com/TobiSchelling/PoCRanker/internal/card"
	"github.com/TobiSchelling/PoCRanker/internal/config"
	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/plan"
	"github.com/TobiSchelling/PoCRanker/internal/playbook"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
	"github.com/TobiSchelling/PoCRanker/internal/report"
)

const totalSteps = 6

// ErrNoIdeas is reported by the load step when there is nothing to rank.
var ErrNoIdeas = errors.New("no ideas to rank")

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps   []StepResult
	Ranking *ranking.Result
	Plans   []plan.Plan
	Cards   []card.Card
	Report  string
}

// Err returns the first step error, if any.
func (r *Result) Err() error {
	for _, s := range r.Steps {
		if s.Err != nil {
			return fmt.Errorf("%s: %w", s.Name, s.Err)
		}
	}
	return nil
}

// Pipeline orchestrates the report generation steps.
type Pipeline struct {
	cfg       *config.Config
	db        *database.DB
	ranker    *ranking.Ranker
	practices *playbook.Source
}

// New creates a new pipeline. db may be nil when ideas are always supplied
// to Run.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		db:        db,
		ranker:    cfg.Ranker(),
		practices: playbook.NewSource(cfg.Playbook.Path),
	}
}

// Run executes all steps. When ideas is nil the stored backlog is used.
// A failing step stops the run.
func (p *Pipeline) Run(ideas []idea.Idea) *Result {
	r := &Result{}

	ideas, step := p.runLoad(ideas)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.runValidate(ideas)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	ranked, step := p.runRank(ideas)
	r.Steps = append(r.Steps, step)
	r.Ranking = &ranked

	r.Plans, step = p.runPlan(ranked.TopPicks)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	r.Cards, step = p.runCards(ranked.TopPicks)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	log.Printf("Step 6/%d: Composing report...", totalSteps)
	r.Report = report.Compose(report.Report{
		Ranking: ranked,
		Summary: ranking.Summarize(ranked),
		Plans:   r.Plans,
		Cards:   r.Cards,
	})
	r.Steps = append(r.Steps, StepResult{
		Name:    "Report",
		Summary: fmt.Sprintf("Report composed: %d top picks", len(ranked.TopPicks)),
	})

	return r
}

// DryRun shows what would be done without generating anything.
func (p *Pipeline) DryRun(ideas []idea.Idea) *Result {
	r := &Result{}

	ideas, step := p.runLoad(ideas)
	step.Summary = "[dry-run] " + step.Summary
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	invalid := 0
	if err := idea.ValidateBatch(ideas); err != nil {
		var be *idea.BatchError
		if errors.As(err, &be) {
			invalid = len(be.Details)
		}
	}
	r.Steps = append(r.Steps, StepResult{
		Name:    "Validate",
		Summary: fmt.Sprintf("[dry-run] %d of %d ideas are invalid", invalid, len(ideas)),
	})

	picks := ranking.TopPicksCount(len(ideas))
	r.Steps = append(r.Steps,
		StepResult{Name: "Rank", Summary: fmt.Sprintf("[dry-run] Would rank %d ideas (%s normalization)", len(ideas), p.ranker.Normalization)},
		StepResult{Name: "Plan", Summary: fmt.Sprintf("[dry-run] Would plan %d top picks with budget $%.0f and team of %d", picks, p.cfg.Planning.Budget, p.cfg.Planning.TeamSize)},
	)

	playbookSummary := fmt.Sprintf("[dry-run] Would build %d experiment cards", picks)
	if _, err := p.practices.Sections(); err != nil {
		playbookSummary += fmt.Sprintf(" (playbook unavailable: %v)", err)
	}
	r.Steps = append(r.Steps,
		StepResult{Name: "Cards", Summary: playbookSummary},
		StepResult{Name: "Report", Summary: "[dry-run] Would compose the Markdown report"},
	)

	return r
}

func (p *Pipeline) runLoad(ideas []idea.Idea) ([]idea.Idea, StepResult) {
	log.Printf("Step 1/%d: Loading ideas...", totalSteps)
	source := "input"
	if ideas == nil {
		if p.db == nil {
			return nil, StepResult{Name: "Load", Err: errors.New("no ideas given and no backlog database")}
		}
		var err error
		ideas, err = p.db.BacklogIdeas()
		if err != nil {
			return nil, StepResult{Name: "Load", Err: err}
		}
		source = "backlog"
	}
	if len(ideas) == 0 {
		return nil, StepResult{Name: "Load", Err: ErrNoIdeas}
	}
	return ideas, StepResult{
		Name:    "Load",
		Summary: fmt.Sprintf("Loaded %d ideas from %s", len(ideas), source),
	}
}

func (p *Pipeline) runValidate(ideas []idea.Idea) StepResult {
	log.Printf("Step 2/%d: Validating ideas...", totalSteps)
	if err := idea.ValidateBatch(ideas); err != nil {
		return StepResult{Name: "Validate", Err: err}
	}
	return StepResult{Name: "Validate", Summary: fmt.Sprintf("All %d ideas valid", len(ideas))}
}

func (p *Pipeline) runRank(ideas []idea.Idea) (ranking.Result, StepResult) {
	log.Printf("Step 3/%d: Ranking ideas...", totalSteps)
	ranked := p.ranker.Rank(ideas)
	best := ranked.Ideas[0]
	return ranked, StepResult{
		Name:    "Rank",
		Summary: fmt.Sprintf("Ranked %d ideas; top pick %q scores %.1f", len(ranked.Ideas), best.Title, *best.Score),
	}
}

func (p *Pipeline) runPlan(picks []idea.Idea) ([]plan.Plan, StepResult) {
	log.Printf("Step 4/%d: Generating plans...", totalSteps)
	c := p.cfg.Constraints()
	if err := c.Validate(); err != nil {
		return nil, StepResult{Name: "Plan", Err: err}
	}
	plans := plan.GenerateAll(picks, c)
	return plans, StepResult{Name: "Plan", Summary: fmt.Sprintf("Generated %d plans", len(plans))}
}

func (p *Pipeline) runCards(picks []idea.Idea) ([]card.Card, StepResult) {
	log.Printf("Step 5/%d: Generating experiment cards...", totalSteps)
	cards, err := card.NewGenerator(p.practices).GenerateAll(picks)
	if err != nil {
		return nil, StepResult{Name: "Cards", Err: err}
	}
	return cards, StepResult{Name: "Cards", Summary: fmt.Sprintf("Generated %d experiment cards", len(cards))}
}
