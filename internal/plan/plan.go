// Package plan builds 30/60/90-day execution plans for ranked ideas.
//
// Generation is split in two: Conditions captures which thresholds an idea
// crosses, and the task tables in tasks.go turn those conditions into text.
package plan

import (
	"fmt"
	"math"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

// Constraints are the project-wide resources available to a plan.
type Constraints struct {
	Budget   float64 `json:"budget" yaml:"budget"`
	TeamSize int     `json:"teamSize" yaml:"team_size"`
}

// MaxTeamSize is the largest team a plan may be staffed from.
const MaxTeamSize = 20

// Validate rejects a non-positive budget and team sizes outside
// 1..MaxTeamSize.
func (c Constraints) Validate() error {
	if math.IsNaN(c.Budget) || math.IsInf(c.Budget, 0) || c.Budget <= 0 {
		return fmt.Errorf("budget must be a positive number, got %v", c.Budget)
	}
	if c.TeamSize < 1 || c.TeamSize > MaxTeamSize {
		return fmt.Errorf("team size must be between 1 and %d, got %d", MaxTeamSize, c.TeamSize)
	}
	return nil
}

// Resources is the staffing and cost estimate for one plan.
type Resources struct {
	Team          int   `json:"team"`
	EstimatedCost int64 `json:"estimatedCost"`
}

// Milestone is a fixed checkpoint within the 90 days.
type Milestone struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Plan is the 30/60/90-day schedule for one idea.
type Plan struct {
	IdeaID     string      `json:"ideaId"`
	IdeaTitle  string      `json:"ideaTitle"`
	Days30     []string    `json:"days30"`
	Days60     []string    `json:"days60"`
	Days90     []string    `json:"days90"`
	Resources  Resources   `json:"resources"`
	Milestones []Milestone `json:"milestones"`
}

// Conditions records which planning thresholds an idea crosses.
type Conditions struct {
	LowDataReadiness bool `json:"lowDataReadiness"` // dataReadiness < 4
	HighRisk         bool `json:"highRisk"`         // risk >= 7
	HighEffort       bool `json:"highEffort"`       // effort >= 7
	HighImpact       bool `json:"highImpact"`       // impact >= 7
}

// ConditionsOf evaluates the planning thresholds for i.
func ConditionsOf(i idea.Idea) Conditions {
	return Conditions{
		LowDataReadiness: i.DataReadiness < 4,
		HighRisk:         i.Risk >= 7,
		HighEffort:       i.Effort >= 7,
		HighImpact:       i.Impact >= 7,
	}
}

const (
	standardTeam   = 3
	highEffortTeam = 5
)

// Estimate computes team size and cost. The team is capped by the available
// team size, and the cost scales the budget by effort and by the share of the
// available team the plan uses.
func Estimate(i idea.Idea, c Constraints) Resources {
	team := standardTeam
	if ConditionsOf(i).HighEffort {
		team = highEffortTeam
	}
	team = min(c.TeamSize, team)

	effortMultiplier := i.Effort / 10
	cost := math.Round(c.Budget * effortMultiplier * float64(team) / float64(c.TeamSize))

	return Resources{Team: team, EstimatedCost: int64(cost)}
}

// Generate builds the plan for a validated idea. Constraints are assumed
// valid; see Constraints.Validate.
func Generate(i idea.Idea, c Constraints) Plan {
	cond := ConditionsOf(i)
	return Plan{
		IdeaID:     i.ID,
		IdeaTitle:  i.Title,
		Days30:     firstPhase(cond),
		Days60:     secondPhase(cond),
		Days90:     thirdPhase(cond),
		Resources:  Estimate(i, c),
		Milestones: milestones(),
	}
}

// GenerateAll builds one plan per idea, in order.
func GenerateAll(ideas []idea.Idea, c Constraints) []Plan {
	plans := make([]Plan, 0, len(ideas))
	for _, i := range ideas {
		plans = append(plans, Generate(i, c))
	}
	return plans
}
