package ranking

import "github.com/TobiSchelling/PoCRanker/internal/idea"

// Quadrant is an idea's cell on the impact/effort matrix.
type Quadrant string

const (
	QuickWins     Quadrant = "Quick Wins"
	MajorProjects Quadrant = "Major Projects"
	FillIns       Quadrant = "Fill-Ins"
	TimeSinks     Quadrant = "Time Sinks"
)

// AllQuadrants lists quadrants in display order.
var AllQuadrants = []Quadrant{QuickWins, MajorProjects, FillIns, TimeSinks}

const (
	highImpactFrom = 6
	lowEffortUpTo  = 5
)

// QuadrantOf classifies an idea: impact >= 6 is high impact, effort <= 5 is low effort.
func QuadrantOf(i idea.Idea) Quadrant {
	highImpact := i.Impact >= highImpactFrom
	lowEffort := i.Effort <= lowEffortUpTo

	switch {
	case highImpact && lowEffort:
		return QuickWins
	case highImpact:
		return MajorProjects
	case lowEffort:
		return FillIns
	default:
		return TimeSinks
	}
}
