// Package idea defines the candidate proof-of-concept record shared by the
// ranking, planning and experiment card packages.
package idea

import (
	"fmt"
	"time"
)

// MinDimension and MaxDimension bound every scored dimension.
const (
	MinDimension = 1.0
	MaxDimension = 10.0
)

// Idea is a candidate PoC project.
// Higher Impact and DataReadiness are better; higher Effort and Risk are worse.
// Score and Rank are only set by the ranker.
type Idea struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Impact        float64  `json:"impact"`
	Effort        float64  `json:"effort"`
	Risk          float64  `json:"risk"`
	DataReadiness float64  `json:"dataReadiness"`
	Score         *float64 `json:"score,omitempty"`
	Rank          *int     `json:"rank,omitempty"`
}

// Dimension names one of the four scored inputs.
type Dimension string

const (
	DimImpact        Dimension = "Impact"
	DimEffort        Dimension = "Effort"
	DimRisk          Dimension = "Risk"
	DimDataReadiness Dimension = "Data Readiness"
)

// Dimensions lists the scored inputs in validation order.
var Dimensions = []Dimension{DimImpact, DimEffort, DimRisk, DimDataReadiness}

// Value returns the idea's value for a dimension.
func (i Idea) Value(d Dimension) float64 {
	switch d {
	case DimImpact:
		return i.Impact
	case DimEffort:
		return i.Effort
	case DimRisk:
		return i.Risk
	case DimDataReadiness:
		return i.DataReadiness
	}
	return 0
}

// Unscored returns a copy without Score and Rank.
func (i Idea) Unscored() Idea {
	i.Score = nil
	i.Rank = nil
	return i
}

// GenerateID builds the fallback identifier for a batch entry that arrived
// without one: idea_<unix millis>_<position>.
func GenerateID(submitted time.Time, index int) string {
	return fmt.Sprintf("idea_%d_%d", submitted.UnixMilli(), index)
}

// AssignMissingIDs fills empty IDs in place using GenerateID.
func AssignMissingIDs(ideas []Idea, submitted time.Time) {
	for i := range ideas {
		if ideas[i].ID == "" {
			ideas[i].ID = GenerateID(submitted, i)
		}
	}
}
