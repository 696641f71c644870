package ranking

import (
	"fmt"
	"math"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

// Weights are the per-dimension coefficients of the raw score.
// Effort and Risk are conventionally negative (penalties).
type Weights struct {
	Impact        float64 `json:"impact" yaml:"impact"`
	Effort        float64 `json:"effort" yaml:"effort"`
	Risk          float64 `json:"risk" yaml:"risk"`
	DataReadiness float64 `json:"dataReadiness" yaml:"data_readiness"`
}

// DefaultWeights returns the calibrated weights. With these the raw score
// spans exactly [-4.5, 4.5].
func DefaultWeights() Weights {
	return Weights{
		Impact:        0.4,
		Effort:        -0.3,
		Risk:          -0.2,
		DataReadiness: 0.1,
	}
}

// Validate rejects non-finite coefficients.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"impact":        w.Impact,
		"effort":        w.Effort,
		"risk":          w.Risk,
		"dataReadiness": w.DataReadiness,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s must be a finite number", name)
		}
	}
	return nil
}

// Raw computes the unnormalized weighted sum.
func (w Weights) Raw(i idea.Idea) float64 {
	return i.Impact*w.Impact +
		i.Effort*w.Effort +
		i.Risk*w.Risk +
		i.DataReadiness*w.DataReadiness
}

// Bounds returns the smallest and largest raw score reachable with these
// weights over the dimension range [1, 10]. A non-negative weight contributes
// its minimum at 1; a negative weight contributes its minimum at 10.
func (w Weights) Bounds() (lo, hi float64) {
	lowest := idea.Idea{
		Impact:        worstInput(w.Impact),
		Effort:        worstInput(w.Effort),
		Risk:          worstInput(w.Risk),
		DataReadiness: worstInput(w.DataReadiness),
	}
	highest := idea.Idea{
		Impact:        bestInput(w.Impact),
		Effort:        bestInput(w.Effort),
		Risk:          bestInput(w.Risk),
		DataReadiness: bestInput(w.DataReadiness),
	}
	// Same expression as Raw so boundary ideas normalize to exactly 0 and 100.
	return w.Raw(lowest), w.Raw(highest)
}

func worstInput(weight float64) float64 {
	if weight < 0 {
		return idea.MaxDimension
	}
	return idea.MinDimension
}

func bestInput(weight float64) float64 {
	if weight < 0 {
		return idea.MinDimension
	}
	return idea.MaxDimension
}
