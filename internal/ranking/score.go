// Package ranking scores candidate ideas, orders them and picks the subset
// worth planning.
package ranking

import (
	"fmt"
	"math"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

// Normalization selects how the raw score is mapped onto 0-100.
type Normalization string

const (
	// NormalizeDerived recomputes the bounds from the weights in effect.
	NormalizeDerived Normalization = "derived"
	// NormalizeLegacy uses the fixed [-4.5, 4.5] bounds of the default weights.
	// Custom weights can then produce scores outside 0-100, which are clamped.
	NormalizeLegacy Normalization = "legacy"
)

const (
	legacyMin = -4.5
	legacyMax = 4.5
)

// ParseNormalization maps a config value onto a Normalization. Empty means derived.
func ParseNormalization(s string) (Normalization, error) {
	switch Normalization(s) {
	case "", NormalizeDerived:
		return NormalizeDerived, nil
	case NormalizeLegacy:
		return NormalizeLegacy, nil
	}
	return "", fmt.Errorf("unknown normalization %q (want %q or %q)", s, NormalizeDerived, NormalizeLegacy)
}

// Score returns the idea's desirability in [0, 100], rounded to one decimal,
// using bounds derived from w. Dimensions are assumed validated.
func Score(i idea.Idea, w Weights) float64 {
	return scoreWith(i, w, NormalizeDerived)
}

func scoreWith(i idea.Idea, w Weights, mode Normalization) float64 {
	lo, hi := legacyMin, legacyMax
	if mode != NormalizeLegacy {
		lo, hi = w.Bounds()
	}
	if hi <= lo {
		return 0
	}

	normalized := (w.Raw(i) - lo) / (hi - lo) * 100
	rounded := math.Round(normalized*10) / 10
	return min(max(rounded, 0), 100)
}
