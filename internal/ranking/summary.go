package ranking

import (
	"github.com/montanaflynn/stats"
)

// Summary describes the score distribution of a ranked batch.
type Summary struct {
	Count     int              `json:"count"`
	TopPicks  int              `json:"topPicks"`
	Mean      float64          `json:"mean"`
	Median    float64          `json:"median"`
	StdDev    float64          `json:"stdDev"`
	Min       float64          `json:"min"`
	Max       float64          `json:"max"`
	Quadrants map[Quadrant]int `json:"quadrants"`
}

// Summarize computes distribution statistics over the scored ideas in r.
// An empty result yields a zero Summary.
func Summarize(r Result) Summary {
	s := Summary{
		Count:     len(r.Ideas),
		TopPicks:  len(r.TopPicks),
		Quadrants: make(map[Quadrant]int, len(AllQuadrants)),
	}
	for _, q := range AllQuadrants {
		s.Quadrants[q] = 0
	}
	if len(r.Ideas) == 0 {
		return s
	}

	scores := make(stats.Float64Data, 0, len(r.Ideas))
	for _, i := range r.Ideas {
		s.Quadrants[QuadrantOf(i)]++
		if i.Score != nil {
			scores = append(scores, *i.Score)
		}
	}
	if len(scores) == 0 {
		return s
	}

	// scores is non-empty, the only input these stats calls reject.
	mean, _ := scores.Mean()
	median, _ := scores.Median()
	stdDev, _ := scores.StandardDeviation()
	s.Mean, _ = stats.Round(mean, 1)
	s.Median, _ = stats.Round(median, 1)
	s.StdDev, _ = stats.Round(stdDev, 1)
	s.Min, _ = scores.Min()
	s.Max, _ = scores.Max()
	return s
}
