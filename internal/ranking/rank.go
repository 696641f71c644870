package ranking

import (
	"sort"
	"time"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

const (
	minTopPicks      = 3
	topPicksFraction = 5 // top 20% == ceil(n/5)
)

// Result is a ranked batch. TopPicks is a prefix of Ideas sharing its storage.
type Result struct {
	Ideas     []idea.Idea `json:"ideas"`
	TopPicks  []idea.Idea `json:"topPicks"`
	Timestamp time.Time   `json:"timestamp"`
}

// Ranker scores and orders idea batches.
type Ranker struct {
	Weights       Weights
	Normalization Normalization
	Now           func() time.Time
}

// NewRanker creates a Ranker using derived normalization and the wall clock.
func NewRanker(w Weights) *Ranker {
	return &Ranker{Weights: w, Normalization: NormalizeDerived, Now: time.Now}
}

// Rank ranks ideas with w using derived normalization.
func Rank(ideas []idea.Idea, w Weights) Result {
	return NewRanker(w).Rank(ideas)
}

// Score scores a single idea with the ranker's weights and normalization.
func (r *Ranker) Score(i idea.Idea) float64 {
	return scoreWith(i, r.Weights, r.Normalization)
}

// Rank scores every idea, sorts descending by score and assigns 1-based
// ranks. Ties keep their input order. The input slice is left untouched;
// the result holds copies carrying Score and Rank.
func (r *Ranker) Rank(ideas []idea.Idea) Result {
	scored := make([]idea.Idea, len(ideas))
	for i, item := range ideas {
		s := r.Score(item)
		item.Score = &s
		item.Rank = nil
		scored[i] = item
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return *scored[a].Score > *scored[b].Score
	})

	for i := range scored {
		rank := i + 1
		scored[i].Rank = &rank
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	return Result{
		Ideas:     scored,
		TopPicks:  scored[:TopPicksCount(len(scored))],
		Timestamp: now().UTC(),
	}
}

// TopPicksCount returns max(3, ceil(0.2*n)) capped at n.
func TopPicksCount(n int) int {
	count := max(minTopPicks, (n+topPicksFraction-1)/topPicksFraction)
	return min(count, n)
}
