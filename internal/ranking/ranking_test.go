package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

func mk(id string, impact, effort, risk, data float64) idea.Idea {
	return idea.Idea{
		ID:            id,
		Title:         "Idea " + id,
		Description:   "Description " + id,
		Impact:        impact,
		Effort:        effort,
		Risk:          risk,
		DataReadiness: data,
	}
}

func TestDefaultWeightBounds(t *testing.T) {
	lo, hi := DefaultWeights().Bounds()
	assert.InDelta(t, -4.5, lo, 1e-9)
	assert.InDelta(t, 4.5, hi, 1e-9)
}

func TestScore_BoundaryInputs(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 0.0, Score(mk("worst", 1, 10, 10, 1), w))
	assert.Equal(t, 100.0, Score(mk("best", 10, 1, 1, 10), w))
}

func TestScore_RoundsToOneDecimal(t *testing.T) {
	// raw = 2.0 - 1.2 - 0.6 + 0.5 = 0.7 -> (5.2 / 9) * 100 = 57.777...
	assert.Equal(t, 57.8, Score(mk("a", 5, 4, 3, 5), DefaultWeights()))
}

func TestScore_RangeAndMonotonicity(t *testing.T) {
	w := DefaultWeights()
	values := []float64{1, 2.5, 4, 5, 6, 7.5, 9, 10}

	for _, im := range values {
		for _, ef := range values {
			for _, rk := range values {
				for _, dr := range values {
					base := mk("x", im, ef, rk, dr)
					s := Score(base, w)
					require.GreaterOrEqual(t, s, 0.0)
					require.LessOrEqual(t, s, 100.0)

					if im < 10 {
						up := base
						up.Impact = im + 0.5
						assert.GreaterOrEqual(t, Score(up, w), s, "impact")
					}
					if dr < 10 {
						up := base
						up.DataReadiness = dr + 0.5
						assert.GreaterOrEqual(t, Score(up, w), s, "dataReadiness")
					}
					if ef < 10 {
						up := base
						up.Effort = ef + 0.5
						assert.LessOrEqual(t, Score(up, w), s, "effort")
					}
					if rk < 10 {
						up := base
						up.Risk = rk + 0.5
						assert.LessOrEqual(t, Score(up, w), s, "risk")
					}
				}
			}
		}
	}
}

func TestScore_CustomWeightsStayInRange(t *testing.T) {
	w := Weights{Impact: 1, Effort: -1, Risk: 0, DataReadiness: 0.5}
	assert.Equal(t, 0.0, Score(mk("worst", 1, 10, 5, 1), w))
	assert.Equal(t, 100.0, Score(mk("best", 10, 1, 5, 10), w))
}

func TestScore_LegacyNormalizationKeepsFixedBounds(t *testing.T) {
	w := Weights{Impact: 1, Effort: 0, Risk: 0, DataReadiness: 0}
	r := &Ranker{Weights: w, Normalization: NormalizeLegacy}

	// raw 5 with fixed bounds: (5 + 4.5) / 9 * 100 = 105.5 -> clamped
	assert.Equal(t, 100.0, r.Score(mk("a", 5, 5, 5, 5)))
	// derived bounds [1, 10]: (5 - 1) / 9 * 100 = 44.4
	assert.Equal(t, 44.4, Score(mk("a", 5, 5, 5, 5), w))
}

func TestScore_DegenerateWeights(t *testing.T) {
	assert.Equal(t, 0.0, Score(mk("a", 5, 5, 5, 5), Weights{}))
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	i := mk("a", 5, 4, 3, 5)
	before := i
	Score(i, DefaultWeights())
	assert.Equal(t, before, i)
}

func TestParseNormalization(t *testing.T) {
	n, err := ParseNormalization("")
	require.NoError(t, err)
	assert.Equal(t, NormalizeDerived, n)

	n, err = ParseNormalization("legacy")
	require.NoError(t, err)
	assert.Equal(t, NormalizeLegacy, n)

	_, err = ParseNormalization("linear")
	assert.Error(t, err)
}

func TestRank_OrdersAndAssignsDenseRanks(t *testing.T) {
	ideas := []idea.Idea{
		mk("low", 2, 9, 8, 2),
		mk("high", 9, 2, 2, 9),
		mk("mid", 6, 5, 4, 6),
	}

	res := Rank(ideas, DefaultWeights())
	require.Len(t, res.Ideas, 3)

	ids := []string{res.Ideas[0].ID, res.Ideas[1].ID, res.Ideas[2].ID}
	assert.Equal(t, []string{"high", "mid", "low"}, ids)
	for i, it := range res.Ideas {
		require.NotNil(t, it.Rank)
		require.NotNil(t, it.Score)
		assert.Equal(t, i+1, *it.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, *res.Ideas[i-1].Score, *it.Score)
		}
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	ideas := []idea.Idea{
		mk("first", 5, 5, 5, 5),
		mk("better", 9, 1, 1, 9),
		mk("second", 5, 5, 5, 5),
		mk("third", 5, 5, 5, 5),
	}

	res := Rank(ideas, DefaultWeights())
	var ids []string
	for _, it := range res.Ideas {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"better", "first", "second", "third"}, ids)
	assert.Equal(t, 2, *res.Ideas[1].Rank)
	assert.Equal(t, 4, *res.Ideas[3].Rank)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	ideas := []idea.Idea{mk("a", 2, 9, 8, 2), mk("b", 9, 2, 2, 9)}
	before := append([]idea.Idea(nil), ideas...)

	Rank(ideas, DefaultWeights())
	assert.Equal(t, before, ideas)
	assert.Nil(t, ideas[0].Score)
}

func TestRank_TopPicksShareStorage(t *testing.T) {
	var ideas []idea.Idea
	for i := 0; i < 10; i++ {
		ideas = append(ideas, mk(fmt.Sprint(i), float64(i%10+1), 5, 5, 5))
	}
	res := Rank(ideas, DefaultWeights())
	require.Len(t, res.TopPicks, 3)

	assert.Same(t, &res.Ideas[0], &res.TopPicks[0])
	assert.Equal(t, res.Ideas[:3], res.TopPicks)
}

func TestRank_UsesInjectedClock(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRanker(DefaultWeights())
	r.Now = func() time.Time { return at }

	res := r.Rank([]idea.Idea{mk("a", 5, 5, 5, 5)})
	assert.Equal(t, at, res.Timestamp)
}

func TestRank_Empty(t *testing.T) {
	res := Rank(nil, DefaultWeights())
	assert.Empty(t, res.Ideas)
	assert.Empty(t, res.TopPicks)
}

func TestTopPicksCount(t *testing.T) {
	cases := map[int]int{
		0:   0,
		1:   1,
		2:   2,
		3:   3,
		4:   3,
		15:  3,
		16:  4,
		20:  4,
		21:  5,
		100: 20,
	}
	for n, want := range cases {
		assert.Equal(t, want, TopPicksCount(n), "n=%d", n)
	}
}

func TestQuadrantOf(t *testing.T) {
	assert.Equal(t, QuickWins, QuadrantOf(mk("a", 8, 3, 5, 5)))
	assert.Equal(t, MajorProjects, QuadrantOf(mk("b", 8, 8, 5, 5)))
	assert.Equal(t, FillIns, QuadrantOf(mk("c", 3, 3, 5, 5)))
	assert.Equal(t, TimeSinks, QuadrantOf(mk("d", 3, 8, 5, 5)))

	// thresholds are inclusive
	assert.Equal(t, QuickWins, QuadrantOf(mk("e", 6, 5, 5, 5)))
	assert.Equal(t, TimeSinks, QuadrantOf(mk("f", 5.9, 5.1, 5, 5)))
}

func TestSummarize(t *testing.T) {
	res := Rank([]idea.Idea{
		mk("best", 10, 1, 1, 10),
		mk("worst", 1, 10, 10, 1),
	}, DefaultWeights())

	s := Summarize(res)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 2, s.TopPicks)
	assert.Equal(t, 50.0, s.Mean)
	assert.Equal(t, 50.0, s.Median)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 1, s.Quadrants[QuickWins])
	assert.Equal(t, 1, s.Quadrants[TimeSinks])
	assert.Equal(t, 0, s.Quadrants[FillIns])
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(Result{})
	assert.Equal(t, 0, s.Count)
	assert.Len(t, s.Quadrants, 4)
}

func TestSummarize_SingleIdea(t *testing.T) {
	s := Summarize(Rank([]idea.Idea{mk("only", 8, 3, 2, 9)}, DefaultWeights()))
	require.Equal(t, 1, s.Count)
	assert.Equal(t, s.Min, s.Max)
	assert.Equal(t, s.Max, s.Mean)
	assert.Equal(t, s.Mean, s.Median)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Greater(t, s.Mean, 0.0)
}
