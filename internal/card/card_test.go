package card

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/playbook"
)

type fakePractices struct {
	tips  []string
	err   error
	calls int
}

func (f *fakePractices) RelevantPractices(idea.Idea) ([]string, error) {
	f.calls++
	return f.tips, f.err
}

func sampleIdea() idea.Idea {
	return idea.Idea{
		ID:            "idea-1",
		Title:         "Invoice OCR",
		Description:   "Invoices are typed in by hand.",
		Impact:        8,
		Effort:        5,
		Risk:          2,
		DataReadiness: 8,
	}
}

func TestProfileOf(t *testing.T) {
	p := ProfileOf(sampleIdea())
	assert.Equal(t, Profile{
		Impact:           ImpactSignificant,
		Confidence:       ConfidenceHigh,
		Data:             DataHigh,
		SuccessThreshold: 80,
		FirstCheckpoint:  30,
	}, p)

	p = ProfileOf(idea.Idea{Impact: 4, Effort: 7, Risk: 6, DataReadiness: 4})
	assert.Equal(t, ImpactModerate, p.Impact)
	assert.Equal(t, ConfidenceModerate, p.Confidence)
	assert.Equal(t, DataPartial, p.Data)
	assert.Equal(t, 70, p.SuccessThreshold)
	assert.Equal(t, 45, p.FirstCheckpoint)
	assert.True(t, p.HighEffort)

	p = ProfileOf(idea.Idea{Impact: 3.9, Effort: 1, Risk: 7, DataReadiness: 3.9})
	assert.Equal(t, ImpactMeasurable, p.Impact)
	assert.Equal(t, ConfidenceCautious, p.Confidence)
	assert.Equal(t, DataLimited, p.Data)
	assert.Equal(t, 60, p.SuccessThreshold)
	assert.True(t, p.HighRisk)
	assert.True(t, p.LowData)
}

func TestGenerate_HighImpactLowRisk(t *testing.T) {
	g := NewGenerator(&fakePractices{tips: []string{"a"}})
	c, err := g.Generate(sampleIdea())
	require.NoError(t, err)

	assert.Equal(t, "idea-1", c.IdeaID)
	assert.Equal(t, "Invoice OCR", c.IdeaTitle)
	assert.Equal(t, "Invoices are typed in by hand.\n\nThis initiative aims to address the challenge through an AI-powered approach, with an estimated impact level of 8/10 on business outcomes.", c.Problem)
	assert.Equal(t, "We believe that implementing Invoice OCR will deliver significant improvements in the target area. Our high confidence is based on the current risk assessment (2/10) and available data readiness (8/10).", c.Hypothesis)
	assert.True(t, strings.HasPrefix(c.Dataset, "High-quality datasets are available"))

	assert.Equal(t, 80, c.GoNoGo.SuccessThreshold)
	assert.Equal(t, 30, c.GoNoGo.FirstCheckpoint)
	assert.Len(t, c.GoNoGo.Criteria, 4)
	assert.Contains(t, c.GoNoGo.Criteria[0], "Day 30")
	assert.Contains(t, c.GoNoGo.Criteria[2], "80%+")
	assert.Contains(t, c.GoNoGo.Threshold, "**GO Decision:** Achieve 80%+")
	assert.Contains(t, c.GoNoGo.Threshold, "Achieve 70-80% of targets")
	assert.Contains(t, c.GoNoGo.Threshold, "<70% of targets met")

	assert.Equal(t, []string{"a"}, c.BestPractices)
}

func TestGenerate_FractionalDimensions(t *testing.T) {
	i := sampleIdea()
	i.Impact, i.Risk = 7.5, 3.5

	c, err := NewGenerator(&fakePractices{}).Generate(i)
	require.NoError(t, err)
	assert.Contains(t, c.Problem, "impact level of 7.5/10")
	assert.Contains(t, c.Hypothesis, "Our moderate confidence")
	assert.Contains(t, c.Hypothesis, "(3.5/10)")
	assert.NotNil(t, c.BestPractices)
}

func TestMetrics(t *testing.T) {
	cases := []struct {
		impact float64
		want   int
		marker string
	}{
		{8, 7, "User adoption rate (target: >60%)"},
		{5, 6, "User satisfaction score (target: >7/10)"},
		{2, 6, "User engagement metrics (target: baseline +10%)"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.impact), func(t *testing.T) {
			m := metrics(ProfileOf(idea.Idea{Impact: tc.impact, Effort: 1, Risk: 1, DataReadiness: 10}))
			assert.Len(t, m, tc.want)
			assert.Equal(t, "Model accuracy/performance vs baseline (target: +20%)", m[0])
			assert.Contains(t, m, tc.marker)
			assert.Equal(t, "Resource utilization (target: <80% of allocated)", m[len(m)-1])
		})
	}
}

func TestCriteria_Conditional(t *testing.T) {
	c := criteria(ProfileOf(idea.Idea{Impact: 8, Effort: 8, Risk: 8, DataReadiness: 2}))
	require.Len(t, c, 7)
	assert.Contains(t, c[0], "Day 45")
	assert.Equal(t, "All high-risk items successfully mitigated or resolved by day 45", c[4])
	assert.Equal(t, "Data pipeline established and quality validated", c[5])
	assert.Contains(t, c[6], "Technical debt")
}

func TestThresholdNarrative(t *testing.T) {
	n := thresholdNarrative(ProfileOf(idea.Idea{Impact: 2, Effort: 1, Risk: 1, DataReadiness: 10}))
	assert.Equal(t, `**GO Decision:** Achieve 60%+ of target metrics, demonstrate clear scalability path, positive cost-benefit analysis.

**PIVOT Decision:** Achieve 50-60% of targets, issues identified but addressable with scope adjustments.

**NO-GO Decision:** <50% of targets met, fundamental technical or business blockers, negative ROI projection.`, n)
}

func TestGenerate_CapsBestPractices(t *testing.T) {
	f := &fakePractices{tips: []string{"1", "2", "3", "4", "5", "6", "7"}}
	c, err := NewGenerator(f).Generate(sampleIdea())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, c.BestPractices)
}

func TestGenerate_PracticesError(t *testing.T) {
	_, err := NewGenerator(&fakePractices{err: playbook.ErrPlaybookNotFound}).Generate(sampleIdea())
	assert.True(t, errors.Is(err, playbook.ErrPlaybookNotFound))
}

func TestGenerate_WithBuiltinPlaybook(t *testing.T) {
	c, err := NewGenerator(playbook.NewSource("")).Generate(sampleIdea())
	require.NoError(t, err)
	require.Len(t, c.BestPractices, 5)
	assert.True(t, strings.HasPrefix(c.BestPractices[0], "💡 "))
}

func TestGenerateAll(t *testing.T) {
	f := &fakePractices{tips: []string{"tip"}}
	second := sampleIdea()
	second.ID = "idea-2"

	cards, err := NewGenerator(f).GenerateAll([]idea.Idea{sampleIdea(), second})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "idea-2", cards[1].IdeaID)
	assert.Equal(t, 2, f.calls)

	_, err = NewGenerator(&fakePractices{err: errors.New("boom")}).GenerateAll([]idea.Idea{sampleIdea()})
	assert.Error(t, err)
}
