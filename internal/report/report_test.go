package report

import (
	"strings"
	"testing"
	"time"

	"github.com/TobiSchelling/PoCRanker/internal/card"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/plan"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
)

type staticPractices []string

func (s staticPractices) RelevantPractices(idea.Idea) ([]string, error) { return s, nil }

func sampleIdeas() []idea.Idea {
	return []idea.Idea{
		{ID: "a", Title: "Invoice | OCR", Description: "Read invoices", Impact: 8, Effort: 3, Risk: 2, DataReadiness: 9},
		{ID: "b", Title: "Churn model", Description: "Predict churn", Impact: 4, Effort: 8, Risk: 7, DataReadiness: 2},
	}
}

func TestRankingTable(t *testing.T) {
	r := ranking.Rank(sampleIdeas(), ranking.DefaultWeights())
	table := RankingTable(r)

	lines := strings.Split(table, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, divider and 2 rows, got %d lines:\n%s", len(lines), table)
	}
	if !strings.HasPrefix(lines[2], "| 1 | Invoice \\| OCR |") {
		t.Errorf("expected escaped top idea first, got %q", lines[2])
	}
	if !strings.HasSuffix(lines[2], "| Quick Wins |") {
		t.Errorf("expected quadrant column, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Time Sinks") {
		t.Errorf("expected second row in Time Sinks, got %q", lines[3])
	}
}

func TestRankingTableUnscored(t *testing.T) {
	table := RankingTable(ranking.Result{Ideas: sampleIdeas()})
	if !strings.Contains(table, "| - | Churn model | - |") {
		t.Errorf("expected placeholders for unscored ideas:\n%s", table)
	}
}

func TestSummaryBullets(t *testing.T) {
	r := ranking.Rank(sampleIdeas(), ranking.DefaultWeights())
	out := SummaryBullets(ranking.Summarize(r))
	if !strings.Contains(out, "2 ideas ranked, 2 top picks") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "Quick Wins 1") {
		t.Errorf("expected quadrant counts:\n%s", out)
	}

	if got := SummaryBullets(ranking.Summary{}); got != "- No ideas ranked." {
		t.Errorf("unexpected empty summary %q", got)
	}
}

func TestPlan(t *testing.T) {
	p := plan.Generate(sampleIdeas()[1], plan.Constraints{Budget: 50000, TeamSize: 3})
	out := Plan(p)

	for _, want := range []string{
		"## 30/60/90-Day Plan: Churn model",
		"**Team:** 3 people · **Estimated cost:** $40000",
		"### Days 1-30",
		"- Initiate data collection and acquisition process",
		"- **Day 90: Go/No-Go Decision** Final review completed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected plan to contain %q", want)
		}
	}
}

func TestCard(t *testing.T) {
	c, err := card.NewGenerator(staticPractices{"💡 Tip"}).Generate(sampleIdeas()[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := Card(c)
	for _, want := range []string{
		"## Experiment Card: Invoice | OCR",
		"### Hypothesis",
		"**GO Decision:**",
		"### Best Practices\n\n- 💡 Tip",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected card to contain %q", want)
		}
	}

	c.BestPractices = nil
	if strings.Contains(Card(c), "Best Practices") {
		t.Error("expected no best practices section when empty")
	}
}

func TestCompose(t *testing.T) {
	ranker := ranking.NewRanker(ranking.DefaultWeights())
	ranker.Now = func() time.Time { return time.Date(2026, 2, 6, 9, 0, 0, 0, time.UTC) }
	r := ranker.Rank(sampleIdeas())

	plans := plan.GenerateAll(r.TopPicks, plan.Constraints{Budget: 50000, TeamSize: 3})
	cards, err := card.NewGenerator(staticPractices{}).GenerateAll(r.TopPicks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := Compose(Report{Ranking: r, Summary: ranking.Summarize(r), Plans: plans, Cards: cards})

	if !strings.HasPrefix(out, "# PoC Ranking Report\n\n_Generated Fri, 06 Feb 2026 09:00:00 UTC_") {
		t.Errorf("unexpected header:\n%s", out[:min(len(out), 120)])
	}
	if n := strings.Count(out, sectionBreak); n != 3 {
		t.Errorf("expected 3 section breaks (header, ranking, 2 picks), got %d", n)
	}
	if strings.Index(out, "Plan: Invoice | OCR") > strings.Index(out, "Plan: Churn model") {
		t.Error("expected plans in rank order")
	}
	if strings.Count(out, "## Experiment Card:") != 2 {
		t.Error("expected one card per top pick")
	}
}
