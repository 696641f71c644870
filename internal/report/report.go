// Package report renders rankings, plans and experiment cards as Markdown.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TobiSchelling/PoCRanker/internal/card"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/plan"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
)

const sectionBreak = "\n\n---\n\n"

// Report is a complete top-picks report.
type Report struct {
	Ranking ranking.Result
	Summary ranking.Summary
	Plans   []plan.Plan
	Cards   []card.Card
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func score(i idea.Idea) string {
	if i.Score == nil {
		return "-"
	}
	return strconv.FormatFloat(*i.Score, 'f', 1, 64)
}

func rank(i idea.Idea) string {
	if i.Rank == nil {
		return "-"
	}
	return strconv.Itoa(*i.Rank)
}

// escapeCell keeps a value from breaking a Markdown table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// RankingTable renders the ranked ideas as a Markdown table.
func RankingTable(r ranking.Result) string {
	var b strings.Builder
	b.WriteString("| Rank | Idea | Score | Impact | Effort | Risk | Data | Quadrant |\n")
	b.WriteString("|---:|---|---:|---:|---:|---:|---:|---|\n")
	for _, i := range r.Ideas {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			rank(i), escapeCell(i.Title), score(i),
			num(i.Impact), num(i.Effort), num(i.Risk), num(i.DataReadiness),
			ranking.QuadrantOf(i))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SummaryBullets renders the score distribution as a bullet list.
func SummaryBullets(s ranking.Summary) string {
	if s.Count == 0 {
		return "- No ideas ranked."
	}
	lines := []string{
		fmt.Sprintf("- %d ideas ranked, %d top picks", s.Count, s.TopPicks),
		fmt.Sprintf("- Scores: mean %s, median %s, range %s-%s", num(s.Mean), num(s.Median), num(s.Min), num(s.Max)),
	}
	var quadrants []string
	for _, q := range ranking.AllQuadrants {
		if n := s.Quadrants[q]; n > 0 {
			quadrants = append(quadrants, fmt.Sprintf("%s %d", q, n))
		}
	}
	if len(quadrants) > 0 {
		lines = append(lines, "- Quadrants: "+strings.Join(quadrants, ", "))
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}

// Plan renders a 30/60/90-day plan.
func Plan(p plan.Plan) string {
	sections := []string{
		fmt.Sprintf("## 30/60/90-Day Plan: %s", p.IdeaTitle),
		fmt.Sprintf("**Team:** %d people · **Estimated cost:** $%d", p.Resources.Team, p.Resources.EstimatedCost),
		"### Days 1-30\n\n" + bullets(p.Days30),
		"### Days 31-60\n\n" + bullets(p.Days60),
		"### Days 61-90\n\n" + bullets(p.Days90),
	}

	var ms []string
	for _, m := range p.Milestones {
		ms = append(ms, fmt.Sprintf("- **Day %d: %s** %s", m.Day, m.Title, m.Description))
	}
	sections = append(sections, "### Milestones\n\n"+strings.Join(ms, "\n"))

	return strings.Join(sections, "\n\n")
}

// Card renders an experiment card.
func Card(c card.Card) string {
	sections := []string{
		fmt.Sprintf("## Experiment Card: %s", c.IdeaTitle),
		"### Problem\n\n" + c.Problem,
		"### Hypothesis\n\n" + c.Hypothesis,
		"### Dataset\n\n" + c.Dataset,
		"### Success Metrics\n\n" + bullets(c.Metrics),
		"### Go/No-Go Criteria\n\n" + bullets(c.GoNoGo.Criteria) + "\n\n" + c.GoNoGo.Threshold,
	}
	if len(c.BestPractices) > 0 {
		sections = append(sections, "### Best Practices\n\n"+bullets(c.BestPractices))
	}
	return strings.Join(sections, "\n\n")
}

// Compose assembles the full report: summary, ranking table, then a plan and
// an experiment card for every top pick.
func Compose(r Report) string {
	header := fmt.Sprintf("# PoC Ranking Report\n\n_Generated %s_\n\n%s",
		r.Ranking.Timestamp.Format(time.RFC1123), SummaryBullets(r.Summary))

	sections := []string{header, "## Ranking\n\n" + RankingTable(r.Ranking)}

	cards := make(map[string]card.Card, len(r.Cards))
	for _, c := range r.Cards {
		cards[c.IdeaID] = c
	}
	for _, p := range r.Plans {
		section := Plan(p)
		if c, ok := cards[p.IdeaID]; ok {
			section += "\n\n" + Card(c)
		}
		sections = append(sections, section)
	}

	return strings.Join(sections, sectionBreak)
}
