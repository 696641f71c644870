package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/importer"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
)

const maxTitleWidth = 40

var quadrantColors = map[ranking.Quadrant]*color.Color{
	ranking.QuickWins:     color.New(color.FgGreen, color.Bold),
	ranking.MajorProjects: color.New(color.FgBlue, color.Bold),
	ranking.FillIns:       color.New(color.FgHiBlack),
	ranking.TimeSinks:     color.New(color.FgRed),
}

var decisionColors = map[database.Decision]*color.Color{
	database.DecisionGo:    color.New(color.FgGreen, color.Bold),
	database.DecisionPivot: color.New(color.FgYellow, color.Bold),
	database.DecisionNoGo:  color.New(color.FgRed, color.Bold),
}

func quadrantLabel(q ranking.Quadrant) string {
	if c, ok := quadrantColors[q]; ok {
		return c.Sprint(string(q))
	}
	return string(q)
}

func decisionLabel(d database.Decision) string {
	if c, ok := decisionColors[d]; ok {
		return c.Sprint(d.Label())
	}
	return d.Label()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printRanking prints the ranked table. decisions may be nil.
func printRanking(result ranking.Result, decisions map[string]database.Decision) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Rank", "ID", "Idea", "Score", "Impact", "Effort", "Risk", "Data", "Quadrant"}
	if decisions != nil {
		headers = append(headers, "Decision")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for n, i := range result.Ideas {
		rank := "-"
		if i.Rank != nil {
			rank = strconv.Itoa(*i.Rank)
		}
		if n < len(result.TopPicks) {
			rank += " *"
		}
		score := "-"
		if i.Score != nil {
			score = strconv.FormatFloat(*i.Score, 'f', 1, 64)
		}
		row := []string{
			rank,
			i.ID,
			truncate(i.Title, maxTitleWidth),
			score,
			num(i.Impact),
			num(i.Effort),
			num(i.Risk),
			num(i.DataReadiness),
			quadrantLabel(ranking.QuadrantOf(i)),
		}
		if decisions != nil {
			label := ""
			if d, ok := decisions[i.ID]; ok {
				label = decisionLabel(d)
			}
			row = append(row, label)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func printSummary(s ranking.Summary) {
	fmt.Printf("\n%d ideas ranked, %d top picks (marked *)\n", s.Count, s.TopPicks)
	if s.Count == 0 {
		return
	}
	fmt.Printf("Scores: mean %.1f, median %.1f, std dev %.1f, range %.1f-%.1f\n", s.Mean, s.Median, s.StdDev, s.Min, s.Max)

	parts := make([]string, 0, len(ranking.AllQuadrants))
	for _, q := range ranking.AllQuadrants {
		parts = append(parts, fmt.Sprintf("%s %d", quadrantLabel(q), s.Quadrants[q]))
	}
	fmt.Printf("Quadrants: %s\n", strings.Join(parts, ", "))
}

// loadIdeas reads ideas from the file in args, or from the stored backlog
// when args is empty. The batch is validated before it is returned.
func loadIdeas(args []string) ([]idea.Idea, error) {
	var ideas []idea.Idea
	if len(args) > 0 {
		loaded, err := importer.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		ideas = loaded
		idea.AssignMissingIDs(ideas, time.Now())
	} else {
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if ideas, err = db.BacklogIdeas(); err != nil {
			return nil, err
		}
	}

	if len(ideas) == 0 {
		return nil, errors.New("no ideas to work on: pass a file or add ideas with 'pocranker ideas add'")
	}
	if err := idea.ValidateBatch(ideas); err != nil {
		printBatchError(err)
		return nil, err
	}
	return ideas, nil
}

// printBatchError lists every invalid idea on stderr.
func printBatchError(err error) {
	var be *idea.BatchError
	if !errors.As(err, &be) {
		return
	}
	keys := make([]string, 0, len(be.Details))
	for k := range be.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(os.Stderr, "Invalid ideas:")
	for _, k := range keys {
		for _, msg := range be.Details[k] {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", k, msg)
		}
	}
}
