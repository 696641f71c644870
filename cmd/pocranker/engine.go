package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/PoCRanker/internal/card"
	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/plan"
	"github.com/TobiSchelling/PoCRanker/internal/playbook"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
	"github.com/TobiSchelling/PoCRanker/internal/report"
)

// --- rank command ---

var rankCmd = &cobra.Command{
	Use:   "rank [file]",
	Short: "Score and rank ideas from a file or the backlog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideas, err := loadIdeas(args)
		if err != nil {
			return err
		}

		result := cfg.Ranker().Rank(ideas)
		if jsonOutput {
			return printJSON(result)
		}

		var decisions map[string]database.Decision
		if len(args) == 0 {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			if decisions, err = db.GetDecisionMap(); err != nil {
				return err
			}
		}
		if err := printRanking(result, decisions); err != nil {
			return err
		}
		printSummary(ranking.Summarize(result))
		return nil
	},
}

// --- plan command ---

var (
	planMarkdown bool
	planTopOnly  bool
	planBudget   float64
	planTeamSize int
)

var planCmd = &cobra.Command{
	Use:   "plan [file]",
	Short: "Draft 30/60/90-day plans",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideas, err := loadIdeas(args)
		if err != nil {
			return err
		}

		constraints := cfg.Constraints()
		if cmd.Flags().Changed("budget") {
			constraints.Budget = planBudget
		}
		if cmd.Flags().Changed("team-size") {
			constraints.TeamSize = planTeamSize
		}
		if err := constraints.Validate(); err != nil {
			return fmt.Errorf("invalid constraints: %w", err)
		}

		if planTopOnly {
			ideas = cfg.Ranker().Rank(ideas).TopPicks
		}
		plans := plan.GenerateAll(ideas, constraints)

		switch {
		case jsonOutput:
			return printJSON(plans)
		case planMarkdown:
			for n, p := range plans {
				if n > 0 {
					fmt.Print("\n---\n\n")
				}
				fmt.Print(report.Plan(p))
			}
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Idea", "Team", "Est. Cost", "Needs"})
		var data [][]string
		for n, p := range plans {
			data = append(data, []string{
				truncate(p.IdeaTitle, maxTitleWidth),
				fmt.Sprint(p.Resources.Team),
				fmt.Sprintf("$%d", p.Resources.EstimatedCost),
				needs(plan.ConditionsOf(ideas[n])),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Printf("\nBudget $%.0f, team of %d. Use --markdown for the full schedules.\n", constraints.Budget, constraints.TeamSize)
		return nil
	},
}

func needs(c plan.Conditions) string {
	var out []string
	if c.LowDataReadiness {
		out = append(out, "data work")
	}
	if c.HighRisk {
		out = append(out, "risk mitigation")
	}
	if c.HighEffort {
		out = append(out, "phased delivery")
	}
	if c.HighImpact {
		out = append(out, "scale-up")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}

func init() {
	planCmd.Flags().BoolVar(&planMarkdown, "markdown", false, "Print the full plans as Markdown")
	planCmd.Flags().BoolVar(&planTopOnly, "top", false, "Plan only the top picks")
	planCmd.Flags().Float64Var(&planBudget, "budget", 0, "Override planning.budget")
	planCmd.Flags().IntVar(&planTeamSize, "team-size", 0, "Override planning.team_size")
}

// --- card command ---

var cardTopOnly bool

var cardCmd = &cobra.Command{
	Use:   "card [file]",
	Short: "Generate experiment cards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideas, err := loadIdeas(args)
		if err != nil {
			return err
		}
		if cardTopOnly {
			ideas = cfg.Ranker().Rank(ideas).TopPicks
		}

		cards, err := card.NewGenerator(playbook.NewSource(cfg.Playbook.Path)).GenerateAll(ideas)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cards)
		}
		for n, c := range cards {
			if n > 0 {
				fmt.Print("\n---\n\n")
			}
			fmt.Print(report.Card(c))
		}
		return nil
	},
}

func init() {
	cardCmd.Flags().BoolVar(&cardTopOnly, "top", false, "Generate cards only for the top picks")
}

// --- practices command ---

var practicesCmd = &cobra.Command{
	Use:   "practices [file]",
	Short: "Show playbook tips relevant to each idea",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideas, err := loadIdeas(args)
		if err != nil {
			return err
		}

		source := playbook.NewSource(cfg.Playbook.Path)
		out := make(map[string][]string, len(ideas))
		for n, i := range ideas {
			tips, err := source.RelevantPractices(i)
			if err != nil {
				return err
			}
			if jsonOutput {
				out[i.ID] = tips
				continue
			}
			if n > 0 {
				fmt.Println()
			}
			fmt.Printf("%s (%s)\n", i.Title, quadrantLabel(ranking.QuadrantOf(i)))
			for _, tip := range tips {
				fmt.Printf("  %s\n", tip)
			}
		}
		if jsonOutput {
			return printJSON(out)
		}
		return nil
	},
}

// --- playbook command ---

var (
	playbookCategory string
	playbookTitle    string
	playbookDump     bool
)

var playbookCmd = &cobra.Command{
	Use:   "playbook",
	Short: "Browse the best-practice playbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if playbookDump {
			_, err := os.Stdout.Write(playbook.Default())
			return err
		}

		sections, err := playbook.NewSource(cfg.Playbook.Path).Lookup(playbookCategory, playbookTitle)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(sections)
		}
		if len(sections) == 0 {
			fmt.Println("No playbook sections match.")
			return nil
		}
		for n, s := range sections {
			if n > 0 {
				fmt.Println()
			}
			fmt.Printf("%s / %s\n", s.Category, s.Title)
			for _, tip := range s.Tips {
				fmt.Printf("  - %s\n", tip)
			}
		}
		return nil
	},
}

func init() {
	playbookCmd.Flags().StringVar(&playbookCategory, "category", "", "Filter by category (substring, case-insensitive)")
	playbookCmd.Flags().StringVar(&playbookTitle, "title", "", "Filter by section title (substring, case-insensitive)")
	playbookCmd.Flags().BoolVar(&playbookDump, "default", false, "Print the built-in playbook Markdown, e.g. to start a custom one")
}
