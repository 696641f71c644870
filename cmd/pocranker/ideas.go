package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/importer"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Manage the idea backlog",
}

var addIdea idea.Idea

var ideasAddCmd = &cobra.Command{
	Use:   "add [title] [description]",
	Short: "Add an idea to the backlog",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		i := addIdea
		i.Title = strings.TrimSpace(args[0])
		i.Description = strings.TrimSpace(args[1])
		if res := idea.Validate(i); !res.Valid {
			return fmt.Errorf("invalid idea: %s", strings.Join(res.Errors, "; "))
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.InsertIdea(i)
		if err != nil {
			return err
		}
		score := cfg.Ranker().Score(i)
		fmt.Printf("Added idea [%s]: %s (score %.1f, %s)\n", id, i.Title, score, quadrantLabel(ranking.QuadrantOf(i)))
		return nil
	},
}

func init() {
	f := ideasAddCmd.Flags()
	f.StringVar(&addIdea.ID, "id", "", "Idea ID (default: random UUID)")
	f.Float64Var(&addIdea.Impact, "impact", 0, "Business impact, 1-10")
	f.Float64Var(&addIdea.Effort, "effort", 0, "Implementation effort, 1-10")
	f.Float64Var(&addIdea.Risk, "risk", 0, "Risk, 1-10")
	f.Float64Var(&addIdea.DataReadiness, "data-readiness", 0, "Data readiness, 1-10")
	for _, name := range []string{"impact", "effort", "risk", "data-readiness"} {
		_ = ideasAddCmd.MarkFlagRequired(name)
	}
}

var ideasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the backlog in insertion order",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := db.GetAllIdeas()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(items)
		}
		if len(items) == 0 {
			fmt.Println("No ideas in the backlog. Add one with: pocranker ideas add")
			return nil
		}

		decisions, err := db.GetDecisionMap()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"ID", "Idea", "Impact", "Effort", "Risk", "Data", "Decision", "Added"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})
		var data [][]string
		for _, s := range items {
			decision := ""
			if d, ok := decisions[s.ID]; ok {
				decision = decisionLabel(d)
			}
			added := ""
			if s.CreatedAt != nil {
				added = *s.CreatedAt
			}
			data = append(data, []string{
				s.ID,
				truncate(s.Title, maxTitleWidth),
				num(s.Impact),
				num(s.Effort),
				num(s.Risk),
				num(s.DataReadiness),
				decision,
				added,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	},
}

var ideasShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a backlog idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		s, err := db.GetIdea(args[0])
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("idea %s not found", args[0])
		}
		decision, err := db.GetDecision(s.ID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(map[string]any{"idea": s, "decision": decision})
		}

		fmt.Printf("[%s] %s\n\n", s.ID, s.Title)
		fmt.Printf("%s\n\n", s.Description)
		fmt.Printf("  Impact: %s  Effort: %s  Risk: %s  Data readiness: %s\n", num(s.Impact), num(s.Effort), num(s.Risk), num(s.DataReadiness))
		fmt.Printf("  Score: %.1f  Quadrant: %s\n", cfg.Ranker().Score(s.Idea), quadrantLabel(ranking.QuadrantOf(s.Idea)))
		if decision != nil {
			fmt.Printf("  Decision: %s", decisionLabel(decision.Decision))
			if decision.Note != nil {
				fmt.Printf(" (%s)", *decision.Note)
			}
			fmt.Println()
		}
		return nil
	},
}

var ideasRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an idea from the backlog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		s, err := db.GetIdea(args[0])
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("idea %s not found", args[0])
		}
		if err := db.DeleteIdea(s.ID); err != nil {
			return err
		}
		fmt.Printf("Removed idea [%s]: %s\n", s.ID, s.Title)
		return nil
	},
}

var ideasImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import ideas from a .json, .csv or .xlsx file",
	Long:  "Imports every idea in the file. Ideas whose ID already exists are updated in place; ideas without an ID get a new one.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ideas, err := importer.ReadFile(args[0])
		if err != nil {
			return err
		}
		if len(ideas) == 0 {
			return errors.New("file contains no ideas")
		}
		if err := idea.ValidateBatch(ideas); err != nil {
			printBatchError(err)
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ids, err := db.UpsertIdeas(ideas)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d ideas from %s\n", len(ids), args[0])
		return nil
	},
}

var ideasExportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Export the backlog to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if f, err := importer.FormatOf(args[0]); err != nil || f != importer.FormatXLSX {
			return fmt.Errorf("export target must be an .xlsx file: %s", args[0])
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ideas, err := db.BacklogIdeas()
		if err != nil {
			return err
		}
		if err := importer.WriteXLSX(args[0], ideas); err != nil {
			return err
		}
		fmt.Printf("Exported %d ideas to %s\n", len(ideas), args[0])
		return nil
	},
}

var decisionNote string

var ideasDecideCmd = &cobra.Command{
	Use:   "decide [id] [go|pivot|no-go|clear]",
	Short: "Record the go/no-go outcome of a PoC",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		id := args[0]
		if strings.EqualFold(args[1], "clear") {
			if err := db.DeleteDecision(id); err != nil {
				return err
			}
			fmt.Printf("Cleared decision for [%s]\n", id)
			return nil
		}

		d, err := database.ParseDecision(args[1])
		if err != nil {
			return err
		}
		if err := db.UpsertDecision(id, d, decisionNote); err != nil {
			return err
		}
		fmt.Printf("Recorded %s for [%s]\n", decisionLabel(d), id)
		return nil
	},
}

func init() {
	ideasDecideCmd.Flags().StringVar(&decisionNote, "note", "", "Optional note explaining the decision")

	ideasCmd.AddCommand(ideasAddCmd)
	ideasCmd.AddCommand(ideasListCmd)
	ideasCmd.AddCommand(ideasShowCmd)
	ideasCmd.AddCommand(ideasRemoveCmd)
	ideasCmd.AddCommand(ideasImportCmd)
	ideasCmd.AddCommand(ideasExportCmd)
	ideasCmd.AddCommand(ideasDecideCmd)
}
