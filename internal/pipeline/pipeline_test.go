package pipeline

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TobiSchelling/PoCRanker/internal/config"
	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/playbook"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ideas() []idea.Idea {
	return []idea.Idea{
		{ID: "a", Title: "Invoice OCR", Description: "Read invoices", Impact: 8, Effort: 3, Risk: 2, DataReadiness: 9},
		{ID: "b", Title: "Churn model", Description: "Predict churn", Impact: 6, Effort: 7, Risk: 7, DataReadiness: 3},
		{ID: "c", Title: "Chat summaries", Description: "Summarize chats", Impact: 3, Effort: 2, Risk: 2, DataReadiness: 6},
		{ID: "d", Title: "Demand forecast", Description: "Forecast demand", Impact: 9, Effort: 9, Risk: 8, DataReadiness: 5},
	}
}

func TestRunFromBacklog(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.UpsertIdeas(ideas()); err != nil {
		t.Fatalf("seeding backlog: %v", err)
	}

	r := New(config.Default(), db).Run(nil)
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Steps) != totalSteps {
		t.Errorf("expected %d steps, got %d", totalSteps, len(r.Steps))
	}
	if !strings.Contains(r.Steps[0].Summary, "from backlog") {
		t.Errorf("expected backlog source, got %q", r.Steps[0].Summary)
	}
	if len(r.Ranking.TopPicks) != 3 {
		t.Errorf("expected 3 top picks, got %d", len(r.Ranking.TopPicks))
	}
	if len(r.Plans) != 3 || len(r.Cards) != 3 {
		t.Errorf("expected a plan and card per top pick, got %d plans, %d cards", len(r.Plans), len(r.Cards))
	}
	if r.Plans[0].IdeaID != r.Ranking.TopPicks[0].ID {
		t.Error("expected plans in rank order")
	}
	if !strings.Contains(r.Report, "# PoC Ranking Report") {
		t.Error("expected composed report")
	}
}

func TestRunWithSuppliedIdeas(t *testing.T) {
	r := New(config.Default(), nil).Run(ideas()[:2])
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Ranking.TopPicks) != 2 {
		t.Errorf("expected all ideas to be top picks, got %d", len(r.Ranking.TopPicks))
	}
}

func TestRunStopsOnInvalidIdeas(t *testing.T) {
	bad := ideas()
	bad[1].Title = ""
	bad[1].Impact = 11

	r := New(config.Default(), nil).Run(bad)
	var be *idea.BatchError
	if !errors.As(r.Err(), &be) {
		t.Fatalf("expected BatchError, got %v", r.Err())
	}
	if len(be.Details["idea_1"]) != 2 {
		t.Errorf("expected 2 errors for idea_1, got %v", be.Details)
	}
	if len(r.Steps) != 2 || r.Ranking != nil {
		t.Error("expected the run to stop after validation")
	}
}

func TestRunEmptyBacklog(t *testing.T) {
	r := New(config.Default(), openTestDB(t)).Run(nil)
	if !errors.Is(r.Err(), ErrNoIdeas) {
		t.Errorf("expected ErrNoIdeas, got %v", r.Err())
	}
}

func TestRunMissingPlaybook(t *testing.T) {
	cfg := config.Default()
	cfg.Playbook.Path = filepath.Join(t.TempDir(), "missing.md")

	r := New(cfg, nil).Run(ideas())
	if !errors.Is(r.Err(), playbook.ErrPlaybookNotFound) {
		t.Fatalf("expected ErrPlaybookNotFound, got %v", r.Err())
	}
	if r.Report != "" {
		t.Error("expected no report when cards fail")
	}
}

func TestDryRun(t *testing.T) {
	bad := ideas()
	bad[0].Description = ""

	r := New(config.Default(), nil).DryRun(bad)
	if len(r.Steps) != totalSteps {
		t.Fatalf("expected %d steps, got %d", totalSteps, len(r.Steps))
	}
	for _, s := range r.Steps {
		if !strings.HasPrefix(s.Summary, "[dry-run]") {
			t.Errorf("expected dry-run summary, got %q", s.Summary)
		}
	}
	if !strings.Contains(r.Steps[1].Summary, "1 of 4 ideas are invalid") {
		t.Errorf("unexpected validation summary %q", r.Steps[1].Summary)
	}
	if r.Report != "" || r.Ranking != nil {
		t.Error("dry run must not generate output")
	}
}
