package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// ParseDecision accepts "go", "pivot", "no_go" and "no-go", in any case.
func ParseDecision(s string) (Decision, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "go":
		return DecisionGo, nil
	case "pivot":
		return DecisionPivot, nil
	case "no_go", "nogo":
		return DecisionNoGo, nil
	}
	return "", fmt.Errorf("unknown decision %q (want go, pivot or no-go)", s)
}

// Label is the display form of a decision.
func (d Decision) Label() string {
	switch d {
	case DecisionGo:
		return "GO"
	case DecisionPivot:
		return "PIVOT"
	case DecisionNoGo:
		return "NO-GO"
	}
	return string(d)
}

// UpsertDecision records or replaces the decision for an idea.
func (db *DB) UpsertDecision(ideaID string, decision Decision, note string) error {
	existing, err := db.GetIdea(ideaID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrIdeaNotFound, ideaID)
	}

	var notePtr *string
	if note != "" {
		notePtr = &note
	}
	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO idea_decisions (idea_id, decision, note) VALUES (?, ?, ?)`,
		ideaID, string(decision), notePtr,
	)
	return err
}

// DeleteDecision removes the decision for an idea (toggle off).
func (db *DB) DeleteDecision(ideaID string) error {
	_, err := db.conn.Exec(`DELETE FROM idea_decisions WHERE idea_id = ?`, ideaID)
	return err
}

// GetDecision returns the decision for a single idea, or nil if none is recorded.
func (db *DB) GetDecision(ideaID string) (*IdeaDecision, error) {
	row := db.conn.QueryRow(
		`SELECT idea_id, decision, note, decided_at FROM idea_decisions WHERE idea_id = ?`,
		ideaID,
	)
	var d IdeaDecision
	var decision string
	if err := row.Scan(&d.IdeaID, &decision, &d.Note, &d.DecidedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	d.Decision = Decision(decision)
	return &d, nil
}

// GetDecisionMap returns a map of idea_id → decision.
func (db *DB) GetDecisionMap() (map[string]Decision, error) {
	rows, err := db.conn.Query(`SELECT idea_id, decision FROM idea_decisions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]Decision)
	for rows.Next() {
		var id, decision string
		if err := rows.Scan(&id, &decision); err != nil {
			return nil, err
		}
		m[id] = Decision(decision)
	}
	return m, rows.Err()
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM ideas", &s.Ideas},
		{"SELECT COUNT(*) FROM idea_decisions", &s.Decided},
		{"SELECT COUNT(*) FROM idea_decisions WHERE decision = 'go'", &s.Go},
		{"SELECT COUNT(*) FROM idea_decisions WHERE decision = 'pivot'", &s.Pivot},
		{"SELECT COUNT(*) FROM idea_decisions WHERE decision = 'no_go'", &s.NoGo},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	s.Undecided = s.Ideas - s.Decided

	return s, nil
}
