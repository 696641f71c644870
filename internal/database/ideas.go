package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

// ErrIdeaNotFound is returned when an operation targets an unknown idea ID.
var ErrIdeaNotFound = errors.New("idea not found")

const ideaColumns = "id, title, description, impact, effort, risk, data_readiness, created_at, updated_at"

// InsertIdea adds an idea to the backlog and returns its ID. Ideas without an
// ID get a random UUID.
func (db *DB) InsertIdea(i idea.Idea) (string, error) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	_, err := db.conn.Exec(
		`INSERT INTO ideas (id, title, description, impact, effort, risk, data_readiness)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.Title, i.Description, i.Impact, i.Effort, i.Risk, i.DataReadiness,
	)
	if err != nil {
		return "", fmt.Errorf("inserting idea %s: %w", i.ID, err)
	}
	return i.ID, nil
}

// UpsertIdeas inserts ideas, replacing the fields of entries whose ID already
// exists, in a single transaction. Missing IDs get a random UUID. It returns
// the IDs in input order.
func (db *DB) UpsertIdeas(ideas []idea.Idea) ([]string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(ideas))
	for _, i := range ideas {
		if i.ID == "" {
			i.ID = uuid.NewString()
		}
		if _, err := tx.Exec(
			`INSERT INTO ideas (id, title, description, impact, effort, risk, data_readiness)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				impact = excluded.impact,
				effort = excluded.effort,
				risk = excluded.risk,
				data_readiness = excluded.data_readiness,
				updated_at = datetime('now')`,
			i.ID, i.Title, i.Description, i.Impact, i.Effort, i.Risk, i.DataReadiness,
		); err != nil {
			return nil, fmt.Errorf("upserting idea %s: %w", i.ID, err)
		}
		ids = append(ids, i.ID)
	}

	return ids, tx.Commit()
}

// GetIdea returns a single idea by ID, or nil if it does not exist.
func (db *DB) GetIdea(id string) (*StoredIdea, error) {
	row := db.conn.QueryRow("SELECT "+ideaColumns+" FROM ideas WHERE id = ?", id)
	s, err := scanIdea(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetAllIdeas returns the backlog in insertion order.
func (db *DB) GetAllIdeas() ([]StoredIdea, error) {
	rows, err := db.conn.Query("SELECT " + ideaColumns + " FROM ideas ORDER BY created_at, rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []StoredIdea
	for rows.Next() {
		s, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, *s)
	}
	return ideas, rows.Err()
}

// BacklogIdeas returns the backlog as plain ideas, ready for ranking.
func (db *DB) BacklogIdeas() ([]idea.Idea, error) {
	stored, err := db.GetAllIdeas()
	if err != nil {
		return nil, err
	}
	ideas := make([]idea.Idea, 0, len(stored))
	for _, s := range stored {
		ideas = append(ideas, s.Idea)
	}
	return ideas, nil
}

// UpdateIdea updates the specified fields of an idea.
func (db *DB) UpdateIdea(id string, u IdeaUpdate) error {
	var updates []string
	var args []any

	set := func(column string, v any) {
		updates = append(updates, column+" = ?")
		args = append(args, v)
	}
	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Description != nil {
		set("description", *u.Description)
	}
	if u.Impact != nil {
		set("impact", *u.Impact)
	}
	if u.Effort != nil {
		set("effort", *u.Effort)
	}
	if u.Risk != nil {
		set("risk", *u.Risk)
	}
	if u.DataReadiness != nil {
		set("data_readiness", *u.DataReadiness)
	}
	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = datetime('now')")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE ideas SET %s WHERE id = ?", strings.Join(updates, ", "))
	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result, id)
}

// DeleteIdea removes an idea and its recorded decision.
func (db *DB) DeleteIdea(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM idea_decisions WHERE idea_id = ?", id); err != nil {
		return err
	}
	result, err := tx.Exec("DELETE FROM ideas WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := requireAffected(result, id); err != nil {
		return err
	}
	return tx.Commit()
}

func requireAffected(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrIdeaNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdea(row scanner) (*StoredIdea, error) {
	var s StoredIdea
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Impact, &s.Effort,
		&s.Risk, &s.DataReadiness, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
