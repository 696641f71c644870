package database

import (
	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

// StoredIdea is a backlog entry. Scores and ranks are never stored; they are
// recomputed whenever the backlog is ranked.
type StoredIdea struct {
	idea.Idea
	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

// IdeaUpdate holds the fields to change on a backlog entry. Nil fields are
// left untouched.
type IdeaUpdate struct {
	Title         *string
	Description   *string
	Impact        *float64
	Effort        *float64
	Risk          *float64
	DataReadiness *float64
}

// Decision is the recorded outcome of a PoC's go/no-go review.
type Decision string

const (
	DecisionGo    Decision = "go"
	DecisionPivot Decision = "pivot"
	DecisionNoGo  Decision = "no_go"
)

// IdeaDecision is a decision recorded against a backlog idea.
type IdeaDecision struct {
	IdeaID    string
	Decision  Decision
	Note      *string
	DecidedAt *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	Ideas     int
	Decided   int
	Go        int
	Pivot     int
	NoGo      int
	Undecided int
}
