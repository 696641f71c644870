package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/plan"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
)

const maxBodyBytes = 1 << 20

const (
	msgIdeasRequired      = "Invalid input: ideas array is required"
	msgAtLeastOneIdea     = "At least one idea is required"
	msgValidationFailed   = "Validation failed"
	msgConstraintsMissing = "Constraints are required"
	msgConstraintsInvalid = "Invalid constraints: budget and teamSize must be numbers"
	msgIdeaRequired       = "Invalid input: idea object is required"
	msgInvalidJSON        = "Invalid input: request body must be a JSON object"
	msgInternal           = "Internal server error"
)

type errorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("Error in %s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// decodeBody reads the request body as a JSON object of raw fields.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return nil, false
	}
	return body, true
}

func isKind(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}

// decodeIdeas decodes an ideas array element by element, so a malformed
// entry is reported against its index like any other validation failure.
func decodeIdeas(raw json.RawMessage) ([]idea.Idea, map[string][]string, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, nil, err
	}

	ideas := make([]idea.Idea, len(elems))
	details := make(map[string][]string)
	for i, e := range elems {
		key := fmt.Sprintf("idea_%d", i)
		if !isKind(e, '{') {
			details[key] = []string{"Idea must be an object"}
			continue
		}
		if err := json.Unmarshal(e, &ideas[i]); err != nil {
			details[key] = []string{"Invalid idea: " + err.Error()}
			continue
		}
		if res := idea.Validate(ideas[i]); !res.Valid {
			details[key] = res.Errors
		}
	}
	return ideas, details, nil
}

// decodeIdea decodes and validates the single "idea" field of a body.
func decodeIdea(w http.ResponseWriter, body map[string]json.RawMessage) (idea.Idea, bool) {
	raw, ok := body["idea"]
	if !ok || !isKind(raw, '{') {
		writeError(w, http.StatusBadRequest, msgIdeaRequired)
		return idea.Idea{}, false
	}
	var it idea.Idea
	if err := json.Unmarshal(raw, &it); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   msgValidationFailed,
			Details: map[string][]string{"idea": {"Invalid idea: " + err.Error()}},
		})
		return idea.Idea{}, false
	}
	if res := idea.Validate(it); !res.Valid {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   msgValidationFailed,
			Details: map[string][]string{"idea": res.Errors},
		})
		return idea.Idea{}, false
	}
	return it, true
}

// requireIdeas decodes the "ideas" field, writing the error response itself
// when the field is missing, empty or invalid.
func requireIdeas(w http.ResponseWriter, body map[string]json.RawMessage) ([]idea.Idea, bool) {
	raw, ok := body["ideas"]
	if !ok || !isKind(raw, '[') {
		writeError(w, http.StatusBadRequest, msgIdeasRequired)
		return nil, false
	}
	ideas, details, err := decodeIdeas(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgIdeasRequired)
		return nil, false
	}
	if len(ideas) == 0 {
		writeError(w, http.StatusBadRequest, msgAtLeastOneIdea)
		return nil, false
	}
	if len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgValidationFailed, Details: details})
		return nil, false
	}
	return ideas, true
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	ideas, ok := requireIdeas(w, body)
	if !ok {
		return
	}

	ranker := *s.ranker
	if raw, ok := body["weights"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		var weights ranking.Weights
		if err := json.Unmarshal(raw, &weights); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid weights: "+err.Error())
			return
		}
		ranker.Weights = weights
	}

	idea.AssignMissingIDs(ideas, time.Now())
	writeJSON(w, http.StatusOK, ranker.Rank(ideas))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	ideas, ok := requireIdeas(w, body)
	if !ok {
		return
	}

	raw, ok := body["constraints"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		writeError(w, http.StatusBadRequest, msgConstraintsMissing)
		return
	}
	var fields struct {
		Budget   *float64 `json:"budget"`
		TeamSize *float64 `json:"teamSize"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil || fields.Budget == nil || fields.TeamSize == nil {
		writeError(w, http.StatusBadRequest, msgConstraintsInvalid)
		return
	}
	c := plan.Constraints{Budget: *fields.Budget, TeamSize: int(*fields.TeamSize)}
	if float64(c.TeamSize) != *fields.TeamSize {
		writeError(w, http.StatusBadRequest, "Invalid constraints: teamSize must be a whole number")
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid constraints: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"plans": plan.GenerateAll(ideas, c)})
}

func (s *Server) handleExperimentCard(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	it, ok := decodeIdea(w, body)
	if !ok {
		return
	}

	c, err := s.cards.Generate(it)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"card": c})
}

func (s *Server) handlePractices(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	it, ok := decodeIdea(w, body)
	if !ok {
		return
	}

	tips, err := s.practices.RelevantPractices(it)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"practices": tips})
}

func (s *Server) handlePlaybookAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sections, err := s.practices.Lookup(q.Get("category"), q.Get("title"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
}
