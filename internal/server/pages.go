package server

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/plan"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
	"github.com/TobiSchelling/PoCRanker/internal/report"
)

// ideaForm holds the raw form values so a rejected submission can be
// shown again as typed.
type ideaForm struct {
	Title         string
	Description   string
	Impact        string
	Effort        string
	Risk          string
	DataReadiness string
}

func readIdeaForm(r *http.Request) ideaForm {
	return ideaForm{
		Title:         strings.TrimSpace(r.FormValue("title")),
		Description:   strings.TrimSpace(r.FormValue("description")),
		Impact:        strings.TrimSpace(r.FormValue("impact")),
		Effort:        strings.TrimSpace(r.FormValue("effort")),
		Risk:          strings.TrimSpace(r.FormValue("risk")),
		DataReadiness: strings.TrimSpace(r.FormValue("dataReadiness")),
	}
}

func formOf(i idea.Idea) ideaForm {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return ideaForm{
		Title:         i.Title,
		Description:   i.Description,
		Impact:        f(i.Impact),
		Effort:        f(i.Effort),
		Risk:          f(i.Risk),
		DataReadiness: f(i.DataReadiness),
	}
}

// idea converts the form, returning every problem found.
func (f ideaForm) idea() (idea.Idea, []string) {
	var errs []string
	number := func(name, v string) float64 {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, name+" must be a number")
			return 0
		}
		return n
	}

	i := idea.Idea{
		Title:         f.Title,
		Description:   f.Description,
		Impact:        number("Impact", f.Impact),
		Effort:        number("Effort", f.Effort),
		Risk:          number("Risk", f.Risk),
		DataReadiness: number("Data readiness", f.DataReadiness),
	}
	if len(errs) > 0 {
		return i, errs
	}
	if res := idea.Validate(i); !res.Valid {
		return i, res.Errors
	}
	return i, nil
}

type backlogRow struct {
	Idea     idea.Idea
	Quadrant ranking.Quadrant
	TopPick  bool
	Decision string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, ideaForm{}, nil)
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, form ideaForm, errs []string) {
	backlog, err := s.db.BacklogIdeas()
	if err != nil {
		log.Printf("Error loading backlog: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	decisions, err := s.db.GetDecisionMap()
	if err != nil {
		log.Printf("Error loading decisions: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	result := s.ranker.Rank(backlog)
	picks := make(map[string]bool, len(result.TopPicks))
	for _, p := range result.TopPicks {
		picks[p.ID] = true
	}
	rows := make([]backlogRow, len(result.Ideas))
	for n, i := range result.Ideas {
		rows[n] = backlogRow{Idea: i, Quadrant: ranking.QuadrantOf(i), TopPick: picks[i.ID]}
		if d, ok := decisions[i.ID]; ok {
			rows[n].Decision = d.Label()
		}
	}

	s.render(w, status, "index.html", map[string]any{
		"Rows":    rows,
		"Summary": ranking.Summarize(result),
		"Form":    form,
		"Errors":  errs,
	})
}

func (s *Server) handleAddIdea(w http.ResponseWriter, r *http.Request) {
	form := readIdeaForm(r)
	i, errs := form.idea()
	if len(errs) > 0 {
		s.renderIndex(w, http.StatusBadRequest, form, errs)
		return
	}

	id, err := s.db.InsertIdea(i)
	if err != nil {
		log.Printf("Error adding idea: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/ideas/"+url.PathEscape(id), http.StatusFound)
}

func (s *Server) handleIdea(w http.ResponseWriter, r *http.Request) {
	s.renderIdea(w, r, http.StatusOK, nil, nil)
}

// renderIdea shows one backlog idea with its plan and experiment card. A
// non-nil form replaces the stored values in the edit form.
func (s *Server) renderIdea(w http.ResponseWriter, r *http.Request, status int, form *ideaForm, errs []string) {
	id := chi.URLParam(r, "id")
	stored, err := s.db.GetIdea(id)
	if err != nil {
		log.Printf("Error loading idea %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if stored == nil {
		http.NotFound(w, r)
		return
	}
	decision, err := s.db.GetDecision(id)
	if err != nil {
		log.Printf("Error loading decision for %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	i := stored.Idea
	score := s.ranker.Score(i)
	i.Score = &score

	data := map[string]any{
		"Idea":     i,
		"Stored":   stored,
		"Quadrant": ranking.QuadrantOf(i),
		"Plan":     report.Plan(plan.Generate(i, s.cfg.Constraints())),
		"Decision": decision,
		"Errors":   errs,
	}
	if form != nil {
		data["Form"] = *form
	} else {
		data["Form"] = formOf(i)
	}
	if decision != nil {
		data["DecisionLabel"] = decision.Decision.Label()
	}

	c, err := s.cards.Generate(i)
	if err != nil {
		log.Printf("Error generating experiment card for %s: %v", id, err)
		data["CardError"] = "The experiment card could not be generated: the playbook is unavailable."
	} else {
		data["Card"] = report.Card(c)
	}

	s.render(w, status, "idea.html", data)
}

func (s *Server) handleEditIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := readIdeaForm(r)
	i, errs := form.idea()
	if len(errs) > 0 {
		s.renderIdea(w, r, http.StatusBadRequest, &form, errs)
		return
	}

	err := s.db.UpdateIdea(id, database.IdeaUpdate{
		Title:         &i.Title,
		Description:   &i.Description,
		Impact:        &i.Impact,
		Effort:        &i.Effort,
		Risk:          &i.Risk,
		DataReadiness: &i.DataReadiness,
	})
	if errors.Is(err, database.ErrIdeaNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error updating idea %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/ideas/"+url.PathEscape(id), http.StatusFound)
}

func (s *Server) handleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.db.DeleteIdea(id)
	if err != nil && !errors.Is(err, database.ErrIdeaNotFound) {
		log.Printf("Error deleting idea %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	value := strings.TrimSpace(r.FormValue("decision"))

	var err error
	if value == "clear" {
		err = s.db.DeleteDecision(id)
	} else {
		d, perr := database.ParseDecision(value)
		if perr != nil {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}
		err = s.db.UpsertDecision(id, d, strings.TrimSpace(r.FormValue("note")))
	}
	if errors.Is(err, database.ErrIdeaNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error recording decision for %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/ideas/"+url.PathEscape(id), http.StatusFound)
}

func (s *Server) handlePlaybook(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sections, err := s.practices.Lookup(q.Get("category"), q.Get("title"))
	if err != nil {
		log.Printf("Error reading playbook: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, http.StatusOK, "playbook.html", map[string]any{
		"Sections": sections,
		"Category": q.Get("category"),
		"Title":    q.Get("title"),
		"Builtin":  s.practices.Path() == "",
	})
}
