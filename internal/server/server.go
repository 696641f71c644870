package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yuin/goldmark"

	"github.com/TobiSchelling/PoCRanker/internal/card"
	"github.com/TobiSchelling/PoCRanker/internal/config"
	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/playbook"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server serves the backlog pages and the JSON API.
type Server struct {
	cfg       *config.Config
	db        *database.DB
	ranker    *ranking.Ranker
	practices *playbook.Source
	cards     *card.Generator
	pages     map[string]*template.Template
	router    *chi.Mux
}

// New creates a new Server.
func New(cfg *config.Config, db *database.DB) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"num": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"score": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return strconv.FormatFloat(*v, 'f', 1, 64)
		},
		"quadrant": ranking.QuadrantOf,
		"quadrantClass": func(q ranking.Quadrant) string {
			return quadrantClasses[q]
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "idea.html", "playbook.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	practices := playbook.NewSource(cfg.Playbook.Path)
	s := &Server{
		cfg:       cfg,
		db:        db,
		ranker:    cfg.Ranker(),
		practices: practices,
		cards:     card.NewGenerator(practices),
		pages:     pages,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s, nil
}

var quadrantClasses = map[ranking.Quadrant]string{
	ranking.QuickWins:     "quick-wins",
	ranking.MajorProjects: "major-projects",
	ranking.FillIns:       "fill-ins",
	ranking.TimeSinks:     "time-sinks",
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Pages
	s.router.Get("/", s.handleIndex)
	s.router.Post("/ideas", s.handleAddIdea)
	s.router.Get("/ideas/{id}", s.handleIdea)
	s.router.Post("/ideas/{id}/edit", s.handleEditIdea)
	s.router.Post("/ideas/{id}/delete", s.handleDeleteIdea)
	s.router.Post("/ideas/{id}/decision", s.handleDecision)
	s.router.Get("/playbook", s.handlePlaybook)

	// API
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/ranking", s.handleRanking)
		r.Post("/plan", s.handlePlan)
		r.Post("/experiment-card", s.handleExperimentCard)
		r.Post("/practices", s.handlePractices)
		r.Get("/playbook", s.handlePlaybookAPI)
	})
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the configured port.
func Serve(cfg *config.Config, db *database.DB) error {
	srv, err := New(cfg, db)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
