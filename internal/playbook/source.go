package playbook

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

//go:embed playbook.md
var defaultPlaybook []byte

var (
	// ErrPlaybookNotFound is returned when the configured playbook file does not exist.
	ErrPlaybookNotFound = errors.New("playbook not found")
	// ErrEmptyPlaybook is returned when a playbook yields no sections.
	ErrEmptyPlaybook = errors.New("playbook contains no sections")
)

// Source reads the playbook. It holds no parsed state: every call reads and
// parses the underlying document again, so edits to a playbook file are
// picked up without a restart.
type Source struct {
	path string
}

// NewSource returns a source reading path, or the built-in playbook when
// path is empty.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path reports the file the source reads, or "" for the built-in playbook.
func (s *Source) Path() string {
	return s.path
}

// Default returns the raw built-in playbook.
func Default() []byte {
	return defaultPlaybook
}

// Sections reads and parses the playbook.
func (s *Source) Sections() ([]Section, error) {
	src := defaultPlaybook
	name := "built-in playbook"
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPlaybookNotFound, s.path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading playbook: %w", err)
		}
		src, name = data, s.path
	}

	sections := Parse(src)
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPlaybook, name)
	}
	return sections, nil
}

// RelevantPractices returns the tips matching i's profile.
func (s *Source) RelevantPractices(i idea.Idea) ([]string, error) {
	sections, err := s.Sections()
	if err != nil {
		return nil, err
	}
	return RelevantTips(i, sections), nil
}

// Lookup returns sections filtered by category and optional title.
func (s *Source) Lookup(category, title string) ([]Section, error) {
	sections, err := s.Sections()
	if err != nil {
		return nil, err
	}
	return Filter(sections, category, title), nil
}
