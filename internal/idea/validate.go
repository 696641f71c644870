package idea

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationResult reports every rule an idea violates.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks required text fields and dimension ranges.
// All violations are reported, not just the first. A dimension that was never
// set is zero and therefore out of range.
func Validate(i Idea) ValidationResult {
	errs := []string{}

	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, "Title is required")
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, "Description is required")
	}

	for _, d := range Dimensions {
		if !InRange(i.Value(d)) {
			errs = append(errs, fmt.Sprintf("%s must be between %d and %d", d, int(MinDimension), int(MaxDimension)))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// InRange reports whether v lies in [MinDimension, MaxDimension]. NaN is out of range.
func InRange(v float64) bool {
	return v >= MinDimension && v <= MaxDimension
}

// BatchError is returned when one or more ideas in a batch fail validation.
// Details is keyed by "idea_<index>".
type BatchError struct {
	Details map[string][]string
}

func (e *BatchError) Error() string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Details[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ValidateBatch validates every idea and returns a *BatchError describing all
// invalid entries, or nil when the whole batch is valid.
func ValidateBatch(ideas []Idea) error {
	details := make(map[string][]string)
	for i, item := range ideas {
		if res := Validate(item); !res.Valid {
			details[fmt.Sprintf("idea_%d", i)] = res.Errors
		}
	}
	if len(details) == 0 {
		return nil
	}
	return &BatchError{Details: details}
}
