package idea

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIdea() Idea {
	return Idea{
		ID:            "a",
		Title:         "Churn predictor",
		Description:   "Predict churn from usage data",
		Impact:        8,
		Effort:        4,
		Risk:          3,
		DataReadiness: 7,
	}
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(validIdea())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidate_MissingTitleAndImpactOutOfRange(t *testing.T) {
	i := validIdea()
	i.Title = ""
	i.Impact = 11

	res := Validate(i)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Title is required",
		"Impact must be between 1 and 10",
	}, res.Errors)
}

func TestValidate_WhitespaceOnlyText(t *testing.T) {
	i := validIdea()
	i.Title = "   "
	i.Description = "\t\n"

	res := Validate(i)
	assert.Equal(t, []string{"Title is required", "Description is required"}, res.Errors)
}

func TestValidate_ReportsEveryDimension(t *testing.T) {
	res := Validate(Idea{Title: "t", Description: "d"})
	assert.Equal(t, []string{
		"Impact must be between 1 and 10",
		"Effort must be between 1 and 10",
		"Risk must be between 1 and 10",
		"Data Readiness must be between 1 and 10",
	}, res.Errors)
}

func TestValidate_BoundariesInclusive(t *testing.T) {
	i := validIdea()
	i.Impact, i.Effort, i.Risk, i.DataReadiness = 1, 10, 1, 10
	assert.True(t, Validate(i).Valid)

	i.Risk = 0.999
	assert.False(t, Validate(i).Valid)
}

func TestValidate_NaNIsOutOfRange(t *testing.T) {
	i := validIdea()
	i.Effort = math.NaN()
	res := Validate(i)
	assert.Equal(t, []string{"Effort must be between 1 and 10"}, res.Errors)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	i := validIdea()
	i.Title = ""
	before := i
	Validate(i)
	assert.Equal(t, before, i)
}

func TestValidateBatch(t *testing.T) {
	bad := validIdea()
	bad.Description = ""

	require.NoError(t, ValidateBatch([]Idea{validIdea(), validIdea()}))

	err := ValidateBatch([]Idea{validIdea(), bad})
	require.Error(t, err)

	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, map[string][]string{"idea_1": {"Description is required"}}, batchErr.Details)
	assert.Contains(t, err.Error(), "idea_1: Description is required")
}

func TestAssignMissingIDs(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	ideas := []Idea{{ID: "keep"}, {}, {}}
	AssignMissingIDs(ideas, at)

	assert.Equal(t, "keep", ideas[0].ID)
	assert.Equal(t, "idea_1700000000123_1", ideas[1].ID)
	assert.Equal(t, "idea_1700000000123_2", ideas[2].ID)
}
