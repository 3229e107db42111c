package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/smarttask/internal/errors"
)

func TestDateParseErrorError(t *testing.T) {
	err := NewDueDateError("someday", "could not understand the date")
	assert.Equal(t, "invalid due date 'someday': could not understand the date", err.Error())
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
}

func TestFormatWithExamples(t *testing.T) {
	t.Run("with_examples", func(t *testing.T) {
		result := NewDueDateError("x", "bad").FormatWithExamples()
		assert.Contains(t, result, "Valid examples:")
		assert.Contains(t, result, "  - +3d")
		assert.Contains(t, result, "natural language")
	})

	t.Run("without_examples", func(t *testing.T) {
		err := &DateParseError{Input: "x", Message: "bad"}
		assert.Equal(t, err.Error(), err.FormatWithExamples())
	})
}

func TestToUserError(t *testing.T) {
	t.Run("keeps_suggestion", func(t *testing.T) {
		ue := NewDueDateError("x", "bad").ToUserError()
		assert.Equal(t, "due", ue.Field)
		assert.Equal(t, "x", ue.Value)
		assert.Contains(t, ue.Suggestion, "relative (+3d)")
		assert.ErrorIs(t, ue, errors.ErrInvalidDate)
	})

	t.Run("falls_back_to_examples", func(t *testing.T) {
		err := &DateParseError{Input: "x", Message: "bad", Examples: []string{"a", "b", "c", "d"}}
		assert.Equal(t, "Try: a, b, c", err.ToUserError().Suggestion)
	})
}
