package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/smarttask/internal/errors"
)

// DateParseError represents a due date that could not be understood.
type DateParseError struct {
	Input      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid due date '%s': %s", e.Input, e.Message)
}

// Unwrap lets callers match errors.ErrInvalidDate.
func (e *DateParseError) Unwrap() error {
	return errors.ErrInvalidDate
}

// DueDateExamples lists accepted due date formats.
var DueDateExamples = []string{
	"2025-12-15",
	"15/12/2025",
	"+3d",
	"+2w",
	"tomorrow",
	"next friday",
	"15 de diciembre",
}

// NewDueDateError creates a due date parse error with standard examples.
func NewDueDateError(input, message string) *DateParseError {
	return &DateParseError{
		Input:      input,
		Message:    message,
		Examples:   DueDateExamples,
		Suggestion: "Dates can be absolute (2025-12-15), relative (+3d) or natural language (tomorrow).",
	}
}

// FormatWithExamples returns the error message with example suggestions.
func (e *DateParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// ToUserError converts the error for consistent CLI handling.
func (e *DateParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if suggestion == "" && len(e.Examples) > 0 {
		suggestion = "Try: " + strings.Join(e.Examples[:min(3, len(e.Examples))], ", ")
	}
	return errors.NewUserErrorWithField("due", e.Input, e.Message, suggestion).WithCause(errors.ErrInvalidDate)
}
