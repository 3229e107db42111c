// Package validate provides input validation helpers for the SmartTask CLI.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

const (
	// MaxTitleLength is the maximum length of a task title, in runes.
	MaxTitleLength = 200
	// MaxDescriptionLength is the maximum length of a task description.
	MaxDescriptionLength = 4096
	// MaxNameLength is the maximum length of a category or tag name.
	MaxNameLength = 100
)

// Title validates a task title.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewUserError("Title cannot be empty", "Give the task a short title").WithCause(errors.ErrTitleRequired)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField("title", TruncateString(title, 40),
			"Title too long",
			fmt.Sprintf("Titles must be %d characters or fewer", MaxTitleLength))
	}
	return nil
}

// Description validates a task description.
func Description(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return errors.NewUserError(
			"Description too long",
			fmt.Sprintf("Descriptions must be %d characters or fewer", MaxDescriptionLength))
	}
	return nil
}

// Name validates a category or tag name. field is used in messages.
func Name(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewUserError(
			field+" name cannot be empty",
			"Provide a name for the "+field)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField(field, TruncateString(name, 40),
			field+" name too long",
			fmt.Sprintf("Names must be %d characters or fewer", MaxNameLength))
	}
	return nil
}

// DueDate validates a stored due date: empty or YYYY-MM-DD.
func DueDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return errors.NewUserErrorWithField("due", date,
			"Invalid due date",
			"Use the format YYYY-MM-DD").WithCause(errors.ErrInvalidDate)
	}
	return nil
}

// Status parses and validates a status name.
func Status(s string) (model.Status, error) {
	st, err := model.ParseStatus(s)
	if err != nil {
		return "", errors.NewUserErrorWithField("status", s,
			"Invalid status",
			"Valid statuses are pending, completed and overdue").WithCause(errors.ErrInvalidStatus)
	}
	return st, nil
}

// Priority parses and validates a priority name.
func Priority(s string) (model.Priority, error) {
	p, err := model.ParsePriority(s)
	if err != nil {
		return "", errors.NewUserErrorWithField("priority", s,
			"Invalid priority",
			"Valid priorities are low, medium and high").WithCause(errors.ErrInvalidPriority)
	}
	return p, nil
}

// HexColor validates a #RRGGBB color code. Empty is allowed.
func HexColor(color string) error {
	if color == "" {
		return nil
	}
	invalid := func(msg string) error {
		return errors.NewUserErrorWithField("color", color, msg,
			"Use hex format like '#FF5733' or '#00FF00'").WithCause(errors.ErrInvalidColor)
	}
	hex, ok := strings.CutPrefix(color, "#")
	if !ok {
		return invalid("Invalid color format")
	}
	if len(hex) != 6 {
		return invalid("Color must have 6 hex digits")
	}
	for _, c := range hex {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return invalid("Invalid hex character in color")
		}
	}
	return nil
}

// InRange validates that an integer is within [min, max].
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}
