package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrTaskNotFound:     "Use 'smarttask list' to see task ids.",
	ErrTaskExists:       "The task was recreated elsewhere; check 'smarttask list'.",
	ErrCategoryNotFound: "Use 'smarttask category list' to see available categories.",
	ErrCategoryInUse:    "Reassign or delete its tasks first.",
	ErrTagNotFound:      "Use 'smarttask tag list' to see available tags.",
	ErrDuplicateName:    "Pick a different name.",
	ErrTitleRequired:    "Give the task a short title, e.g. smarttask add \"Buy milk\".",
	ErrInvalidStatus:    "Valid statuses are pending, completed and overdue.",
	ErrInvalidPriority:  "Valid priorities are low, medium and high.",
	ErrInvalidDate:      "Try formats like '2025-12-15', '15/12/2025', 'tomorrow', 'next friday' or '+3d'.",
	ErrInvalidColor:     "Use hex color format like '#FF5733' or '#00FF00'.",
	ErrAlreadyCompleted: "Nothing to do; use 'smarttask edit --status pending' to reopen it.",
	ErrUnknownBackend:   "Set storage.backend to 'badger' or 'sqlite'.",

	ErrDiskFull:          "Free up disk space and try again.",
	ErrDatabaseCorrupted: "Restore a backup from the data directory's backups/ folder.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/smarttask/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// A UserError's own suggestion is more specific than the sentinel's.
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// FormatUserError formats an error for display to the user.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}

// FormatDebugError formats an error with its chain, category and root cause.
func FormatDebugError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	if chain := Chain(err); len(chain) > 1 {
		sb.WriteString("\nError chain:\n")
		for i, msg := range chain {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, msg))
		}
	}

	sb.WriteString(fmt.Sprintf("\nCategory: %s\n", Classify(err)))

	if suggestion := GetSuggestion(err); suggestion != "" {
		sb.WriteString(fmt.Sprintf("\nSuggestion: %s\n", suggestion))
	}

	if root := RootCause(err); root != err {
		sb.WriteString(fmt.Sprintf("\nRoot cause: %v\n", root))
	}

	return sb.String()
}
