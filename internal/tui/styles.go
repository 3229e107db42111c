// Package tui provides the interactive terminal dashboard for SmartTask.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/smarttask/internal/model"
)

// Color palette for the dashboard.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorActive  = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

var (
	// StyleTitle is used for the dashboard header.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleCursor marks the selected row.
	StyleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	StyleSelected = lipgloss.NewStyle().
			Bold(true)

	StyleCompleted = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Strikethrough(true)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

var (
	// StyleListBox frames the task list.
	StyleListBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// StyleBannerBox frames the due-date digest.
	StyleBannerBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)
)

// StatusIcon returns the list marker for a task status.
func StatusIcon(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return StyleSuccess.Render("✓")
	case model.StatusOverdue:
		return StyleError.Render("!")
	}
	return StyleSubtitle.Render("○")
}

// PriorityLabel renders a priority in its color.
func PriorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return StyleError.Render(string(p))
	case model.PriorityMedium:
		return StyleWarning.Render(string(p))
	}
	return StyleSubtitle.Render(string(p))
}

// Truncate shortens s to width cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + "…"
}
