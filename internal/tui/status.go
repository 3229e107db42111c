package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/notify"
	"github.com/manav03panchal/smarttask/internal/output"
)

// TaskListComponent renders the task list around the cursor.
type TaskListComponent struct {
	Tasks  []*model.Task
	Cursor int
	Width  int
	// Rows is how many tasks fit; 0 shows all.
	Rows  int
	Today time.Time
}

// visibleRange returns the [start, end) window of tasks that keeps the
// cursor on screen.
func (tl *TaskListComponent) visibleRange() (int, int) {
	n := len(tl.Tasks)
	if tl.Rows <= 0 || n <= tl.Rows {
		return 0, n
	}
	start := tl.Cursor - tl.Rows/2
	start = max(0, min(start, n-tl.Rows))
	return start, start + tl.Rows
}

// View renders the list.
func (tl *TaskListComponent) View() string {
	var content strings.Builder

	if len(tl.Tasks) == 0 {
		content.WriteString(StyleSubtitle.Render("No tasks. Add one with 'smarttask add'."))
	} else {
		start, end := tl.visibleRange()
		for i := start; i < end; i++ {
			if i > start {
				content.WriteString("\n")
			}
			content.WriteString(tl.renderRow(tl.Tasks[i], i == tl.Cursor))
		}
		if end-start < len(tl.Tasks) {
			content.WriteString("\n")
			content.WriteString(StyleSubtitle.Render(
				fmt.Sprintf("%d-%d of %d", start+1, end, len(tl.Tasks))))
		}
	}

	box := StyleListBox
	if tl.Width > 4 {
		box = box.Width(tl.Width - 4)
	}
	return box.Render(content.String())
}

func (tl *TaskListComponent) renderRow(t *model.Task, selected bool) string {
	marker := "  "
	if selected {
		marker = StyleCursor.Render("> ")
	}

	id := fmt.Sprintf("#%-3d", t.ID)
	due := output.FormatDue(t.DueDate, tl.Today)
	meta := fmt.Sprintf("  %s  %s", due, PriorityLabel(t.Priority))

	titleWidth := tl.Width - 8 - lipgloss.Width(marker+id+meta) - 4
	if tl.Width == 0 {
		titleWidth = 60
	}
	title := Truncate(t.Title, max(titleWidth, 10))
	switch {
	case t.Status == model.StatusCompleted:
		title = StyleCompleted.Render(title)
	case selected:
		title = StyleSelected.Render(title)
	}

	return marker + StatusIcon(t.Status) + " " + id + " " + title + meta
}

// BannerComponent shows the due-date digest. It renders nothing when the
// digest is empty.
type BannerComponent struct {
	Digest *notify.Digest
	Width  int
}

// View renders the banner.
func (bc *BannerComponent) View() string {
	if bc.Digest == nil || bc.Digest.Empty() {
		return ""
	}
	box := StyleBannerBox
	if bc.Width > 4 {
		box = box.Width(bc.Width - 4)
	}
	return box.Render(StyleWarning.Render(bc.Digest.Message()))
}

// Footer renders the key help, led by what ctrl+z would revert.
func Footer(undoLabel string) string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "move"},
		{"c", "complete"},
		{"d", "delete"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	if undoLabel != "" {
		parts = append(parts, StyleHelpKey.Render("ctrl+z")+": "+StyleHelpDesc.Render("undo "+undoLabel))
	}
	for _, k := range keys {
		parts = append(parts, StyleHelpKey.Render(k.key)+" "+StyleHelpDesc.Render(k.desc))
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
