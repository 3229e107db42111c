package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/notify"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleCategory = lipgloss.NewStyle().
			Foreground(colorInfo)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// StatusStyle returns the style used for a task status.
func StatusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusCompleted:
		return styleSuccess
	case model.StatusOverdue:
		return styleError
	}
	return styleWarning
}

// PriorityStyle returns the style used for a task priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return styleError.Bold(true)
	case model.PriorityLow:
		return styleMuted
	}
	return lipgloss.NewStyle()
}

// Names resolves category and tag ids for display.
type Names struct {
	Categories map[int64]string
	Tags       map[int64]string
	TagColors  map[int64]string
}

// NewNames indexes categories and tags by id.
func NewNames(cats []*model.Category, tags []*model.Tag) Names {
	n := Names{
		Categories: make(map[int64]string, len(cats)),
		Tags:       make(map[int64]string, len(tags)),
		TagColors:  make(map[int64]string, len(tags)),
	}
	for _, c := range cats {
		n.Categories[c.ID] = c.Name
	}
	for _, t := range tags {
		n.Tags[t.ID] = t.Name
		n.TagColors[t.ID] = t.Color
	}
	return n
}

// Category returns the category name, "" when unset or unknown.
func (n Names) Category(id int64) string {
	return n.Categories[id]
}

// TagNames returns the names of the given tag ids, skipping unknown ids.
func (n Names) TagNames(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := n.Tags[id]; ok {
			out = append(out, name)
		}
	}
	return out
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	return c.render(styleNote, text)
}

// Status formats a status name.
func (c *CLIFormatter) Status(s model.Status) string {
	return c.render(StatusStyle(s), string(s))
}

// Priority formats a priority name.
func (c *CLIFormatter) Priority(p model.Priority) string {
	return c.render(PriorityStyle(p), string(p))
}

// CategoryName formats a category name.
func (c *CLIFormatter) CategoryName(name string) string {
	if name == "" {
		return "-"
	}
	return c.render(styleCategory, name)
}

// TagName formats a tag in its own color.
func (c *CLIFormatter) TagName(name, color string) string {
	if color == "" {
		return "#" + name
	}
	return c.render(lipgloss.NewStyle().Foreground(lipgloss.Color(color)), "#"+name)
}

// PrintTasks prints a task table.
func (c *CLIFormatter) PrintTasks(tasks []*model.Task, names Names, today time.Time) {
	if len(tasks) == 0 {
		c.Muted("No tasks found.")
		c.Muted("Use 'smarttask add \"<title>\"' to create one.")
		return
	}

	rows := make([]TableRow, len(tasks))
	for i, t := range tasks {
		tags := make([]string, 0, len(t.TagIDs))
		for _, id := range t.TagIDs {
			if name, ok := names.Tags[id]; ok {
				tags = append(tags, c.TagName(name, names.TagColors[id]))
			}
		}
		rows[i] = TableRow{Columns: []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			c.Status(t.Status),
			c.Priority(t.Priority),
			FormatDue(t.DueDate, today),
			c.CategoryName(names.Category(t.CategoryID)),
			strings.Join(tags, " "),
		}}
	}
	c.PrintTable([]string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE", "CATEGORY", "TAGS"}, rows)
}

// PrintTask prints every field of one task.
func (c *CLIFormatter) PrintTask(t *model.Task, names Names, today time.Time) {
	c.Title(fmt.Sprintf("#%d %s", t.ID, t.Title))
	if t.Description != "" {
		c.Printf("  %s\n", c.Note(t.Description))
	}
	c.Printf("  Status:   %s\n", c.Status(t.Status))
	c.Printf("  Priority: %s\n", c.Priority(t.Priority))
	if t.DueDate != "" {
		c.Printf("  Due:      %s (%s)\n", t.DueDate, FormatDue(t.DueDate, today))
	}
	c.Printf("  Category: %s\n", c.CategoryName(names.Category(t.CategoryID)))
	if tags := names.TagNames(t.TagIDs); len(tags) > 0 {
		c.Printf("  Tags:     %s\n", strings.Join(tags, ", "))
	}
	c.Printf("  Created:  %s\n", FormatTimeShort(t.CreatedAt))
}

// PrintCategories prints categories with their task counts.
func (c *CLIFormatter) PrintCategories(cats []*model.Category, counts map[int64]int) {
	if len(cats) == 0 {
		c.Muted("No categories.")
		return
	}
	rows := make([]TableRow, len(cats))
	for i, cat := range cats {
		rows[i] = TableRow{Columns: []string{
			strconv.FormatInt(cat.ID, 10),
			c.CategoryName(cat.Name),
			strconv.Itoa(counts[cat.ID]),
			cat.Description,
		}}
	}
	c.PrintTable([]string{"ID", "NAME", "TASKS", "DESCRIPTION"}, rows)
}

// PrintTags prints tags in their colors.
func (c *CLIFormatter) PrintTags(tags []*model.Tag) {
	if len(tags) == 0 {
		c.Muted("No tags.")
		return
	}
	rows := make([]TableRow, len(tags))
	for i, t := range tags {
		rows[i] = TableRow{Columns: []string{
			strconv.FormatInt(t.ID, 10),
			c.TagName(t.Name, t.Color),
			t.Color,
		}}
	}
	c.PrintTable([]string{"ID", "NAME", "COLOR"}, rows)
}

// PrintDigest prints the reminder digest.
func (c *CLIFormatter) PrintDigest(d *notify.Digest, today time.Time) {
	if d.Empty() {
		c.Success("Nothing due. You're all caught up.")
		return
	}
	c.Warning(d.Message())
	section := func(label string, tasks []*model.Task, style lipgloss.Style) {
		if len(tasks) == 0 {
			return
		}
		c.Println()
		c.Println(c.render(style.Bold(true), label))
		for _, t := range tasks {
			c.Printf("  #%-4d %s %s\n", t.ID, t.Title, c.Note("("+FormatDue(t.DueDate, today)+")"))
		}
	}
	section("Overdue", d.Overdue, styleError)
	section("Due today", d.DueToday, styleWarning)
	section("Due soon", d.DueSoon, styleCategory)
}

// PrintStats prints task statistics with bars.
func (c *CLIFormatter) PrintStats(s *app.Stats) {
	c.Title("Task statistics")
	c.Printf("  Total:      %d\n", s.Total)
	c.Printf("  Pending:    %d\n", s.Pending)
	c.Printf("  Overdue:    %s\n", c.render(styleError, strconv.Itoa(s.Overdue)))
	c.Printf("  Completed:  %s\n", c.render(styleSuccess, strconv.Itoa(s.Completed)))
	c.Printf("  Due today:  %d\n", s.DueToday)

	rate := s.CompletionRate() * 100
	c.Printf("\n  Completion  %s %.0f%%\n", c.render(styleSuccess, ProgressBar(rate, 20)), rate)

	if len(s.ByCategory) == 0 {
		return
	}
	c.Println()
	c.Println(c.render(styleBold, "By category"))
	width := 0
	for _, cc := range s.ByCategory {
		width = max(width, lipgloss.Width(cc.Name))
	}
	for _, cc := range s.ByCategory {
		pct := float64(cc.Count) / float64(s.Total) * 100
		c.Printf("  %-*s %s %d\n", width, cc.Name, ProgressBar(pct, 20), cc.Count)
	}
}

// PrintActivity prints audit log entries.
func (c *CLIFormatter) PrintActivity(entries []*model.Activity) {
	if len(entries) == 0 {
		c.Muted("No activity recorded yet.")
		return
	}
	rows := make([]TableRow, len(entries))
	for i, a := range entries {
		task := ""
		if a.TaskID != 0 {
			task = fmt.Sprintf("#%d %s", a.TaskID, a.TaskTitle)
		}
		rows[i] = TableRow{Columns: []string{
			FormatTime(a.At),
			string(a.Kind),
			task,
			a.Details,
		}}
	}
	c.PrintTable([]string{"WHEN", "ACTION", "TASK", "DETAILS"}, rows)
}

// PrintUndo prints the outcome of an undo. A nil result means there was
// nothing to undo.
func (c *CLIFormatter) PrintUndo(res *app.UndoResult) {
	if res == nil {
		c.Muted("Nothing to undo")
		return
	}
	c.Success(res.Message)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one row of PrintTable.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table. Column widths ignore ANSI styling.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(col))
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var line strings.Builder
	for i, h := range headers {
		line.WriteString(pad(h, widths[i]))
	}
	c.Println(c.render(styleBold, strings.TrimRight(line.String(), " ")))

	line.Reset()
	for _, w := range widths {
		line.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(line.String(), " "))

	for _, row := range rows {
		line.Reset()
		for i, col := range row.Columns {
			if i < len(widths) {
				line.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(line.String(), " "))
	}
}
