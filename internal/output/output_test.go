package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/notify"
)

var today = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, Format: FormatCLI, ColorMode: ColorNever}
	return NewCLIFormatter(f), &buf
}

func newTestJSON() (*JSONFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, Format: FormatJSON, ColorMode: ColorNever}
	return NewJSONFormatter(f), &buf
}

func sampleNames() Names {
	return NewNames(
		[]*model.Category{{ID: 1, Name: "Work"}, {ID: 2, Name: "Home"}},
		[]*model.Tag{{ID: 10, Name: "urgent", Color: "#FF0000"}, {ID: 11, Name: "errand", Color: "#88C0D0"}},
	)
}

func sampleTask() *model.Task {
	return &model.Task{
		ID:          5,
		Title:       "Buy milk",
		Description: "2 litres",
		DueDate:     "2025-06-11",
		Status:      model.StatusPending,
		Priority:    model.PriorityHigh,
		CategoryID:  2,
		TagIDs:      []int64{11, 99},
		CreatedAt:   time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// Formatter
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
	assert.False(t, f.IsJSON())
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"cli", "JSON", "plain"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)

	m, err := ParseColorMode("Always")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, m)
	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("plain overrides always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways, Format: FormatPlain}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("auto non terminal", func(t *testing.T) {
		f := &Formatter{Writer: &bytes.Buffer{}, ColorMode: ColorAuto}
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterPrint(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("a")
	f.Println("b")
	f.Printf("%d", 3)
	assert.Equal(t, "ab\n3", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	require.NoError(t, f.JSON(map[string]string{"key": "value"}))
	assert.Contains(t, buf.String(), `"key": "value"`)
}

func TestFormatDue(t *testing.T) {
	tests := []struct {
		due, want string
	}{
		{"", "-"},
		{"2025-06-10", "today"},
		{"2025-06-11", "tomorrow"},
		{"2025-06-09", "yesterday"},
		{"2025-06-13", "in 3 days"},
		{"2025-06-17", "in 7 days"},
		{"2025-06-18", "2025-06-18"},
		{"2025-06-05", "5 days ago"},
		{"2025-05-01", "2025-05-01"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDue(tt.due, today))
		})
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", ProgressBar(0, 4))
	assert.Equal(t, "██░░", ProgressBar(50, 4))
	assert.Equal(t, "████", ProgressBar(150, 4))
	assert.Equal(t, "░░░░", ProgressBar(-5, 4))
}

// =============================================================================
// Names
// =============================================================================

func TestNames(t *testing.T) {
	n := sampleNames()
	assert.Equal(t, "Home", n.Category(2))
	assert.Equal(t, "", n.Category(0))
	assert.Equal(t, []string{"errand"}, n.TagNames([]int64{11, 99}))
	assert.Empty(t, n.TagNames(nil))
}

// =============================================================================
// CLI
// =============================================================================

func TestCLIMessages(t *testing.T) {
	c, buf := newTestCLI()

	c.Success("saved")
	c.Warning("careful")
	c.Error("broken")
	c.Muted("quiet")

	assert.Equal(t, "✓ saved\n⚠ careful\n✗ broken\nquiet\n", buf.String())
}

func TestCLIPrintTasks(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintTasks([]*model.Task{sampleTask()}, sampleNames(), today)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "tomorrow")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "#errand")
	assert.NotContains(t, out, "99")
}

func TestCLIPrintTasksEmpty(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintTasks(nil, Names{}, today)
	assert.Contains(t, buf.String(), "No tasks found.")
}

func TestCLIPrintTask(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintTask(sampleTask(), sampleNames(), today)

	out := buf.String()
	assert.Contains(t, out, "#5 Buy milk")
	assert.Contains(t, out, "2 litres")
	assert.Contains(t, out, "2025-06-11 (tomorrow)")
	assert.Contains(t, out, "Tags:     errand")
}

func TestCLIPrintTableAlignment(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintTable([]string{"A", "B"}, []TableRow{
		{Columns: []string{"long value", "x"}},
		{Columns: []string{"s", "y"}},
	})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "A           B", string(lines[0]))
	assert.Equal(t, "long value  x", string(lines[2]))
	assert.Equal(t, "s           y", string(lines[3]))
}

func TestCLIPrintCategoriesAndTags(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintCategories([]*model.Category{{ID: 1, Name: "Work", Description: "job"}}, map[int64]int{1: 4})
	c.PrintTags([]*model.Tag{{ID: 10, Name: "urgent", Color: "#FF0000"}})

	out := buf.String()
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "#urgent")
	assert.Contains(t, out, "#FF0000")
}

func TestCLIPrintDigest(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintDigest(&notify.Digest{}, today)
	assert.Contains(t, buf.String(), "all caught up")

	buf.Reset()
	d := notify.BuildDigest([]*model.Task{
		{ID: 1, Title: "late", DueDate: "2025-06-01", Status: model.StatusOverdue},
		{ID: 2, Title: "now", DueDate: "2025-06-10", Status: model.StatusPending},
	}, today, 3)
	c.PrintDigest(d, today)

	out := buf.String()
	assert.Contains(t, out, "You have 1 overdue task and 1 task due today.")
	assert.Contains(t, out, "Overdue")
	assert.Contains(t, out, "late")
	assert.Contains(t, out, "Due today")
	assert.NotContains(t, out, "Due soon")
}

func TestCLIPrintStats(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintStats(&app.Stats{
		Total: 4, Pending: 2, Completed: 1, Overdue: 1,
		ByCategory: []app.CategoryCount{{Name: "Work", Count: 3}, {Name: app.Uncategorized, Count: 1}},
	})

	out := buf.String()
	assert.Contains(t, out, "Total:      4")
	assert.Contains(t, out, "25%")
	assert.Contains(t, out, "By category")
	assert.Contains(t, out, "Uncategorized")
}

func TestCLIPrintActivity(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintActivity(nil)
	assert.Contains(t, buf.String(), "No activity")

	buf.Reset()
	c.PrintActivity([]*model.Activity{{Kind: model.ActivityDelete, TaskID: 5, TaskTitle: "Buy milk", At: today}})
	assert.Contains(t, buf.String(), "#5 Buy milk")
	assert.Contains(t, buf.String(), "delete")
}

func TestCLIPrintUndo(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintUndo(nil)
	assert.Equal(t, "Nothing to undo\n", buf.String())

	buf.Reset()
	c.PrintUndo(&app.UndoResult{Message: "Restored task #5 'Buy milk'"})
	assert.Equal(t, "✓ Restored task #5 'Buy milk'\n", buf.String())
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONPrintTasks(t *testing.T) {
	j, buf := newTestJSON()
	require.NoError(t, j.PrintTasks([]*model.Task{sampleTask()}, sampleNames()))

	var resp TasksResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	task := resp.Tasks[0]
	assert.Equal(t, int64(5), task.ID)
	assert.Equal(t, "Home", task.Category)
	assert.Equal(t, []string{"errand"}, task.Tags)
	assert.Equal(t, "2025-06-01T08:00:00Z", task.CreatedAt)
}

func TestJSONPrintTasksEmptyIsArray(t *testing.T) {
	j, buf := newTestJSON()
	require.NoError(t, j.PrintTasks(nil, Names{}))
	assert.Contains(t, buf.String(), `"tasks": []`)
}

func TestJSONPrintUndo(t *testing.T) {
	j, buf := newTestJSON()
	require.NoError(t, j.PrintUndo(nil, Names{}))

	var resp UndoResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "nothing_to_undo", resp.Status)

	buf.Reset()
	stack := history.New(0)
	action := stack.RecordDelete(*sampleTask())
	require.NoError(t, j.PrintUndo(&app.UndoResult{Action: action, Task: sampleTask(), Message: "Restored"}, sampleNames()))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "undone", resp.Status)
	assert.Equal(t, "delete", resp.Action)
	require.NotNil(t, resp.Task)
	assert.Equal(t, "Buy milk", resp.Task.Title)
}

func TestJSONPrintDigest(t *testing.T) {
	j, buf := newTestJSON()
	d := notify.BuildDigest([]*model.Task{sampleTask()}, today, 3)
	require.NoError(t, j.PrintDigest(d, 0, sampleNames()))

	var resp DigestResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "2025-06-10", resp.Day)
	assert.Len(t, resp.DueSoon, 1)
	assert.Empty(t, resp.Overdue)
}

func TestJSONPrintStats(t *testing.T) {
	j, buf := newTestJSON()
	require.NoError(t, j.PrintStats(&app.Stats{Total: 2, Completed: 1}))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, 0.5, resp["completion_rate"])
}

func TestJSONPrintMisc(t *testing.T) {
	j, buf := newTestJSON()

	require.NoError(t, j.PrintCategories([]*model.Category{{ID: 1, Name: "Work"}}, map[int64]int{1: 2}))
	assert.Contains(t, buf.String(), `"task_count": 2`)

	buf.Reset()
	require.NoError(t, j.PrintTags(nil))
	assert.Contains(t, buf.String(), `"tags": []`)

	buf.Reset()
	require.NoError(t, j.PrintActivity(nil))
	assert.Contains(t, buf.String(), `"activity": []`)

	buf.Reset()
	require.NoError(t, j.PrintError("boom", "try again"))
	assert.Contains(t, buf.String(), `"suggestion": "try again"`)

	buf.Reset()
	require.NoError(t, j.PrintTask("created", sampleTask(), sampleNames()))
	assert.Contains(t, buf.String(), `"status": "created"`)
}
