package output

import (
	"time"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/notify"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// TaskOutput represents a task in JSON output, with names resolved.
type TaskOutput struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
}

// NewTaskOutput creates a TaskOutput from a Task.
func NewTaskOutput(t *model.Task, names Names) *TaskOutput {
	return &TaskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Category:    names.Category(t.CategoryID),
		Tags:        names.TagNames(t.TagIDs),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// TasksResponse represents a task list in JSON.
type TasksResponse struct {
	Tasks []*TaskOutput `json:"tasks"`
	Count int           `json:"count"`
}

// TaskResponse wraps a single task with the action that produced it.
type TaskResponse struct {
	Status string      `json:"status"`
	Task   *TaskOutput `json:"task"`
}

// CategoryOutput represents a category in JSON.
type CategoryOutput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TaskCount   int    `json:"task_count"`
}

// TagOutput represents a tag in JSON.
type TagOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DigestResponse represents the reminder digest in JSON.
type DigestResponse struct {
	Day      string        `json:"day"`
	Message  string        `json:"message"`
	Marked   int           `json:"newly_overdue"`
	Overdue  []*TaskOutput `json:"overdue"`
	DueToday []*TaskOutput `json:"due_today"`
	DueSoon  []*TaskOutput `json:"due_soon"`
}

// UndoResponse represents the result of an undo in JSON.
type UndoResponse struct {
	Status  string      `json:"status"`
	Action  string      `json:"action,omitempty"`
	Message string      `json:"message"`
	Task    *TaskOutput `json:"task,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func taskOutputs(tasks []*model.Task, names Names) []*TaskOutput {
	out := make([]*TaskOutput, len(tasks))
	for i, t := range tasks {
		out[i] = NewTaskOutput(t, names)
	}
	return out
}

// PrintTasks outputs a task list.
func (j *JSONFormatter) PrintTasks(tasks []*model.Task, names Names) error {
	return j.JSON(TasksResponse{Tasks: taskOutputs(tasks, names), Count: len(tasks)})
}

// PrintTask outputs one task with a status word such as "created".
func (j *JSONFormatter) PrintTask(status string, t *model.Task, names Names) error {
	return j.JSON(TaskResponse{Status: status, Task: NewTaskOutput(t, names)})
}

// PrintCategories outputs categories with task counts.
func (j *JSONFormatter) PrintCategories(cats []*model.Category, counts map[int64]int) error {
	out := make([]CategoryOutput, len(cats))
	for i, c := range cats {
		out[i] = CategoryOutput{ID: c.ID, Name: c.Name, Description: c.Description, TaskCount: counts[c.ID]}
	}
	return j.JSON(map[string]any{"categories": out})
}

// PrintTags outputs tags.
func (j *JSONFormatter) PrintTags(tags []*model.Tag) error {
	out := make([]TagOutput, len(tags))
	for i, t := range tags {
		out[i] = TagOutput{ID: t.ID, Name: t.Name, Color: t.Color}
	}
	return j.JSON(map[string]any{"tags": out})
}

// PrintDigest outputs the reminder digest.
func (j *JSONFormatter) PrintDigest(d *notify.Digest, marked int, names Names) error {
	return j.JSON(DigestResponse{
		Day:      d.Day,
		Message:  d.Message(),
		Marked:   marked,
		Overdue:  taskOutputs(d.Overdue, names),
		DueToday: taskOutputs(d.DueToday, names),
		DueSoon:  taskOutputs(d.DueSoon, names),
	})
}

// PrintStats outputs statistics.
func (j *JSONFormatter) PrintStats(s *app.Stats) error {
	return j.JSON(struct {
		*app.Stats
		CompletionRate float64 `json:"completion_rate"`
	}{s, s.CompletionRate()})
}

// PrintActivity outputs audit log entries.
func (j *JSONFormatter) PrintActivity(entries []*model.Activity) error {
	if entries == nil {
		entries = []*model.Activity{}
	}
	return j.JSON(map[string]any{"activity": entries})
}

// PrintUndo outputs the result of an undo.
func (j *JSONFormatter) PrintUndo(res *app.UndoResult, names Names) error {
	if res == nil {
		return j.JSON(UndoResponse{Status: "nothing_to_undo", Message: "Nothing to undo"})
	}
	resp := UndoResponse{
		Status:  "undone",
		Action:  string(res.Action.Kind()),
		Message: res.Message,
	}
	if res.Task != nil {
		resp.Task = NewTaskOutput(res.Task, names)
	}
	return j.JSON(resp)
}

// PrintError outputs an error.
func (j *JSONFormatter) PrintError(errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{Status: "error", Error: errMsg, Suggestion: suggestion})
}
