package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusOverdue, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Rank orders statuses for listing: pending first, completed last.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 1
	case StatusOverdue:
		return 2
	case StatusCompleted:
		return 3
	}
	return 4
}

// ParseStatus parses a status name, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for listing: high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// Task is a unit of work.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     string    `json:"due_date,omitempty"` // YYYY-MM-DD, empty when unset
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CategoryID  int64     `json:"category_id,omitempty"` // 0 when uncategorised
	TagIDs      []int64   `json:"tag_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SetKey sets the database key for this task.
func (t *Task) SetKey(key string) {
	if id, err := ParseIDKey(key); err == nil {
		t.ID = id
	}
}

// GetKey returns the database key for this task.
func (t *Task) GetKey() string {
	return GenerateTaskKey(t.ID)
}

// GenerateTaskKey generates a database key for a task id.
func GenerateTaskKey(id int64) string {
	return GenerateIDKey(PrefixTask, id)
}

// NewTask creates a pending task with default priority.
func NewTask(title, description string) *Task {
	return &Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Priority:    PriorityMedium,
	}
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.TagIDs != nil {
		c.TagIDs = make([]int64, len(t.TagIDs))
		copy(c.TagIDs, t.TagIDs)
	}
	return c
}

// Due returns the parsed due date.
func (t *Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsCompleted returns true if the task is done.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsPastDue reports whether a pending task's due date is before day.
func (t *Task) IsPastDue(day time.Time) bool {
	if t.Status != StatusPending || t.DueDate == "" {
		return false
	}
	return t.DueDate < day.Format(DateLayout)
}

// IsDueOn reports whether the task's due date falls on day.
func (t *Task) IsDueOn(day time.Time) bool {
	return t.DueDate != "" && t.DueDate == day.Format(DateLayout)
}

// HasTag reports whether the task carries the given tag id.
func (t *Task) HasTag(tagID int64) bool {
	for _, id := range t.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// RemoveTag drops a tag id from the task, returning true if it was present.
func (t *Task) RemoveTag(tagID int64) bool {
	for i, id := range t.TagIDs {
		if id == tagID {
			t.TagIDs = append(t.TagIDs[:i], t.TagIDs[i+1:]...)
			return true
		}
	}
	return false
}
