package model

import (
	"fmt"
	"time"
)

// ActivityKind is the type of a recorded user action.
type ActivityKind string

const (
	ActivityCreate   ActivityKind = "create"
	ActivityEdit     ActivityKind = "edit"
	ActivityDelete   ActivityKind = "delete"
	ActivityComplete ActivityKind = "complete"
	ActivityUndo     ActivityKind = "undo"
)

// Activity is one entry of the persistent audit log.
type Activity struct {
	Key       string       `json:"key"`
	Kind      ActivityKind `json:"kind"`
	TaskID    int64        `json:"task_id,omitempty"`
	TaskTitle string       `json:"task_title,omitempty"`
	Details   string       `json:"details,omitempty"`
	At        time.Time    `json:"at"`
}

// SetKey sets the database key for this activity.
func (a *Activity) SetKey(key string) {
	a.Key = key
}

// GetKey returns the database key for this activity.
func (a *Activity) GetKey() string {
	return a.Key
}

// GenerateActivityKey generates a database key for an activity using UUID v7.
func GenerateActivityKey(uuid string) string {
	return fmt.Sprintf("%s:%s", PrefixActivity, uuid)
}

// NewActivity creates an activity for the given task.
func NewActivity(kind ActivityKind, task *Task, details string) *Activity {
	a := &Activity{
		Kind:    kind,
		Details: details,
		At:      time.Now().UTC().Truncate(time.Second),
	}
	if task != nil {
		a.TaskID = task.ID
		a.TaskTitle = task.Title
	}
	return a
}
