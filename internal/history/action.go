package history

import (
	"time"

	"github.com/manav03panchal/smarttask/internal/model"
)

// Kind identifies the operation an Action reverses.
type Kind string

const (
	KindDelete   Kind = "delete"
	KindComplete Kind = "complete"
)

// Action is one undoable user operation. The set of implementations is
// closed: only DeleteAction and CompleteAction satisfy it.
type Action interface {
	Kind() Kind
	// TaskID returns the id of the task the action touched.
	TaskID() int64
	// Title returns the task title at the time the action was recorded.
	Title() string
	// At returns when the action was recorded.
	At() time.Time

	sealed()
}

// DeleteAction records a task deletion. Task is the full snapshot taken
// before the row was removed.
type DeleteAction struct {
	Task model.Task
	at   time.Time
}

func (a *DeleteAction) Kind() Kind    { return KindDelete }
func (a *DeleteAction) TaskID() int64 { return a.Task.ID }
func (a *DeleteAction) Title() string { return a.Task.Title }
func (a *DeleteAction) At() time.Time { return a.at }
func (a *DeleteAction) sealed()       {}

// CompleteAction records a task being marked completed. PreviousStatus is
// the status the task had immediately before.
type CompleteAction struct {
	Task           model.Task
	PreviousStatus model.Status
	at             time.Time
}

func (a *CompleteAction) Kind() Kind    { return KindComplete }
func (a *CompleteAction) TaskID() int64 { return a.Task.ID }
func (a *CompleteAction) Title() string { return a.Task.Title }
func (a *CompleteAction) At() time.Time { return a.at }
func (a *CompleteAction) sealed()       {}

// Describe returns a short human readable label, e.g. "delete 'Buy milk'".
func Describe(a Action) string {
	if a == nil {
		return ""
	}
	return string(a.Kind()) + " '" + a.Title() + "'"
}
