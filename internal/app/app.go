// Package app is the application controller. It owns the task store handle
// and the undo history, and is the only place that applies an undo.
package app

import (
	"log/slog"
	"time"

	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/storage"
)

// DefaultActivityLimit is the number of activity entries returned when no
// limit is given.
const DefaultActivityLimit = 50

// Options tunes a Controller.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to the package logger from internal/logging.
	Logger *slog.Logger
}

// HistoryView is the read-only side of the undo stack.
type HistoryView interface {
	Len() int
	Cap() int
	Peek() (history.Action, bool)
}

// Controller coordinates the stores and the undo history for one session.
// It is not safe for concurrent use.
type Controller struct {
	repos   storage.Repos
	history *history.Stack
	now     func() time.Time
	log     *slog.Logger
}

// New creates a controller. A nil stack gets a default-depth one.
func New(repos storage.Repos, hist *history.Stack, opts Options) *Controller {
	if hist == nil {
		hist = history.New(history.DefaultMaxDepth)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Logger()
	}
	return &Controller{
		repos:   repos,
		history: hist,
		now:     opts.Now,
		log:     opts.Logger,
	}
}

// SetLogger replaces the logger, e.g. when a shell starts a new command.
func (c *Controller) SetLogger(l *slog.Logger) {
	if l != nil {
		c.log = l
	}
}

// History exposes the undo stack for display.
func (c *Controller) History() HistoryView {
	return c.history
}

// Today returns the start of the current local day.
func (c *Controller) Today() time.Time {
	now := c.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// record appends to the audit log. Failures are logged, never returned:
// the user's operation already succeeded.
func (c *Controller) record(kind model.ActivityKind, task *model.Task, details string) {
	a := model.NewActivity(kind, task, details)
	a.At = c.now().UTC().Truncate(time.Second)
	if err := c.repos.Activity.Append(a); err != nil {
		c.log.Warn("failed to record activity",
			logging.KeyAction, string(kind),
			logging.KeyError, err)
	}
}
