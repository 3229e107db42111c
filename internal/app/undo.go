package app

import (
	"fmt"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
)

// UndoResult describes an applied undo.
type UndoResult struct {
	Action history.Action
	// Task is the task as it was put back.
	Task    *model.Task
	Message string
}

// Undo reverts the most recent recorded action. It returns (nil, nil) when
// the history is empty. The action is consumed even if the store call
// fails; the error is returned.
func (c *Controller) Undo() (*UndoResult, error) {
	action, ok := c.history.Undo()
	if !ok {
		return nil, nil
	}

	var (
		task *model.Task
		msg  string
		err  error
	)
	switch a := action.(type) {
	case *history.DeleteAction:
		task, msg, err = c.undoDelete(a)
	case *history.CompleteAction:
		task, msg, err = c.undoComplete(a)
	default:
		err = fmt.Errorf("unsupported action %T", action)
	}
	if err != nil {
		c.log.Warn("undo failed",
			logging.KeyAction, string(action.Kind()),
			logging.KeyTaskID, action.TaskID(),
			logging.KeyError, err)
		return nil, errors.Wrapf(err, "undo %s", history.Describe(action))
	}

	c.record(model.ActivityUndo, task, history.Describe(action))
	c.log.Debug("undo applied",
		logging.KeyAction, string(action.Kind()),
		logging.KeyTaskID, action.TaskID(),
		"undo_depth", c.history.Len())

	return &UndoResult{Action: action, Task: task, Message: msg}, nil
}

func (c *Controller) undoDelete(a *history.DeleteAction) (*model.Task, string, error) {
	task := a.Task.Clone()
	if err := c.dropDanglingRefs(&task); err != nil {
		return nil, "", err
	}
	if err := c.repos.Tasks.Restore(&task); err != nil {
		return nil, "", err
	}
	return &task, "Restored task " + describeTask(&task), nil
}

func (c *Controller) undoComplete(a *history.CompleteAction) (*model.Task, string, error) {
	if err := c.repos.Tasks.SetStatus(a.Task.ID, a.PreviousStatus); err != nil {
		return nil, "", err
	}
	task, err := c.repos.Tasks.Get(a.Task.ID)
	if err != nil {
		return nil, "", err
	}
	return task, fmt.Sprintf("Task %s is %s again", describeTask(task), a.PreviousStatus), nil
}

// dropDanglingRefs clears references to a category or tags deleted since
// the snapshot was taken.
func (c *Controller) dropDanglingRefs(task *model.Task) error {
	if task.CategoryID != 0 {
		_, err := c.repos.Categories.Get(task.CategoryID)
		switch {
		case errors.Is(err, errors.ErrCategoryNotFound):
			task.CategoryID = 0
		case err != nil:
			return err
		}
	}

	if len(task.TagIDs) == 0 {
		return nil
	}
	kept := make([]int64, 0, len(task.TagIDs))
	for _, id := range task.TagIDs {
		_, err := c.repos.Tags.Get(id)
		switch {
		case errors.Is(err, errors.ErrTagNotFound):
			continue
		case err != nil:
			return err
		}
		kept = append(kept, id)
	}
	if len(kept) == 0 {
		kept = nil
	}
	task.TagIDs = kept
	return nil
}
