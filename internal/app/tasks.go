package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/parser"
	"github.com/manav03panchal/smarttask/internal/validate"
)

// TaskInput holds the raw fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	// Due is "YYYY-MM-DD", "DD/MM/YYYY", "+3d" or natural language.
	Due string
	// Priority defaults to medium.
	Priority string
	// Category is a category id or name; empty leaves the task uncategorised.
	Category string
	// Tags are tag names or ids. Unknown names are created.
	Tags []string
}

// TaskPatch is a partial update. Nil fields are left unchanged; an empty
// Due or Category clears the value.
type TaskPatch struct {
	Title       *string
	Description *string
	Due         *string
	Priority    *string
	Status      *string
	Category    *string
	Tags        *[]string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Due == nil &&
		p.Priority == nil && p.Status == nil && p.Category == nil && p.Tags == nil
}

// TaskFilter selects tasks for ListTasks. Zero values match everything.
type TaskFilter struct {
	Category string
	Status   model.Status
	Tag      string
}

// CreateTask validates input and stores a new pending task.
func (c *Controller) CreateTask(in TaskInput) (*model.Task, error) {
	start := time.Now()

	title := validate.SanitizeTitle(in.Title)
	if err := validate.Title(title); err != nil {
		return nil, err
	}
	desc := validate.SanitizeDescription(in.Description)
	if err := validate.Description(desc); err != nil {
		return nil, err
	}

	task := model.NewTask(title, desc)

	due, err := c.resolveDue(in.Due)
	if err != nil {
		return nil, err
	}
	task.DueDate = due

	if in.Priority != "" {
		p, err := validate.Priority(in.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = p
	}

	if task.CategoryID, err = c.resolveCategory(in.Category); err != nil {
		return nil, err
	}
	if task.TagIDs, err = c.resolveTags(in.Tags); err != nil {
		return nil, err
	}

	if err := c.repos.Tasks.Create(task); err != nil {
		return nil, errors.Wrap(err, "creating task")
	}

	c.record(model.ActivityCreate, task, "")
	logging.LogOperation("create_task", start, logging.KeyTaskID, task.ID)
	return task, nil
}

// GetTask returns a task by id.
func (c *Controller) GetTask(id int64) (*model.Task, error) {
	return c.repos.Tasks.Get(id)
}

// UpdateTask applies the non-nil fields of patch. Setting the status to
// completed is recorded like CompleteTask, so it can be undone.
func (c *Controller) UpdateTask(id int64, patch TaskPatch) (*model.Task, error) {
	task, err := c.repos.Tasks.Get(id)
	if err != nil {
		return nil, err
	}
	previous := task.Status

	var changed []string

	if patch.Title != nil {
		title := validate.SanitizeTitle(*patch.Title)
		if err := validate.Title(title); err != nil {
			return nil, err
		}
		task.Title = title
		changed = append(changed, "title")
	}
	if patch.Description != nil {
		desc := validate.SanitizeDescription(*patch.Description)
		if err := validate.Description(desc); err != nil {
			return nil, err
		}
		task.Description = desc
		changed = append(changed, "description")
	}
	if patch.Priority != nil {
		p, err := validate.Priority(*patch.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = p
		changed = append(changed, "priority")
	}
	if patch.Status != nil {
		st, err := validate.Status(*patch.Status)
		if err != nil {
			return nil, err
		}
		task.Status = st
		changed = append(changed, "status")
	}
	if patch.Due != nil {
		due, err := c.resolveDue(*patch.Due)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
		// A new due date in the future reopens an overdue task.
		if patch.Status == nil && task.Status == model.StatusOverdue &&
			(due == "" || due >= c.Today().Format(model.DateLayout)) {
			task.Status = model.StatusPending
		}
		changed = append(changed, "due")
	}
	if patch.Category != nil {
		if task.CategoryID, err = c.resolveCategory(*patch.Category); err != nil {
			return nil, err
		}
		changed = append(changed, "category")
	}
	if patch.Tags != nil {
		if task.TagIDs, err = c.resolveTags(*patch.Tags); err != nil {
			return nil, err
		}
		changed = append(changed, "tags")
	}

	if len(changed) == 0 {
		return task, nil
	}

	var action history.Action
	if task.IsCompleted() && previous != model.StatusCompleted {
		action = c.history.RecordComplete(*task, previous)
	}
	if err := c.repos.Tasks.Update(task); err != nil {
		if action != nil {
			c.history.Discard(action)
		}
		return nil, errors.Wrap(err, "updating task")
	}

	c.record(model.ActivityEdit, task, "fields: "+strings.Join(changed, ", "))
	c.log.Debug("task updated", logging.KeyTaskID, id, "fields", changed)
	return task, nil
}

// DeleteTask removes a task and pushes its snapshot onto the undo history.
func (c *Controller) DeleteTask(id int64) (*model.Task, error) {
	task, err := c.repos.Tasks.Get(id)
	if err != nil {
		return nil, err
	}

	action := c.history.RecordDelete(*task)
	if err := c.repos.Tasks.Delete(id); err != nil {
		c.history.Discard(action)
		return nil, errors.Wrap(err, "deleting task")
	}

	c.record(model.ActivityDelete, task, "")
	c.log.Debug("task deleted", logging.KeyTaskID, id, "undo_depth", c.history.Len())
	return task, nil
}

// CompleteTask marks a task completed, remembering its previous status so
// the change can be undone.
func (c *Controller) CompleteTask(id int64) (*model.Task, error) {
	task, err := c.repos.Tasks.Get(id)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return task, errors.NewUserErrorWithField("task", task.Title,
			"Task is already completed", "").WithCause(errors.ErrAlreadyCompleted)
	}

	previous := task.Status
	action := c.history.RecordComplete(*task, previous)
	if err := c.repos.Tasks.SetStatus(id, model.StatusCompleted); err != nil {
		c.history.Discard(action)
		return nil, errors.Wrap(err, "completing task")
	}
	task.Status = model.StatusCompleted

	c.record(model.ActivityComplete, task, "previous status: "+string(previous))
	c.log.Debug("task completed", logging.KeyTaskID, id, logging.KeyStatus, string(previous))
	return task, nil
}

// ListTasks returns the tasks matching filter, sorted by status, priority,
// due date (undated last) and id.
func (c *Controller) ListTasks(filter TaskFilter) ([]*model.Task, error) {
	tasks, err := c.repos.Tasks.List()
	if err != nil {
		return nil, err
	}

	var categoryID, tagID int64
	if filter.Category != "" {
		cat, err := c.findCategory(filter.Category)
		if err != nil {
			return nil, err
		}
		categoryID = cat.ID
	}
	if filter.Tag != "" {
		tag, err := c.findTag(filter.Tag)
		if err != nil {
			return nil, err
		}
		tagID = tag.ID
	}

	out := tasks[:0]
	for _, t := range tasks {
		if categoryID != 0 && t.CategoryID != categoryID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if tagID != 0 && !t.HasTag(tagID) {
			continue
		}
		out = append(out, t)
	}
	SortTasks(out)
	return out, nil
}

// SortTasks orders tasks for display.
func SortTasks(tasks []*model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() < b.Status.Rank()
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		if a.DueDate != b.DueDate {
			switch {
			case a.DueDate == "":
				return false
			case b.DueDate == "":
				return true
			}
			return a.DueDate < b.DueDate
		}
		return a.ID < b.ID
	})
}

// MarkOverdue flips pending tasks whose due date is before today to
// overdue and returns how many changed.
func (c *Controller) MarkOverdue(today time.Time) (int, error) {
	tasks, err := c.repos.Tasks.List()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, t := range tasks {
		if !t.IsPastDue(today) {
			continue
		}
		if err := c.repos.Tasks.SetStatus(t.ID, model.StatusOverdue); err != nil {
			return count, errors.Wrapf(err, "marking task %d overdue", t.ID)
		}
		count++
	}
	if count > 0 {
		c.log.Info("marked tasks overdue", logging.KeyCount, count)
	}
	return count, nil
}

func (c *Controller) resolveDue(input string) (string, error) {
	due, err := parser.ResolveDueDate(input, c.now())
	if err != nil {
		var pe *parser.DateParseError
		if errors.As(err, &pe) {
			return "", pe.ToUserError()
		}
		return "", err
	}
	return due, nil
}

// resolveCategory maps an id or name to a category id. "" means none.
func (c *Controller) resolveCategory(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, nil
	}
	cat, err := c.findCategory(ref)
	if err != nil {
		return 0, err
	}
	return cat.ID, nil
}

func (c *Controller) findCategory(ref string) (*model.Category, error) {
	var (
		cat *model.Category
		err error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		cat, err = c.repos.Categories.Get(id)
	} else {
		cat, err = c.repos.Categories.GetByName(ref)
	}
	if errors.Is(err, errors.ErrCategoryNotFound) {
		return nil, errors.NewUserErrorWithField("category", ref,
			"Category not found", "").WithCause(errors.ErrCategoryNotFound)
	}
	return cat, err
}

func (c *Controller) findTag(ref string) (*model.Tag, error) {
	var (
		tag *model.Tag
		err error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		tag, err = c.repos.Tags.Get(id)
	} else {
		tag, err = c.repos.Tags.GetByName(ref)
	}
	if errors.Is(err, errors.ErrTagNotFound) {
		return nil, errors.NewUserErrorWithField("tag", ref,
			"Tag not found", "").WithCause(errors.ErrTagNotFound)
	}
	return tag, err
}

// resolveTags maps tag names or ids to ids, creating unknown names with
// the default color. Duplicates are dropped, order is kept.
func (c *Controller) resolveTags(refs []string) ([]int64, error) {
	var ids []int64
	seen := map[int64]bool{}
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		tag, err := c.findTag(ref)
		if errors.Is(err, errors.ErrTagNotFound) {
			if _, numErr := strconv.ParseInt(ref, 10, 64); numErr == nil {
				return nil, err
			}
			tag, err = c.CreateTag(ref, "")
		}
		if err != nil {
			return nil, err
		}
		if !seen[tag.ID] {
			seen[tag.ID] = true
			ids = append(ids, tag.ID)
		}
	}
	return ids, nil
}

func describeTask(t *model.Task) string {
	return fmt.Sprintf("#%d '%s'", t.ID, t.Title)
}
