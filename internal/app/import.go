package app

import (
	"strconv"
	"time"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/export"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/validate"
)

// ImportResult counts what an import added or skipped.
type ImportResult struct {
	Categories int  `json:"categories"`
	Tags       int  `json:"tags"`
	Tasks      int  `json:"tasks"`
	Skipped    int  `json:"skipped"`
	DryRun     bool `json:"dry_run"`
}

// ImportBackup merges a JSON backup into the store. Categories and tags are
// matched by name and created when missing. Tasks get fresh ids; a task
// whose title and creation time match an existing one is skipped, so
// importing the same backup twice adds nothing. Imports are not undoable.
//
// Every entry is validated like its interactive counterpart before anything
// is written; one invalid entry rejects the whole backup.
func (c *Controller) ImportBackup(b *export.Backup, dryRun bool) (*ImportResult, error) {
	start := time.Now()
	res := &ImportResult{DryRun: dryRun}

	if err := checkBackupRefs(b); err != nil {
		return res, err
	}
	tasks, err := importTasks(b.Tasks)
	if err != nil {
		return res, err
	}

	catIDs := make(map[int64]int64, len(b.Categories))
	for _, cat := range b.Categories {
		name := validate.SanitizeName(cat.Name)
		existing, err := c.repos.Categories.GetByName(name)
		switch {
		case err == nil:
			catIDs[cat.ID] = existing.ID
			continue
		case !errors.Is(err, errors.ErrCategoryNotFound):
			return res, err
		}
		res.Categories++
		if dryRun {
			continue
		}
		created := model.NewCategory(name, validate.SanitizeDescription(cat.Description))
		if err := c.repos.Categories.Create(created); err != nil {
			return res, errors.Wrapf(err, "importing category %q", name)
		}
		catIDs[cat.ID] = created.ID
	}

	tagIDs := make(map[int64]int64, len(b.Tags))
	for _, tag := range b.Tags {
		name := validate.SanitizeName(tag.Name)
		existing, err := c.repos.Tags.GetByName(name)
		switch {
		case err == nil:
			tagIDs[tag.ID] = existing.ID
			continue
		case !errors.Is(err, errors.ErrTagNotFound):
			return res, err
		}
		res.Tags++
		if dryRun {
			continue
		}
		created := model.NewTag(name, tag.Color)
		if err := c.repos.Tags.Create(created); err != nil {
			return res, errors.Wrapf(err, "importing tag %q", name)
		}
		tagIDs[tag.ID] = created.ID
	}

	current, err := c.repos.Tasks.List()
	if err != nil {
		return res, err
	}
	seen := make(map[string]bool, len(current))
	for _, t := range current {
		seen[importIdentity(t)] = true
	}

	for i := range tasks {
		task := &tasks[i]
		key := importIdentity(task)
		if seen[key] {
			res.Skipped++
			continue
		}
		seen[key] = true
		if dryRun {
			res.Tasks++
			continue
		}

		createdAt := task.CreatedAt
		task.CategoryID = catIDs[task.CategoryID]
		srcTags := task.TagIDs
		task.TagIDs = nil
		for _, id := range srcTags {
			if mapped, ok := tagIDs[id]; ok {
				task.TagIDs = append(task.TagIDs, mapped)
			}
		}

		if err := c.repos.Tasks.Create(task); err != nil {
			return res, errors.Wrapf(err, "importing task %q", task.Title)
		}
		// Create stamps the current time; keep the original.
		task.CreatedAt = createdAt
		if err := c.repos.Tasks.Update(task); err != nil {
			return res, errors.Wrapf(err, "importing task %q", task.Title)
		}
		res.Tasks++
		c.record(model.ActivityCreate, task, "imported")
	}

	logging.LogOperation("import_backup", start,
		logging.KeyCount, res.Tasks,
		"skipped", res.Skipped,
		"dry_run", dryRun)
	return res, nil
}

// checkBackupRefs validates the backup's categories and tags.
func checkBackupRefs(b *export.Backup) error {
	for i, cat := range b.Categories {
		if cat == nil {
			return emptyEntry("category", i)
		}
		if err := validate.Name("category", validate.SanitizeName(cat.Name)); err != nil {
			return errors.Wrapf(err, "backup category %d", i+1)
		}
	}
	for i, tag := range b.Tags {
		if tag == nil {
			return emptyEntry("tag", i)
		}
		if err := validate.Name("tag", validate.SanitizeName(tag.Name)); err != nil {
			return errors.Wrapf(err, "backup tag %d", i+1)
		}
		if err := validate.HexColor(tag.Color); err != nil {
			return errors.Wrapf(err, "backup tag %d", i+1)
		}
	}
	return nil
}

// importTasks returns cleaned copies of the backup's tasks.
func importTasks(src []*model.Task) ([]model.Task, error) {
	out := make([]model.Task, 0, len(src))
	for i, t := range src {
		if t == nil {
			return nil, emptyEntry("task", i)
		}
		task, err := importTask(t)
		if err != nil {
			return nil, errors.Wrapf(err, "backup task %d", i+1)
		}
		out = append(out, task)
	}
	return out, nil
}

// importTask applies the checks CreateTask does. Stored due dates must
// already be YYYY-MM-DD. A missing status or priority gets the default.
func importTask(src *model.Task) (model.Task, error) {
	task := src.Clone()

	task.Title = validate.SanitizeTitle(task.Title)
	if err := validate.Title(task.Title); err != nil {
		return task, err
	}
	task.Description = validate.SanitizeDescription(task.Description)
	if err := validate.Description(task.Description); err != nil {
		return task, err
	}
	if err := validate.DueDate(task.DueDate); err != nil {
		return task, err
	}

	if task.Status == "" {
		task.Status = model.StatusPending
	} else {
		st, err := validate.Status(string(task.Status))
		if err != nil {
			return task, err
		}
		task.Status = st
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	} else {
		p, err := validate.Priority(string(task.Priority))
		if err != nil {
			return task, err
		}
		task.Priority = p
	}
	return task, nil
}

func emptyEntry(kind string, i int) error {
	return errors.NewUserErrorWithField(kind, strconv.Itoa(i+1),
		"Backup contains an empty "+kind+" entry",
		"Remove the null entry and import again")
}

func importIdentity(t *model.Task) string {
	return t.Title + "\x00" + t.CreatedAt.UTC().Format(time.RFC3339)
}
