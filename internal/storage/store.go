package storage

import (
	"github.com/manav03panchal/smarttask/internal/model"
)

// Backend names accepted by storage.backend.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// TaskStore persists tasks. Missing ids are reported with
// errors.ErrTaskNotFound.
type TaskStore interface {
	// Create assigns a fresh id and creation time, then stores the task.
	Create(task *model.Task) error
	Get(id int64) (*model.Task, error)
	Update(task *model.Task) error
	Delete(id int64) error
	// Restore re-inserts a previously deleted task under its original id.
	// It fails with errors.ErrTaskExists when the id is occupied.
	Restore(task *model.Task) error
	SetStatus(id int64, status model.Status) error
	List() ([]*model.Task, error)
}

// CategoryStore persists categories.
type CategoryStore interface {
	Create(c *model.Category) error
	Get(id int64) (*model.Category, error)
	// GetByName matches case-insensitively.
	GetByName(name string) (*model.Category, error)
	Update(c *model.Category) error
	Delete(id int64) error
	// List returns categories sorted by name.
	List() ([]*model.Category, error)
}

// TagStore persists tags.
type TagStore interface {
	Create(t *model.Tag) error
	Get(id int64) (*model.Tag, error)
	GetByName(name string) (*model.Tag, error)
	Delete(id int64) error
	List() ([]*model.Tag, error)
}

// ActivityStore is the append-only audit log.
type ActivityStore interface {
	Append(a *model.Activity) error
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]*model.Activity, error)
}

// Repos groups the stores of one backend.
type Repos struct {
	Tasks      TaskStore
	Categories CategoryStore
	Tags       TagStore
	Activity   ActivityStore
}

// NewRepos returns Badger-backed stores sharing db.
func NewRepos(db *DB) Repos {
	return Repos{
		Tasks:      NewTaskRepo(db),
		Categories: NewCategoryRepo(db),
		Tags:       NewTagRepo(db),
		Activity:   NewActivityRepo(db),
	}
}
