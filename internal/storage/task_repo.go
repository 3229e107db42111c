package storage

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

// TaskRepo provides operations for Task entities.
type TaskRepo struct {
	db  *DB
	now func() time.Time
}

// NewTaskRepo creates a new task repository.
func NewTaskRepo(db *DB) *TaskRepo {
	return &TaskRepo{db: db, now: time.Now}
}

// Create creates a new task with the next free id.
func (r *TaskRepo) Create(task *model.Task) error {
	id, err := r.db.NextID(model.PrefixTask)
	if err != nil {
		return err
	}
	task.ID = id
	task.CreatedAt = r.now().UTC().Truncate(time.Second)
	return r.db.Insert(task)
}

// Get retrieves a task by id.
func (r *TaskRepo) Get(id int64) (*model.Task, error) {
	task := &model.Task{}
	if err := r.db.Get(model.GenerateTaskKey(id), task); err != nil {
		return nil, r.mapErr(err, id)
	}
	return task, nil
}

// Update updates an existing task.
func (r *TaskRepo) Update(task *model.Task) error {
	return r.mapErr(r.db.Replace(task), task.ID)
}

// Delete removes a task.
func (r *TaskRepo) Delete(id int64) error {
	return r.mapErr(r.db.Delete(model.GenerateTaskKey(id)), id)
}

// Restore re-inserts a task under its original id.
func (r *TaskRepo) Restore(task *model.Task) error {
	err := r.db.Insert(task)
	if errors.Is(err, ErrKeyExists) {
		return fmt.Errorf("%w: %d", apperrors.ErrTaskExists, task.ID)
	}
	return err
}

// SetStatus changes only the status of a task.
func (r *TaskRepo) SetStatus(id int64, status model.Status) error {
	task, err := r.Get(id)
	if err != nil {
		return err
	}
	task.Status = status
	return r.Update(task)
}

// List retrieves all tasks in id order.
func (r *TaskRepo) List() ([]*model.Task, error) {
	return GetAllByPrefix(r.db, model.PrefixTask+":", func() *model.Task {
		return &model.Task{}
	})
}

func (r *TaskRepo) mapErr(err error, id int64) error {
	if IsErrKeyNotFound(err) {
		return apperrors.NotFound(apperrors.ErrTaskNotFound, id)
	}
	return err
}
