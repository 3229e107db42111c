package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

const taskColumns = `id, title, description, due_date, status, priority, category_id, created_at`

// TaskRepo implements storage.TaskStore.
type TaskRepo struct {
	db  *sql.DB
	now func() time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	var (
		t        model.Task
		due      sql.NullString
		category sql.NullInt64
		created  string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Status, &t.Priority, &category, &created); err != nil {
		return nil, err
	}
	t.DueDate = due.String
	t.CategoryID = category.Int64
	at, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("task %d: bad created_at %q: %w", t.ID, created, err)
	}
	t.CreatedAt = at.UTC()
	return &t, nil
}

// Create inserts a task and assigns its id and creation time.
func (r *TaskRepo) Create(task *model.Task) error {
	task.CreatedAt = r.now().UTC().Truncate(time.Second)
	return withTx(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`INSERT INTO tasks (title, description, due_date, status, priority, category_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			task.Title, task.Description, nullString(task.DueDate), task.Status, task.Priority,
			nullInt(task.CategoryID), task.CreatedAt.Format(timeLayout))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		task.ID = id
		return writeTags(tx, task)
	})
}

// Get retrieves a task by id.
func (r *TaskRepo) Get(id int64) (*model.Task, error) {
	task, err := scanTask(r.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(apperrors.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	tags, err := r.tagsByTask(id)
	if err != nil {
		return nil, err
	}
	task.TagIDs = tags[id]
	return task, nil
}

// Update overwrites every column of an existing task and its tag links.
func (r *TaskRepo) Update(task *model.Task) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE tasks SET title = ?, description = ?, due_date = ?, status = ?,
			priority = ?, category_id = ?, created_at = ? WHERE id = ?`,
			task.Title, task.Description, nullString(task.DueDate), task.Status,
			task.Priority, nullInt(task.CategoryID), task.CreatedAt.UTC().Format(timeLayout), task.ID)
		if err := affectedOne(res, err, apperrors.ErrTaskNotFound, task.ID); err != nil {
			return err
		}
		return writeTags(tx, task)
	})
}

// Delete removes a task; its tag links cascade.
func (r *TaskRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return affectedOne(res, err, apperrors.ErrTaskNotFound, id)
}

// Restore re-inserts a task with its original id and creation time.
func (r *TaskRepo) Restore(task *model.Task) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, task.Title, task.Description, nullString(task.DueDate), task.Status,
			task.Priority, nullInt(task.CategoryID), task.CreatedAt.UTC().Format(timeLayout))
		if isConstraint(err) {
			return fmt.Errorf("%w: %d", apperrors.ErrTaskExists, task.ID)
		}
		if err != nil {
			return err
		}
		return writeTags(tx, task)
	})
}

// SetStatus changes only the status column.
func (r *TaskRepo) SetStatus(id int64, status model.Status) error {
	res, err := r.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	return affectedOne(res, err, apperrors.ErrTaskNotFound, id)
}

// List returns all tasks in id order.
func (r *TaskRepo) List() ([]*model.Task, error) {
	rows, err := r.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := r.tagsByTask(0)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.TagIDs = tags[t.ID]
	}
	return tasks, nil
}

// tagsByTask loads tag links in insertion order. taskID 0 loads all of them.
func (r *TaskRepo) tagsByTask(taskID int64) (map[int64][]int64, error) {
	query := `SELECT task_id, tag_id FROM task_tags`
	var args []any
	if taskID != 0 {
		query += ` WHERE task_id = ?`
		args = append(args, taskID)
	}
	rows, err := r.db.Query(query+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var task, tag int64
		if err := rows.Scan(&task, &tag); err != nil {
			return nil, err
		}
		out[task] = append(out[task], tag)
	}
	return out, rows.Err()
}

func writeTags(tx *sql.Tx, task *model.Task) error {
	if _, err := tx.Exec(`DELETE FROM task_tags WHERE task_id = ?`, task.ID); err != nil {
		return err
	}
	for _, tag := range task.TagIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)`, task.ID, tag); err != nil {
			return fmt.Errorf("link tag %d: %w", tag, err)
		}
	}
	return nil
}

// affectedOne maps a statement that touched no row to sentinel.
func affectedOne(res sql.Result, err error, sentinel error, id int64) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound(sentinel, id)
	}
	return nil
}
