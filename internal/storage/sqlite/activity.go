package sqlite

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/manav03panchal/smarttask/internal/model"
)

// ActivityRepo implements storage.ActivityStore.
type ActivityRepo struct {
	db *sql.DB
}

// Append inserts an entry. Its key is the row id.
func (r *ActivityRepo) Append(a *model.Activity) error {
	res, err := r.db.Exec(`INSERT INTO activity (kind, task_id, task_title, details, at) VALUES (?, ?, ?, ?, ?)`,
		a.Kind, nullInt(a.TaskID), a.TaskTitle, a.Details, a.At.UTC().Format(timeLayout))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.Key = model.PrefixActivity + ":" + strconv.FormatInt(id, 10)
	return nil
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (r *ActivityRepo) Recent(limit int) ([]*model.Activity, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(`SELECT id, kind, task_id, task_title, details, at FROM activity
		ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Activity
	for rows.Next() {
		var (
			a      model.Activity
			id     int64
			taskID sql.NullInt64
			at     string
		)
		if err := rows.Scan(&id, &a.Kind, &taskID, &a.TaskTitle, &a.Details, &at); err != nil {
			return nil, err
		}
		a.Key = model.PrefixActivity + ":" + strconv.FormatInt(id, 10)
		a.TaskID = taskID.Int64
		if a.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, err
		}
		a.At = a.At.UTC()
		out = append(out, &a)
	}
	return out, rows.Err()
}
