package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	apperrors "github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

// TagRepo implements storage.TagStore.
type TagRepo struct {
	db *sql.DB
}

func (r *TagRepo) Create(t *model.Tag) error {
	res, err := r.db.Exec(`INSERT INTO tags (name, color) VALUES (?, ?)`, t.Name, t.Color)
	if isConstraint(err) {
		return apperrors.Wrapf(apperrors.ErrDuplicateName, "tag %q", t.Name)
	}
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

func (r *TagRepo) Get(id int64) (*model.Tag, error) {
	var t model.Tag
	err := r.db.QueryRow(`SELECT id, name, color FROM tags WHERE id = ?`, id).Scan(&t.ID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(apperrors.ErrTagNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepo) GetByName(name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	var t model.Tag
	err := r.db.QueryRow(`SELECT id, name, color FROM tags WHERE name = ?`, name).Scan(&t.ID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrapf(apperrors.ErrTagNotFound, "tag %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a tag; task links cascade.
func (r *TagRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM tags WHERE id = ?`, id)
	return affectedOne(res, err, apperrors.ErrTagNotFound, id)
}

func (r *TagRepo) List() ([]*model.Tag, error) {
	rows, err := r.db.Query(`SELECT id, name, color FROM tags ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
