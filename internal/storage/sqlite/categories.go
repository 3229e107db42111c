package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	apperrors "github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

// CategoryRepo implements storage.CategoryStore.
type CategoryRepo struct {
	db *sql.DB
}

func (r *CategoryRepo) Create(c *model.Category) error {
	res, err := r.db.Exec(`INSERT INTO categories (name, description) VALUES (?, ?)`, c.Name, c.Description)
	if isConstraint(err) {
		return apperrors.Wrapf(apperrors.ErrDuplicateName, "category %q", c.Name)
	}
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (r *CategoryRepo) Get(id int64) (*model.Category, error) {
	return r.one(`SELECT id, name, description FROM categories WHERE id = ?`, id, apperrors.NotFound(apperrors.ErrCategoryNotFound, id))
}

// GetByName relies on the NOCASE collation of the name column.
func (r *CategoryRepo) GetByName(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	return r.one(`SELECT id, name, description FROM categories WHERE name = ?`, name,
		apperrors.Wrapf(apperrors.ErrCategoryNotFound, "category %q", name))
}

func (r *CategoryRepo) one(query string, arg any, notFound error) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(query, arg).Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Update(c *model.Category) error {
	res, err := r.db.Exec(`UPDATE categories SET name = ?, description = ? WHERE id = ?`, c.Name, c.Description, c.ID)
	if isConstraint(err) {
		return apperrors.Wrapf(apperrors.ErrDuplicateName, "category %q", c.Name)
	}
	return affectedOne(res, err, apperrors.ErrCategoryNotFound, c.ID)
}

func (r *CategoryRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return affectedOne(res, err, apperrors.ErrCategoryNotFound, id)
}

func (r *CategoryRepo) List() ([]*model.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, description FROM categories ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
