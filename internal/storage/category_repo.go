package storage

import (
	"sort"
	"strings"

	apperrors "github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

// CategoryRepo provides operations for Category entities.
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create stores a new category with the next free id.
func (r *CategoryRepo) Create(c *model.Category) error {
	id, err := r.db.NextID(model.PrefixCategory)
	if err != nil {
		return err
	}
	c.ID = id
	return r.db.Insert(c)
}

// Get retrieves a category by id.
func (r *CategoryRepo) Get(id int64) (*model.Category, error) {
	c := &model.Category{}
	if err := r.db.Get(model.GenerateCategoryKey(id), c); err != nil {
		return nil, r.mapErr(err, id)
	}
	return c, nil
}

// GetByName finds a category by name, ignoring case.
func (r *CategoryRepo) GetByName(name string) (*model.Category, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for _, c := range all {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, apperrors.Wrapf(apperrors.ErrCategoryNotFound, "category %q", name)
}

// Update updates an existing category.
func (r *CategoryRepo) Update(c *model.Category) error {
	return r.mapErr(r.db.Replace(c), c.ID)
}

// Delete removes a category.
func (r *CategoryRepo) Delete(id int64) error {
	return r.mapErr(r.db.Delete(model.GenerateCategoryKey(id)), id)
}

// List returns all categories sorted by name.
func (r *CategoryRepo) List() ([]*model.Category, error) {
	cats, err := GetAllByPrefix(r.db, model.PrefixCategory+":", func() *model.Category {
		return &model.Category{}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return strings.ToLower(cats[i].Name) < strings.ToLower(cats[j].Name)
	})
	return cats, nil
}

func (r *CategoryRepo) mapErr(err error, id int64) error {
	if IsErrKeyNotFound(err) {
		return apperrors.NotFound(apperrors.ErrCategoryNotFound, id)
	}
	return err
}
