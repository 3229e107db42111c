package storage

import (
	"sort"
	"strings"

	apperrors "github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
)

// TagRepo provides operations for Tag entities.
type TagRepo struct {
	db *DB
}

// NewTagRepo creates a new tag repository.
func NewTagRepo(db *DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create stores a new tag with the next free id.
func (r *TagRepo) Create(t *model.Tag) error {
	id, err := r.db.NextID(model.PrefixTag)
	if err != nil {
		return err
	}
	t.ID = id
	return r.db.Insert(t)
}

// Get retrieves a tag by id.
func (r *TagRepo) Get(id int64) (*model.Tag, error) {
	t := &model.Tag{}
	if err := r.db.Get(model.GenerateTagKey(id), t); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, apperrors.NotFound(apperrors.ErrTagNotFound, id)
		}
		return nil, err
	}
	return t, nil
}

// GetByName finds a tag by name, ignoring case.
func (r *TagRepo) GetByName(name string) (*model.Tag, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for _, t := range all {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, apperrors.Wrapf(apperrors.ErrTagNotFound, "tag %q", name)
}

// Delete removes a tag. Tasks still referencing it are not touched here.
func (r *TagRepo) Delete(id int64) error {
	err := r.db.Delete(model.GenerateTagKey(id))
	if IsErrKeyNotFound(err) {
		return apperrors.NotFound(apperrors.ErrTagNotFound, id)
	}
	return err
}

// List returns all tags sorted by name.
func (r *TagRepo) List() ([]*model.Tag, error) {
	tags, err := GetAllByPrefix(r.db, model.PrefixTag+":", func() *model.Tag {
		return &model.Tag{}
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return strings.ToLower(tags[i].Name) < strings.ToLower(tags[j].Name)
	})
	return tags, nil
}
