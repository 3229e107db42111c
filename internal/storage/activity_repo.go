package storage

import (
	"github.com/google/uuid"

	"github.com/manav03panchal/smarttask/internal/model"
)

// ActivityRepo stores the audit log. Keys are UUID v7 so that key order is
// chronological.
type ActivityRepo struct {
	db *DB
}

// NewActivityRepo creates a new activity repository.
func NewActivityRepo(db *DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Append records an activity entry.
func (r *ActivityRepo) Append(a *model.Activity) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	a.Key = model.GenerateActivityKey(id.String())
	return r.db.Set(a)
}

// Recent returns up to limit entries, newest first.
func (r *ActivityRepo) Recent(limit int) ([]*model.Activity, error) {
	return GetLastByPrefix(r.db, model.PrefixActivity+":", limit, func() *model.Activity {
		return &model.Activity{}
	})
}
