package app

import (
	"sort"
	"strings"
	"time"

	apperrors "github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/storage"
)

// fakeStore is an in-memory store with switchable failures.
type fakeStore struct {
	now    func() time.Time
	nextID int64

	tasks      map[int64]model.Task
	categories map[int64]model.Category
	tags       map[int64]model.Tag
	activity   []*model.Activity

	failDelete    error
	failSetStatus error
	failRestore   error
	failUpdate    error
}

func newFakeStore(now func() time.Time) *fakeStore {
	return &fakeStore{
		now:        now,
		tasks:      map[int64]model.Task{},
		categories: map[int64]model.Category{},
		tags:       map[int64]model.Tag{},
	}
}

func (f *fakeStore) repos() storage.Repos {
	return storage.Repos{
		Tasks:      fakeTasks{f},
		Categories: fakeCategories{f},
		Tags:       fakeTags{f},
		Activity:   fakeActivity{f},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

type fakeTasks struct{ f *fakeStore }

func (r fakeTasks) Create(t *model.Task) error {
	t.ID = r.f.id()
	t.CreatedAt = r.f.now().UTC().Truncate(time.Second)
	r.f.tasks[t.ID] = t.Clone()
	return nil
}

func (r fakeTasks) Get(id int64) (*model.Task, error) {
	t, ok := r.f.tasks[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrTaskNotFound, id)
	}
	c := t.Clone()
	return &c, nil
}

func (r fakeTasks) Update(t *model.Task) error {
	if r.f.failUpdate != nil {
		return r.f.failUpdate
	}
	if _, ok := r.f.tasks[t.ID]; !ok {
		return apperrors.NotFound(apperrors.ErrTaskNotFound, t.ID)
	}
	r.f.tasks[t.ID] = t.Clone()
	return nil
}

func (r fakeTasks) Delete(id int64) error {
	if r.f.failDelete != nil {
		return r.f.failDelete
	}
	if _, ok := r.f.tasks[id]; !ok {
		return apperrors.NotFound(apperrors.ErrTaskNotFound, id)
	}
	delete(r.f.tasks, id)
	return nil
}

func (r fakeTasks) Restore(t *model.Task) error {
	if r.f.failRestore != nil {
		return r.f.failRestore
	}
	if _, ok := r.f.tasks[t.ID]; ok {
		return apperrors.NotFound(apperrors.ErrTaskExists, t.ID)
	}
	r.f.tasks[t.ID] = t.Clone()
	return nil
}

func (r fakeTasks) SetStatus(id int64, status model.Status) error {
	if r.f.failSetStatus != nil {
		return r.f.failSetStatus
	}
	t, ok := r.f.tasks[id]
	if !ok {
		return apperrors.NotFound(apperrors.ErrTaskNotFound, id)
	}
	t.Status = status
	r.f.tasks[id] = t
	return nil
}

func (r fakeTasks) List() ([]*model.Task, error) {
	out := make([]*model.Task, 0, len(r.f.tasks))
	for _, t := range r.f.tasks {
		c := t.Clone()
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCategories struct{ f *fakeStore }

func (r fakeCategories) Create(c *model.Category) error {
	c.ID = r.f.id()
	r.f.categories[c.ID] = *c
	return nil
}

func (r fakeCategories) Get(id int64) (*model.Category, error) {
	c, ok := r.f.categories[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrCategoryNotFound, id)
	}
	return &c, nil
}

func (r fakeCategories) GetByName(name string) (*model.Category, error) {
	for _, c := range r.f.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, apperrors.Wrapf(apperrors.ErrCategoryNotFound, "category %q", name)
}

func (r fakeCategories) Update(c *model.Category) error {
	if _, ok := r.f.categories[c.ID]; !ok {
		return apperrors.NotFound(apperrors.ErrCategoryNotFound, c.ID)
	}
	r.f.categories[c.ID] = *c
	return nil
}

func (r fakeCategories) Delete(id int64) error {
	if _, ok := r.f.categories[id]; !ok {
		return apperrors.NotFound(apperrors.ErrCategoryNotFound, id)
	}
	delete(r.f.categories, id)
	return nil
}

func (r fakeCategories) List() ([]*model.Category, error) {
	out := make([]*model.Category, 0, len(r.f.categories))
	for _, c := range r.f.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

type fakeTags struct{ f *fakeStore }

func (r fakeTags) Create(t *model.Tag) error {
	t.ID = r.f.id()
	r.f.tags[t.ID] = *t
	return nil
}

func (r fakeTags) Get(id int64) (*model.Tag, error) {
	t, ok := r.f.tags[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrTagNotFound, id)
	}
	return &t, nil
}

func (r fakeTags) GetByName(name string) (*model.Tag, error) {
	for _, t := range r.f.tags {
		if strings.EqualFold(t.Name, name) {
			return &t, nil
		}
	}
	return nil, apperrors.Wrapf(apperrors.ErrTagNotFound, "tag %q", name)
}

func (r fakeTags) Delete(id int64) error {
	if _, ok := r.f.tags[id]; !ok {
		return apperrors.NotFound(apperrors.ErrTagNotFound, id)
	}
	delete(r.f.tags, id)
	return nil
}

func (r fakeTags) List() ([]*model.Tag, error) {
	out := make([]*model.Tag, 0, len(r.f.tags))
	for _, t := range r.f.tags {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

type fakeActivity struct{ f *fakeStore }

func (r fakeActivity) Append(a *model.Activity) error {
	r.f.activity = append(r.f.activity, a)
	return nil
}

func (r fakeActivity) Recent(limit int) ([]*model.Activity, error) {
	var out []*model.Activity
	for i := len(r.f.activity) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.f.activity[i])
	}
	return out, nil
}
