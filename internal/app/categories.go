package app

import (
	"fmt"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/validate"
)

// EnsureDefaultCategories creates the default categories that are missing
// and returns how many were added.
func (c *Controller) EnsureDefaultCategories() (int, error) {
	added := 0
	for _, def := range model.DefaultCategories {
		_, err := c.repos.Categories.GetByName(def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, errors.ErrCategoryNotFound) {
			return added, err
		}
		if err := c.repos.Categories.Create(model.NewCategory(def.Name, def.Description)); err != nil {
			return added, errors.Wrapf(err, "seeding category %q", def.Name)
		}
		added++
	}
	if added > 0 {
		c.log.Debug("seeded default categories", logging.KeyCount, added)
	}
	return added, nil
}

// ListCategories returns all categories sorted by name.
func (c *Controller) ListCategories() ([]*model.Category, error) {
	return c.repos.Categories.List()
}

// CategoryNames returns the names of all categories.
func (c *Controller) CategoryNames() ([]string, error) {
	cats, err := c.repos.Categories.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = cat.Name
	}
	return names, nil
}

// GetCategory returns a category by id or name.
func (c *Controller) GetCategory(ref string) (*model.Category, error) {
	return c.findCategory(ref)
}

// CreateCategory adds a category. Names are unique ignoring case.
func (c *Controller) CreateCategory(name, description string) (*model.Category, error) {
	name = validate.SanitizeName(name)
	if err := validate.Name("category", name); err != nil {
		return nil, err
	}
	if err := c.ensureCategoryNameFree(name, 0); err != nil {
		return nil, err
	}

	cat := model.NewCategory(name, validate.SanitizeDescription(description))
	if err := c.repos.Categories.Create(cat); err != nil {
		return nil, c.duplicateOr(err, "category", name)
	}
	c.log.Debug("category created", logging.KeyCategory, name)
	return cat, nil
}

// RenameCategory changes a category's name.
func (c *Controller) RenameCategory(ref, name string) (*model.Category, error) {
	cat, err := c.findCategory(ref)
	if err != nil {
		return nil, err
	}
	name = validate.SanitizeName(name)
	if err := validate.Name("category", name); err != nil {
		return nil, err
	}
	if err := c.ensureCategoryNameFree(name, cat.ID); err != nil {
		return nil, err
	}

	cat.Name = name
	if err := c.repos.Categories.Update(cat); err != nil {
		return nil, c.duplicateOr(err, "category", name)
	}
	return cat, nil
}

// DeleteCategory removes a category that no task references.
func (c *Controller) DeleteCategory(ref string) (*model.Category, error) {
	cat, err := c.findCategory(ref)
	if err != nil {
		return nil, err
	}

	tasks, err := c.repos.Tasks.List()
	if err != nil {
		return nil, err
	}
	inUse := 0
	for _, t := range tasks {
		if t.CategoryID == cat.ID {
			inUse++
		}
	}
	if inUse > 0 {
		return nil, errors.NewUserErrorWithField("category", cat.Name,
			fmt.Sprintf("Category is used by %d task(s)", inUse), "").WithCause(errors.ErrCategoryInUse)
	}

	if err := c.repos.Categories.Delete(cat.ID); err != nil {
		return nil, err
	}
	c.log.Debug("category deleted", logging.KeyCategory, cat.Name)
	return cat, nil
}

func (c *Controller) ensureCategoryNameFree(name string, self int64) error {
	existing, err := c.repos.Categories.GetByName(name)
	switch {
	case errors.Is(err, errors.ErrCategoryNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	}
	return duplicateName("category", name)
}

func (c *Controller) duplicateOr(err error, field, name string) error {
	if errors.Is(err, errors.ErrDuplicateName) {
		return duplicateName(field, name)
	}
	return err
}

func duplicateName(field, name string) error {
	return errors.NewUserErrorWithField(field, name,
		"A "+field+" with this name already exists", "").WithCause(errors.ErrDuplicateName)
}
