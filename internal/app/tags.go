package app

import (
	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/validate"
)

// ListTags returns all tags sorted by name.
func (c *Controller) ListTags() ([]*model.Tag, error) {
	return c.repos.Tags.List()
}

// CreateTag adds a tag. An empty color becomes model.DefaultTagColor.
func (c *Controller) CreateTag(name, color string) (*model.Tag, error) {
	name = validate.SanitizeName(name)
	if err := validate.Name("tag", name); err != nil {
		return nil, err
	}
	if err := validate.HexColor(color); err != nil {
		return nil, err
	}

	_, err := c.repos.Tags.GetByName(name)
	switch {
	case err == nil:
		return nil, duplicateName("tag", name)
	case !errors.Is(err, errors.ErrTagNotFound):
		return nil, err
	}

	tag := model.NewTag(name, color)
	if err := c.repos.Tags.Create(tag); err != nil {
		return nil, c.duplicateOr(err, "tag", name)
	}
	c.log.Debug("tag created", logging.KeyTag, name)
	return tag, nil
}

// DeleteTag removes a tag and strips it from every task carrying it.
func (c *Controller) DeleteTag(ref string) (*model.Tag, error) {
	tag, err := c.findTag(ref)
	if err != nil {
		return nil, err
	}

	tasks, err := c.repos.Tasks.List()
	if err != nil {
		return nil, err
	}
	stripped := 0
	for _, t := range tasks {
		if !t.RemoveTag(tag.ID) {
			continue
		}
		if err := c.repos.Tasks.Update(t); err != nil {
			return nil, errors.Wrapf(err, "removing tag from task %d", t.ID)
		}
		stripped++
	}

	if err := c.repos.Tags.Delete(tag.ID); err != nil {
		return nil, err
	}
	c.log.Debug("tag deleted", logging.KeyTag, tag.Name, logging.KeyCount, stripped)
	return tag, nil
}
