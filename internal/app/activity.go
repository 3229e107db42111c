package app

import (
	"github.com/manav03panchal/smarttask/internal/model"
)

// RecentActivity returns the newest audit entries first. limit <= 0 means
// DefaultActivityLimit.
func (c *Controller) RecentActivity(limit int) ([]*model.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return c.repos.Activity.Recent(limit)
}
