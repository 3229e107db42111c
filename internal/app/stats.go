package app

import (
	"sort"
	"time"

	"github.com/manav03panchal/smarttask/internal/model"
)

// Uncategorized labels tasks without a category in statistics.
const Uncategorized = "Uncategorized"

// Stats summarises the task list on a given day.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	// Overdue includes pending tasks whose due date has passed but that
	// have not been marked yet.
	Overdue    int             `json:"overdue"`
	DueToday   int             `json:"due_today"`
	ByCategory []CategoryCount `json:"by_category"`
}

// CategoryCount is the number of tasks in one category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CompletionRate is the share of completed tasks, 0 when there are none.
func (s *Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// Stats computes task statistics relative to today.
func (c *Controller) Stats(today time.Time) (*Stats, error) {
	tasks, err := c.repos.Tasks.List()
	if err != nil {
		return nil, err
	}
	cats, err := c.repos.Categories.List()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cats))
	for _, cat := range cats {
		names[cat.ID] = cat.Name
	}

	s := &Stats{Total: len(tasks)}
	perCategory := map[string]int{}
	for _, t := range tasks {
		switch {
		case t.Status == model.StatusCompleted:
			s.Completed++
		case t.Status == model.StatusOverdue || t.IsPastDue(today):
			s.Overdue++
		default:
			s.Pending++
		}
		if !t.IsCompleted() && t.IsDueOn(today) {
			s.DueToday++
		}

		name, ok := names[t.CategoryID]
		if !ok {
			name = Uncategorized
		}
		perCategory[name]++
	}

	for name, n := range perCategory {
		s.ByCategory = append(s.ByCategory, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	return s, nil
}
