// Package notify builds due-date reminders: which pending tasks are overdue,
// due today or due within the next few days.
package notify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/manav03panchal/smarttask/internal/model"
)

// DefaultDueSoonDays is the look-ahead window used when none is configured.
const DefaultDueSoonDays = 3

// Digest groups the tasks that need attention on a given day.
type Digest struct {
	Day      string        `json:"day"`
	Overdue  []*model.Task `json:"overdue"`
	DueToday []*model.Task `json:"due_today"`
	DueSoon  []*model.Task `json:"due_soon"`
}

// Empty reports whether there is nothing to remind about.
func (d *Digest) Empty() bool {
	return len(d.Overdue) == 0 && len(d.DueToday) == 0 && len(d.DueSoon) == 0
}

// BuildDigest classifies tasks relative to today. Completed tasks are
// ignored. A task counts as overdue when its status is overdue or when it
// is pending with a due date before today. Due soon covers the dueSoonDays
// days after today.
func BuildDigest(tasks []*model.Task, today time.Time, dueSoonDays int) *Digest {
	if dueSoonDays < 0 {
		dueSoonDays = 0
	}
	day := today.Format(model.DateLayout)
	horizon := today.AddDate(0, 0, dueSoonDays).Format(model.DateLayout)

	d := &Digest{Day: day}
	for _, t := range tasks {
		switch {
		case t.IsCompleted():
			continue
		case t.Status == model.StatusOverdue || t.IsPastDue(today):
			d.Overdue = append(d.Overdue, t)
		case t.DueDate == day:
			d.DueToday = append(d.DueToday, t)
		case t.DueDate > day && t.DueDate <= horizon:
			d.DueSoon = append(d.DueSoon, t)
		}
	}

	for _, group := range [][]*model.Task{d.Overdue, d.DueToday, d.DueSoon} {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].DueDate != group[j].DueDate {
				return group[i].DueDate < group[j].DueDate
			}
			return group[i].ID < group[j].ID
		})
	}
	return d
}

// Message is a short human summary, empty when the digest is empty.
func (d *Digest) Message() string {
	var parts []string
	if n := len(d.Overdue); n > 0 {
		parts = append(parts, fmt.Sprintf("%d overdue %s", n, plural(n)))
	}
	if n := len(d.DueToday); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s due today", n, plural(n)))
	}
	if n := len(d.DueSoon); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s due soon", n, plural(n)))
	}
	if len(parts) == 0 {
		return ""
	}
	return "You have " + joinList(parts) + "."
}

func plural(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}

func joinList(parts []string) string {
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
