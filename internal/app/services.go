package app

import (
	"github.com/manav03panchal/smarttask/internal/export"
	"github.com/manav03panchal/smarttask/internal/notify"
	"github.com/manav03panchal/smarttask/internal/parser"
)

// Check marks past-due tasks overdue and builds the reminder digest for
// today. It returns the digest and the number of tasks newly marked.
func (c *Controller) Check(dueSoonDays int) (*notify.Digest, int, error) {
	today := c.Today()
	marked, err := c.MarkOverdue(today)
	if err != nil {
		return nil, marked, err
	}
	tasks, err := c.repos.Tasks.List()
	if err != nil {
		return nil, marked, err
	}
	return notify.BuildDigest(tasks, today, dueSoonDays), marked, nil
}

// ExportData gathers tasks with their categories and tags.
func (c *Controller) ExportData() (export.Data, error) {
	tasks, err := c.repos.Tasks.List()
	if err != nil {
		return export.Data{}, err
	}
	cats, err := c.repos.Categories.List()
	if err != nil {
		return export.Data{}, err
	}
	tags, err := c.repos.Tags.List()
	if err != nil {
		return export.Data{}, err
	}
	return export.Data{Tasks: tasks, Categories: cats, Tags: tags}, nil
}

// ParseVoice interprets a transcribed command against the known categories.
func (c *Controller) ParseVoice(text string) (parser.VoiceCommand, error) {
	names, err := c.CategoryNames()
	if err != nil {
		return parser.VoiceCommand{}, err
	}
	return parser.ParseVoiceCommand(text, c.now(), names), nil
}

// VoiceInput converts a parsed command into task input. An unparsable due
// date is passed through as text so CreateTask reports it.
func VoiceInput(cmd parser.VoiceCommand) TaskInput {
	in := TaskInput{
		Title:       cmd.Title,
		Description: cmd.Description,
		Priority:    string(cmd.Priority),
		Category:    cmd.Category,
		Due:         cmd.DueDate,
	}
	if in.Due == "" && cmd.DueErr != nil {
		in.Due = cmd.DueText
	}
	return in
}
