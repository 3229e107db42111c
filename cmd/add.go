package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/output"
)

// Add command flags.
var (
	addFlagDescription string
	addFlagDue         string
	addFlagPriority    string
	addFlagCategory    string
	addFlagTags        []string
)

// addCmd creates a task.
var addCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"new", "a"},
	Short:   "Add a task",
	Long: `Add a task. Due dates accept natural language.

Examples:
  smarttask add "Buy milk"
  smarttask add "Pay rent" --due "next monday" --priority high --category Finance
  smarttask add "Review PR" -d tomorrow -t work -t review`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addFlagDescription, "description", "", "Longer description")
	addCmd.Flags().StringVarP(&addFlagDue, "due", "d", "", "Due date (2025-12-15, tomorrow, next friday, +3d)")
	addCmd.Flags().StringVarP(&addFlagPriority, "priority", "p", "", "Priority: low, medium, high")
	addCmd.Flags().StringVarP(&addFlagCategory, "category", "c", "", "Category name or id")
	addCmd.Flags().StringSliceVarP(&addFlagTags, "tag", "t", nil, "Tag name or id (repeatable)")

	addCmd.RegisterFlagCompletionFunc("priority", cobra.FixedCompletions(
		[]string{"low", "medium", "high"}, cobra.ShellCompDirectiveNoFileComp))
	addCmd.RegisterFlagCompletionFunc("category", completeCategories)
	addCmd.RegisterFlagCompletionFunc("tag", completeTags)

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	task, err := ctx.App.CreateTask(app.TaskInput{
		Title:       args[0],
		Description: addFlagDescription,
		Due:         addFlagDue,
		Priority:    addFlagPriority,
		Category:    addFlagCategory,
		Tags:        addFlagTags,
	})
	if err != nil {
		return err
	}

	names, err := ctx.Names()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("created", task, names)
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Added task #%d '%s'", task.ID, task.Title))
	if task.DueDate != "" {
		cli.Muted(fmt.Sprintf("  due %s (%s)", task.DueDate, output.FormatDue(task.DueDate, ctx.App.Today())))
	}
	return nil
}
