package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/validate"
)

// List command flags.
var (
	listFlagCategory string
	listFlagStatus   string
	listFlagTag      string
)

// listCmd lists tasks.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List tasks",
	Long: `List tasks sorted by status, priority and due date. Pending tasks
past their due date are marked overdue first.

Examples:
  smarttask list
  smarttask list --status pending
  smarttask list --category Work --tag urgent`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFlagCategory, "category", "c", "", "Only tasks in this category")
	listCmd.Flags().StringVarP(&listFlagStatus, "status", "s", "", "Only tasks with this status: pending, overdue, completed")
	listCmd.Flags().StringVarP(&listFlagTag, "tag", "t", "", "Only tasks with this tag")

	listCmd.RegisterFlagCompletionFunc("category", completeCategories)
	listCmd.RegisterFlagCompletionFunc("tag", completeTags)
	listCmd.RegisterFlagCompletionFunc("status", cobra.FixedCompletions(
		[]string{"pending", "overdue", "completed"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	filter := app.TaskFilter{Category: listFlagCategory, Tag: listFlagTag}
	if listFlagStatus != "" {
		status, err := validate.Status(listFlagStatus)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	today := ctx.App.Today()
	if n, err := ctx.App.MarkOverdue(today); err != nil {
		return err
	} else if n > 0 {
		logging.DebugContext(ctx.Ctx, "marked tasks overdue", logging.KeyCount, n)
	}

	tasks, err := ctx.App.ListTasks(filter)
	if err != nil {
		return err
	}
	names, err := ctx.Names()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTasks(tasks, names)
	}
	ctx.CLIFormatter().PrintTasks(tasks, names, today)
	return nil
}
