package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/errors"
)

// editCmd changes task fields.
var editCmd = &cobra.Command{
	Use:     "edit ID",
	Aliases: []string{"update", "e"},
	Short:   "Edit a task",
	Long: `Change one or more fields of a task. Only the flags given are applied.
Pass an empty value to clear the due date or category.

Examples:
  smarttask edit 3 --title "Buy oat milk"
  smarttask edit 3 --due friday --priority low
  smarttask edit 3 --status pending
  smarttask edit 3 --category "" --tag home --tag errands`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runEdit,
}

func init() {
	f := editCmd.Flags()
	f.String("title", "", "New title")
	f.String("description", "", "New description")
	f.StringP("due", "d", "", "New due date, empty to clear")
	f.StringP("priority", "p", "", "New priority: low, medium, high")
	f.StringP("status", "s", "", "New status: pending, overdue, completed")
	f.StringP("category", "c", "", "New category, empty to clear")
	f.StringSliceP("tag", "t", nil, "Replace tags (repeatable)")

	editCmd.RegisterFlagCompletionFunc("category", completeCategories)
	editCmd.RegisterFlagCompletionFunc("tag", completeTags)

	rootCmd.AddCommand(editCmd)
}

// stringFlag returns a pointer to the flag value when it was set.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	patch := app.TaskPatch{
		Title:       stringFlag(cmd, "title"),
		Description: stringFlag(cmd, "description"),
		Due:         stringFlag(cmd, "due"),
		Priority:    stringFlag(cmd, "priority"),
		Status:      stringFlag(cmd, "status"),
		Category:    stringFlag(cmd, "category"),
	}
	if cmd.Flags().Changed("tag") {
		tags, _ := cmd.Flags().GetStringSlice("tag")
		patch.Tags = &tags
	}
	if patch.Empty() {
		return errors.NewUserError("Nothing to change",
			"Pass at least one of --title, --description, --due, --priority, --status, --category or --tag.")
	}

	task, err := ctx.App.UpdateTask(id, patch)
	if err != nil {
		return err
	}
	names, err := ctx.Names()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("updated", task, names)
	}
	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Updated task #%d '%s'", task.ID, task.Title))
	cli.PrintTask(task, names, ctx.App.Today())
	return nil
}
