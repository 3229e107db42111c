package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd removes a task.
var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove", "del"},
	Short:   "Delete a task",
	Long: `Delete a task. Asks for confirmation when run interactively.

Examples:
  smarttask delete 5
  smarttask delete 5 --force`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runDelete,
}

func init() {
	addForceFlag(deleteCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	task, err := ctx.App.GetTask(id)
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Delete task #%d '%s'?", task.ID, task.Title)) {
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}

	task, err = ctx.App.DeleteTask(id)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		names, err := ctx.Names()
		if err != nil {
			return err
		}
		return ctx.JSONFormatter().PrintTask("deleted", task, names)
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Deleted task #%d '%s'", task.ID, task.Title))
	return nil
}
