package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// doneCmd completes a task.
var doneCmd = &cobra.Command{
	Use:               "done ID",
	Aliases:           []string{"complete", "finish"},
	Short:             "Mark a task completed",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	task, err := ctx.App.CompleteTask(id)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		names, err := ctx.Names()
		if err != nil {
			return err
		}
		return ctx.JSONFormatter().PrintTask("completed", task, names)
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Completed task #%d '%s'", task.ID, task.Title))
	return nil
}
