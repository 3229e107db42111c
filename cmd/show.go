package cmd

import (
	"github.com/spf13/cobra"
)

// showCmd prints one task.
var showCmd = &cobra.Command{
	Use:               "show ID",
	Aliases:           []string{"get", "info"},
	Short:             "Show a task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTaskIDs,
	RunE:              runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	task, err := ctx.App.GetTask(id)
	if err != nil {
		return err
	}
	names, err := ctx.Names()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTask("ok", task, names)
	}
	ctx.CLIFormatter().PrintTask(task, names, ctx.App.Today())
	return nil
}
