package cmd

import (
	"github.com/spf13/cobra"
)

// undoCmd reverts the last delete or complete of this session.
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last delete or complete",
	Long: `Undo the most recent delete or complete. The undo history lives in
memory for one session, so this is useful inside 'smarttask shell'; a fresh
process has nothing to undo. The dashboard binds the same action to ctrl+z.

Examples:
  smarttask shell
  smarttask> delete 5 --force
  smarttask> undo
  # Restores task #5 with its original id`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	res, err := ctx.App.Undo()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		names, err := ctx.Names()
		if err != nil {
			return err
		}
		return ctx.JSONFormatter().PrintUndo(res, names)
	}
	ctx.CLIFormatter().PrintUndo(res)
	return nil
}
