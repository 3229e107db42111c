package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/app"
)

var activityFlagLimit int

// activityCmd prints the audit log.
var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"log", "history"},
	Short:   "Show recent task activity",
	Long: `Show the audit log of created, edited, completed, deleted and restored
tasks, newest first.

Examples:
  smarttask activity
  smarttask activity -n 10`,
	Args: cobra.NoArgs,
	RunE: runActivity,
}

func init() {
	activityCmd.Flags().IntVarP(&activityFlagLimit, "limit", "n", app.DefaultActivityLimit, "Number of entries")
	rootCmd.AddCommand(activityCmd)
}

func runActivity(cmd *cobra.Command, args []string) error {
	entries, err := ctx.App.RecentActivity(activityFlagLimit)
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintActivity(entries)
	}
	ctx.CLIFormatter().PrintActivity(entries)
	return nil
}
