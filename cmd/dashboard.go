package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive dashboard",
	Long: `Open an interactive terminal dashboard over your tasks.

The dashboard shows the task list and a banner with overdue and upcoming
tasks, refreshed every notify.refresh_interval. Deletions and completions
can be undone for as long as the dashboard stays open.

Keyboard Controls:
  j/k, arrows  Move
  c            Complete the selected task
  d            Delete the selected task
  ctrl+z, u    Undo the last delete or complete
  r            Refresh
  q            Quit`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.DashboardConfig{
		Controller:      ctx.App,
		RefreshInterval: ctx.Config.Notify.RefreshInterval.Duration,
		DueSoonDays:     ctx.Config.Notify.DueSoonDays,
	})
}
