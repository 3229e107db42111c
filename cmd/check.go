package cmd

import (
	"github.com/spf13/cobra"
)

var checkFlagDays int

// checkCmd prints the due-date digest.
var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"due", "remind"},
	Short:   "Show overdue and upcoming tasks",
	Long: `Mark pending tasks past their due date as overdue, then list what is
overdue, due today and due within the next few days. Always exits 0 so it can
run from a shell profile.

Examples:
  smarttask check
  smarttask check --days 7`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkFlagDays, "days", -1, "Due-soon window in days (default from config)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	days := ctx.Config.Notify.DueSoonDays
	if checkFlagDays >= 0 {
		days = checkFlagDays
	}

	digest, marked, err := ctx.App.Check(days)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		names, err := ctx.Names()
		if err != nil {
			return err
		}
		return ctx.JSONFormatter().PrintDigest(digest, marked, names)
	}
	ctx.CLIFormatter().PrintDigest(digest, ctx.App.Today())
	return nil
}
