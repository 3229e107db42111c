package cmd

import (
	"github.com/spf13/cobra"
)

// statsCmd prints task statistics.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"statistics", "summary"},
	Short:   "Show task statistics",
	Args:    cobra.NoArgs,
	RunE:    runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	stats, err := ctx.App.Stats(ctx.App.Today())
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStats(stats)
	}
	ctx.CLIFormatter().PrintStats(stats)
	return nil
}
