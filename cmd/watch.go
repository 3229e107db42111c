package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/scheduler"
)

var (
	watchFlagSchedule string
	watchFlagDays     int
)

// watchCmd keeps checking due dates until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep checking due dates and print changes",
	Long: `Run the due-date check on a schedule and print the digest each time it
changes. Runs in the foreground until interrupted.

The schedule defaults to every notify.refresh_interval and accepts any cron
expression or descriptor.

Examples:
  smarttask watch
  smarttask watch --schedule "@every 5m"
  smarttask watch --schedule "0 9 * * 1-5"`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchFlagSchedule, "schedule", "", "Cron expression or descriptor (default every notify.refresh_interval)")
	watchCmd.Flags().IntVar(&watchFlagDays, "days", -1, "Due-soon window in days (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	schedule := watchFlagSchedule
	if schedule == "" {
		schedule = scheduler.ScheduleFor(ctx.Config.Notify.RefreshInterval.Duration)
	}
	days := ctx.Config.Notify.DueSoonDays
	if watchFlagDays >= 0 {
		days = watchFlagDays
	}

	sched, err := scheduler.New(ctx.App, scheduler.Options{
		Schedule:    schedule,
		DueSoonDays: days,
		Notify:      printReport,
		Logger:      ctx.Logger(),
	})
	if err != nil {
		return err
	}

	if !ctx.IsJSON() {
		ctx.CLIFormatter().Muted("Watching due dates (" + schedule + "), ctrl+c to stop")
	}
	if _, _, err := sched.RunOnce(); err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched.Start()
	<-sigCtx.Done()
	sched.Stop()
	return nil
}

func printReport(r scheduler.Report) {
	if ctx.IsJSON() {
		names, err := ctx.Names()
		if err != nil {
			ctx.Logger().Warn("failed to load names", logging.KeyError, err)
			return
		}
		if err := ctx.JSONFormatter().PrintDigest(r.Digest, r.Marked, names); err != nil {
			ctx.Logger().Warn("failed to print digest", logging.KeyError, err)
		}
		return
	}
	ctx.CLIFormatter().Muted(r.At.Format("15:04:05"))
	ctx.CLIFormatter().PrintDigest(r.Digest, ctx.App.Today())
}
