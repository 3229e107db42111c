package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/config"
	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/runtime"
	"github.com/manav03panchal/smarttask/internal/storage"
)

// dbCmd groups database maintenance commands.
var dbCmd = &cobra.Command{
	Use:     "db",
	Aliases: []string{"database"},
	Short:   "Database maintenance",
	Long: `Check, back up and recover the task database.

Examples:
  smarttask db check
  smarttask db backup
  smarttask db recover --force`,
}

var dbCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database for corrupted records",
	Args:  cobra.NoArgs,
	RunE:  runDBCheck,
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the database into the backups folder",
	Args:  cobra.NoArgs,
	RunE:  runDBBackup,
}

var dbRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Back up and compact a damaged Badger database",
	Long: `Back up the Badger database directory, then reopen it keeping only the
latest value of every key and garbage collect the value log. Only applies to
the badger backend.`,
	Annotations: map[string]string{skipRuntime: ""},
	Args:        cobra.NoArgs,
	RunE:        runDBRecover,
}

func init() {
	addForceFlag(dbRecoverCmd)
	dbCmd.AddCommand(dbCheckCmd, dbBackupCmd, dbRecoverCmd)
	rootCmd.AddCommand(dbCmd)
}

// dbCheckResult is the backend-neutral outcome of an integrity check.
type dbCheckResult struct {
	Backend string   `json:"backend"`
	Path    string   `json:"path,omitempty"`
	Healthy bool     `json:"healthy"`
	Scanned int      `json:"keys_scanned,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func runDBCheck(cmd *cobra.Command, args []string) error {
	res := dbCheckResult{Backend: ctx.Backend, Path: ctx.StorePath}

	switch {
	case ctx.DB != nil:
		status := storage.CheckDatabaseIntegrity(ctx.DB)
		res.Healthy = status.Healthy
		res.Scanned = status.KeysScanned
		res.Errors = status.Errors
	case ctx.SQLite != nil:
		problems, err := ctx.SQLite.CheckIntegrity()
		if err != nil {
			return err
		}
		res.Healthy = len(problems) == 0
		res.Errors = problems
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(res)
	}
	cli := ctx.CLIFormatter()
	if res.Healthy {
		cli.Success(fmt.Sprintf("Database is healthy (%s)", res.Backend))
		return nil
	}
	cli.Error(fmt.Sprintf("Database has %d problem(s)", len(res.Errors)))
	for _, e := range res.Errors {
		cli.Muted("  " + e)
	}
	if res.Backend == storage.BackendBadger {
		cli.Muted("Run 'smarttask db recover' to attempt a repair.")
	}
	return nil
}

func runDBBackup(cmd *cobra.Command, args []string) error {
	if ctx.StorePath == "" {
		return errors.NewUserError("Nothing to back up", "The store is in memory.")
	}

	var (
		path string
		err  error
	)
	switch {
	case ctx.DB != nil:
		path, err = storage.CreateBackup(ctx.StorePath)
	case ctx.SQLite != nil:
		path, err = ctx.SQLite.Backup()
	}
	if err != nil {
		return errors.NewSystemErrorWithOp("backup", "Backup failed", err)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "backed_up", "path": path})
	}
	ctx.CLIFormatter().Success("Backup written to " + path)
	return nil
}

func runDBRecover(cmd *cobra.Command, args []string) error {
	if inShell {
		return errors.NewUserError("Cannot recover while the database is open",
			"Leave the shell and run 'smarttask db recover'.")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	backend, path := cfg.Storage.Backend, cfg.Storage.Path
	if flagBackend != "" {
		backend = flagBackend
	}
	if flagDB != "" {
		path = flagDB
	}
	if backend != storage.BackendBadger {
		return errors.NewUserErrorWithField("backend", backend, "Recovery only applies to the badger backend",
			"Use 'smarttask db backup' and SQLite's own tools for sqlite stores.")
	}
	switch path {
	case "":
		path = storage.DefaultPath()
	case runtime.MemoryPath:
		return errors.NewUserError("Nothing to recover", "The store is in memory.")
	}

	if !confirm(fmt.Sprintf("Recover the database at %s?", path)) {
		cmd.Println("Cancelled")
		return nil
	}

	backup, err := storage.AttemptRecovery(path)
	if err != nil {
		return err
	}

	out := map[string]string{"status": "recovered", "path": path, "backup": backup}
	if flagFormat == "json" {
		return printJSON(cmd, out)
	}
	cmd.Printf("✓ Recovered %s\n", path)
	if backup != "" {
		cmd.Printf("  backup: %s\n", backup)
	}
	return nil
}
