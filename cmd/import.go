package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/export"
)

var importFlagDryRun bool

// importCmd merges a JSON backup.
var importCmd = &cobra.Command{
	Use:     "import FILE",
	Aliases: []string{"restore"},
	Short:   "Import tasks from a JSON backup",
	Long: `Import a backup written by 'smarttask export --type json'. Categories and
tags are matched by name; tasks get new ids. Tasks already present (same
title and creation time) are skipped.

Examples:
  smarttask import backup.json
  smarttask import backup.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFlagDryRun, "dry-run", false, "Preview import without making changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return errors.NewUserErrorWithField("file", args[0], "Cannot open backup file", err.Error())
	}
	defer f.Close()

	backup, err := export.ReadJSON(f)
	if err != nil {
		return errors.NewUserErrorWithField("file", args[0], "Not a SmartTask backup",
			"Create one with 'smarttask export --type json'.").WithCause(err)
	}

	res, err := ctx.App.ImportBackup(backup, importFlagDryRun)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(res)
	}
	cli := ctx.CLIFormatter()
	verb := "Imported"
	if res.DryRun {
		verb = "Would import"
	}
	cli.Success(fmt.Sprintf("%s %d task(s), %d categor(ies), %d tag(s)", verb, res.Tasks, res.Categories, res.Tags))
	if res.Skipped > 0 {
		cli.Muted(fmt.Sprintf("Skipped %d task(s) already present", res.Skipped))
	}
	return nil
}
