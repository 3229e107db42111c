package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/export"
	"github.com/manav03panchal/smarttask/internal/storage"
	"github.com/manav03panchal/smarttask/internal/validate"
)

// Export command flags.
var (
	exportFlagType      string
	exportFlagOutput    string
	exportFlagDelimiter string
	exportFlagNoBOM     bool
)

// exportCmd writes tasks to CSV or a JSON backup.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "dump"},
	Short:   "Export tasks to CSV or a JSON backup",
	Long: `Export every task. CSV is meant for spreadsheets: it uses the configured
delimiter (';' by default) and starts with a UTF-8 byte order mark unless
disabled. The JSON backup also carries categories and tags and can be read
back with 'smarttask import'.

Examples:
  smarttask export -o tasks.csv
  smarttask export -o ~/Documents/   # smarttask_backup_20250610_093000.csv
  smarttask export --delimiter , --no-bom
  smarttask export --type json -o backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagType, "type", "t", "csv", "Export type: csv, json")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file or directory (stdout if omitted)")
	exportCmd.Flags().StringVar(&exportFlagDelimiter, "delimiter", "", "CSV delimiter (default from config)")
	exportCmd.Flags().BoolVar(&exportFlagNoBOM, "no-bom", false, "Omit the UTF-8 byte order mark")

	exportCmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(
		[]string{"csv", "json"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := ctx.App.ExportData()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	rows := len(data.Tasks)
	kind := strings.ToLower(exportFlagType)
	switch kind {
	case "csv":
		opts, err := csvOptions()
		if err != nil {
			return err
		}
		if rows, err = export.WriteCSV(&buf, data, opts); err != nil {
			return err
		}
	case "json":
		if err := export.WriteJSON(&buf, data, ctx.App.Today()); err != nil {
			return err
		}
	default:
		return errors.NewUserErrorWithField("type", exportFlagType, "Unknown export type", "Use csv or json.")
	}

	if exportFlagOutput == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}

	path := exportPath(exportFlagOutput, kind, time.Now())
	if err := storage.EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	if err := storage.SafeWrite(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{
			"status": "exported",
			"path":   path,
			"tasks":  rows,
		})
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Exported %d task(s) to %s", rows, path))
	return nil
}

// exportPath resolves -o. A directory, or a path ending in a separator,
// gets a timestamped file name inside it.
func exportPath(output, kind string, now time.Time) string {
	isDir := strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator))
	if !isDir {
		if info, err := os.Stat(output); err == nil && info.IsDir() {
			isDir = true
		}
	}
	if !isDir {
		return output
	}
	name := validate.SafeFilename(fmt.Sprintf("smarttask_backup_%s.%s", now.Format("20060102_150405"), kind))
	return filepath.Join(output, name)
}

func csvOptions() (export.CSVOptions, error) {
	delim := ctx.Config.Export.Delimiter
	if exportFlagDelimiter != "" {
		delim = exportFlagDelimiter
	}
	r, err := export.ParseDelimiter(delim)
	if err != nil {
		return export.CSVOptions{}, errors.NewUserErrorWithField("delimiter", delim, "Invalid CSV delimiter",
			"Use a single character such as ';', ',' or 'tab'.")
	}
	return export.CSVOptions{
		Delimiter: r,
		BOM:       ctx.Config.Export.BOM && !exportFlagNoBOM,
	}, nil
}
