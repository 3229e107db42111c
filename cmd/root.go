// Package cmd provides the CLI commands for SmartTask.
//
// Copyright (c) Manav Panchal.
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/output"
	"github.com/manav03panchal/smarttask/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagConfig  string
	flagDB      string
	flagBackend string
)

// skipRuntime marks commands that run without opening the store.
const skipRuntime = "skip-runtime"

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "smarttask",
	Short: "A task manager for the terminal",
	Long: `SmartTask keeps a local list of tasks with due dates, priorities,
categories and tags. Deletions and completions made in the dashboard can be
undone with ctrl+z.

Examples:
  smarttask add "Buy milk" --due tomorrow --priority high
  smarttask list --status pending
  smarttask done 3
  smarttask voice "remind me to call mom next friday urgent"
  smarttask dashboard`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		if _, ok := cmd.Annotations[skipRuntime]; ok {
			return nil
		}
		if inShell {
			ctx.BeginCommand(cmd.CommandPath(), true)
			return nil
		}

		opts, err := runtimeOptions()
		if err != nil {
			return err
		}

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.BeginCommand(cmd.CommandPath(), false)
		logging.DebugContext(ctx.Ctx, "command started")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if inShell {
			return nil
		}
		return closeRuntime()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show what needs attention today.
		return runCheck(cmd, args)
	},
}

func runtimeOptions() (runtime.Options, error) {
	opts := runtime.DefaultOptions()

	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return opts, errors.NewUserErrorWithField("format", flagFormat, "Unknown output format", "Use cli, json or plain.")
	}
	colorMode, err := output.ParseColorMode(flagColor)
	if err != nil {
		return opts, errors.NewUserErrorWithField("color", flagColor, "Unknown color mode", "Use auto, always or never.")
	}

	opts.Format = format
	opts.ColorMode = colorMode
	opts.Debug = flagDebug
	opts.ConfigPath = flagConfig
	opts.DBPath = flagDB
	opts.Backend = flagBackend
	return opts, nil
}

func closeRuntime() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	closeRuntime()
	return err
}

func printError(err error) {
	if flagFormat == string(output.FormatJSON) {
		f := output.NewFormatter()
		f.Writer = os.Stderr
		output.NewJSONFormatter(f).PrintError(err.Error(), errors.GetSuggestion(err))
		return
	}
	if flagDebug {
		os.Stderr.WriteString(errors.FormatDebugError(err))
		return
	}
	os.Stderr.WriteString("Error: " + errors.FormatUserError(err) + "\n")
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFormat, "format", "f", "cli", "Output format: cli, json, plain")
	pf.StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug output")
	pf.StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/smarttask/config.toml)")
	pf.StringVar(&flagDB, "db", "", "Database path, or :memory: for a throwaway store")
	pf.StringVar(&flagBackend, "backend", "", "Storage backend: badger, sqlite")

	rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"cli", "json", "plain"}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{"badger", "sqlite"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipRuntime: ""},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("smarttask %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}
