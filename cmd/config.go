package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/config"
	"github.com/manav03panchal/smarttask/internal/storage"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Manage application configuration",
	Long: `View and modify settings in the config file. SMARTTASK_* environment
variables override the file at run time but are never written back.

Keys:
  storage.backend          badger or sqlite
  storage.path             database location, or :memory:
  undo.max_depth           undo history length, 0 for unbounded
  notify.due_soon_days     days ahead that count as due soon
  notify.refresh_interval  dashboard refresh, e.g. 30s or 5m
  export.delimiter         CSV delimiter, e.g. ';' ',' or tab
  export.bom               write a UTF-8 BOM in CSV exports
  log.level                debug, info, warn or error

Examples:
  smarttask config show
  smarttask config get undo.max_depth
  smarttask config set storage.backend sqlite
  smarttask config path`,
	Annotations: map[string]string{skipRuntime: ""},
	Args:        cobra.NoArgs,
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show the effective configuration",
	Annotations: map[string]string{skipRuntime: ""},
	Args:        cobra.NoArgs,
	RunE:        runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:               "get KEY",
	Short:             "Get a configuration value",
	Annotations:       map[string]string{skipRuntime: ""},
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:               "set KEY VALUE",
	Short:             "Set a configuration value in the config file",
	Annotations:       map[string]string{skipRuntime: ""},
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Annotations: map[string]string{skipRuntime: ""},
	Args:        cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(configPath())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagFormat == "json" {
		values := make(map[string]string, len(config.Keys()))
		for _, key := range config.Keys() {
			values[key], _ = cfg.Get(key)
		}
		return printJSON(cmd, values)
	}

	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	cmd.Printf("# %s\n", configPath())
	cmd.Print(string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	value, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	if flagFormat == "json" {
		return printJSON(cmd, map[string]string{"key": args[0], "value": value})
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}

	path := configPath()
	if flagConfig == "" {
		if err := storage.EnsureDirectory(config.Dir()); err != nil {
			return err
		}
	}
	if err := storage.SafeWrite(path, data, 0o644); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	if flagFormat == "json" {
		return printJSON(cmd, map[string]string{"status": "updated", "key": key, "value": stored, "path": path})
	}
	cmd.Printf("✓ %s = %s\n", key, stored)
	return nil
}
