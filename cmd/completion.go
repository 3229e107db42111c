package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd writes a completion script; task ids, categories and tags
// complete dynamically from the store.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for smarttask.

To load completions:

Bash:
  $ source <(smarttask completion bash)

Zsh:
  $ smarttask completion zsh > "${fpath[1]}/_smarttask"

Fish:
  $ smarttask completion fish > ~/.config/fish/completions/smarttask.fish

PowerShell:
  PS> smarttask completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Annotations:           map[string]string{skipRuntime: ""},
	RunE:                  runCompletion,
}

func runCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	root := cmd.Root()
	switch args[0] {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	default:
		return root.GenPowerShellCompletionWithDesc(out)
	}
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
