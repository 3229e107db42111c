package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/manav03panchal/smarttask/internal/errors"
)

// inShell is set while the shell runs commands against its own context.
var inShell bool

// stdin is shared by the shell and confirmation prompts so neither
// buffers input meant for the other.
var stdin = bufio.NewReader(os.Stdin)

// shellCmd runs commands in one session so undo can revert them.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run commands in one session with undo",
	Long: `Read commands line by line and run them against one open store. The
undo history is kept for the whole session, so 'undo' reverts the last delete
or complete. Global flags given to 'shell' apply to every line.

Examples:
  smarttask shell
  smarttask> add "Buy milk"
  smarttask> done 1
  smarttask> undo
  smarttask> exit

  printf 'delete 3\nundo\n' | smarttask shell`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		ctx.CLIFormatter().Muted("Type 'help' for commands, 'exit' to leave.")
	}

	inShell = true
	defer func() { inShell = false }()

	for {
		if interactive {
			fmt.Fprint(os.Stderr, "smarttask> ")
		}
		line, err := stdin.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			if runShellLine(line) {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// runShellLine runs one line and reports whether the shell should exit.
func runShellLine(line string) bool {
	words, err := splitWords(line)
	if err != nil {
		printError(err)
		return false
	}

	switch words[0] {
	case "exit", "quit":
		return true
	case "shell":
		printError(errors.NewUserError("Already in a shell", ""))
		return false
	}

	resetFlags(rootCmd)
	rootCmd.SetArgs(words)
	if err := rootCmd.Execute(); err != nil {
		printError(err)
	}
	return false
}

// resetFlags puts every subcommand flag back to its default so values do
// not leak from one line to the next. Global flags are left alone.
func resetFlags(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			if rootCmd.PersistentFlags().Lookup(f.Name) == f {
				return
			}
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(nil)
			} else {
				f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
		resetFlags(c)
	}
}

// splitWords splits a command line on spaces, honouring single quotes,
// double quotes and backslash escapes.
func splitWords(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errors.NewUserError("Unterminated quote or escape", "Close the quote and try again.")
	}
	if inWord {
		words = append(words, cur.String())
	}
	if len(words) == 0 {
		return nil, errors.NewUserError("Empty command", "")
	}
	return words, nil
}
