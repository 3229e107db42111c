package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/output"
)

// flagForce skips confirmation prompts on destructive commands.
var flagForce bool

// parseTaskID parses a positive task id argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewUserErrorWithField("id", arg, "Invalid task id",
			"Task ids are positive numbers; see 'smarttask list'.")
	}
	return id, nil
}

// confirm asks a yes/no question when stdin is a terminal. Without a
// terminal, or with --force, it proceeds.
func confirm(prompt string) bool {
	if flagForce || !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	answer, err := stdin.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// addForceFlag registers --force on a destructive command.
func addForceFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagForce, "force", false, "Skip confirmation")
}

// printJSON writes v as JSON for commands that run without a runtime context.
func printJSON(cmd *cobra.Command, v any) error {
	f := output.NewFormatter()
	f.Writer = cmd.OutOrStdout()
	return f.JSON(v)
}
