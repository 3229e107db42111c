// SmartTask - A command-line task manager
//
// Copyright (c) Manav Panchal.
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.

package main

import (
	"os"

	"github.com/manav03panchal/smarttask/cmd"
	"github.com/manav03panchal/smarttask/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}
