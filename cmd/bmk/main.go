// Package main is the entry point for the bmk CLI.
package main

import (
	"errors"
	"os"

	"github.com/open-cli-collective/blockmark/internal/cmd/cmdutil"
	"github.com/open-cli-collective/blockmark/internal/cmd/root"
	"github.com/open-cli-collective/blockmark/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := root.NewCmdRoot()

	if err := cmd.Execute(); err != nil {
		// ErrSilent means the command already reported its failure.
		if !errors.Is(err, cmdutil.ErrSilent) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return 1
	}

	return 0
}
