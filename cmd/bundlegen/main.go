// Package main is the entry point for the bundlegen CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bundlegen/cli/internal/cmd"
	oerrors "github.com/bundlegen/cli/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			// the command layer may already have reported it
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
