// Package cmdutil provides shared command utilities for generate subcommands.
// It centralizes flag groups, the dry-run filesystem and plan output.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/output"
)

// PlanFlags holds flags common to every generate subcommand.
type PlanFlags struct {
	DryRun bool
	Output string
}

// AddTo registers the plan flags on the given cobra command.
func (f *PlanFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false,
		"Show the files that would be written without touching the disk")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))
}

// Format validates and returns the requested output format.
func (f *PlanFlags) Format() (output.OutputFormat, error) {
	value := strings.ToLower(f.Output)
	if value != "" && value != "yml" && !output.OutputFormat(value).IsValid() {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("Output format %q is not supported.", f.Output),
			"output",
			fmt.Sprintf("Valid formats: %s", strings.Join(output.ValidFormats(), ", ")),
		)
	}
	return output.ParseOutputFormat(value), nil
}

// BundleFlags locate a bundle that is not registered in the config file
// (crud, form).
type BundleFlags struct {
	Namespace string
	ModuleDir string
}

// AddTo registers the bundle location flags on the given cobra command.
func (f *BundleFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Namespace, "namespace", "",
		"Bundle namespace when the bundle is not registered")
	cmd.Flags().StringVar(&f.ModuleDir, "module-dir", "",
		"Bundle root directory when the bundle is not registered")
}
