package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/cmdutil"
	"github.com/bundlegen/cli/internal/config"
	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/scaffold"
	"github.com/bundlegen/cli/internal/templates"
)

// NewGenerateCmd creates the generate command group.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate bundles, CRUD surfaces and form types",
		Long: `Generate source files from the built-in templates.

Every generator stops at the first file that already exists. Files written
before the failure stay on disk. Use --dry-run to preview the files a command
would write.`,
	}

	cmd.AddCommand(NewGenerateBundleCmd())
	cmd.AddCommand(NewGenerateCrudCmd())
	cmd.AddCommand(NewGenerateFormCmd())

	return cmd
}

// newEngine builds the template engine, layering the resolved templates
// directory over the built-in set.
func newEngine(cfg *config.Config) (*templates.Engine, error) {
	resolved := config.Resolve(config.ResolveOptions{
		Key:         "templatesDir",
		FlagValue:   templatesDirFlag,
		EnvVar:      config.EnvTemplatesDir,
		ConfigValue: cfg.TemplatesDir,
	})
	config.LogResolvedValues(resolved)

	dir := resolved.Value
	if dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("expanding templates directory: %w", err)
		}
		dir = expanded
	}

	fsys, err := templates.Source(dir)
	if err != nil {
		return nil, oerrors.NewConfigurationError(err.Error(), "templatesDir",
			"Point --templates-dir at an existing directory.")
	}
	return templates.NewEngine(fsys), nil
}

// resolveFormat applies flag > env > config > default to the configuration
// format and validates the result.
func resolveFormat(flag string, cfg *config.Config) (scaffold.ConfigFormat, error) {
	resolved := config.Resolve(config.ResolveOptions{
		Key:         "format",
		FlagValue:   flag,
		EnvVar:      config.EnvFormat,
		ConfigValue: cfg.Format,
		Default:     config.DefaultFormat,
	})
	config.LogResolvedValues(resolved)
	return validateFormat(resolved.Value)
}

// resolveModule locates bundle from flags first, then the modules registry.
func resolveModule(fs afero.Fs, cfg *config.Config, bundle string, flags cmdutil.BundleFlags) (scaffold.Module, error) {
	namespace, dir := flags.Namespace, flags.ModuleDir
	if registered, ok := cfg.Module(bundle); ok {
		if namespace == "" {
			namespace = registered.Namespace
		}
		if dir == "" {
			dir = registered.Dir
		}
	}

	if namespace == "" || dir == "" {
		return scaffold.Module{}, oerrors.NewNotFoundError(
			fmt.Sprintf("Bundle %q is not registered.", bundle),
			bundle,
			"Pass --namespace and --module-dir, or add the bundle under modules in the config file.",
		)
	}

	namespace, err := validateBundleNamespace(namespace)
	if err != nil {
		return scaffold.Module{}, err
	}

	dir, err = config.ExpandPath(dir)
	if err != nil {
		return scaffold.Module{}, fmt.Errorf("expanding bundle directory: %w", err)
	}
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return scaffold.Module{}, fmt.Errorf("checking bundle directory: %w", err)
	}
	if !exists {
		return scaffold.Module{}, oerrors.NewNotFoundError(
			fmt.Sprintf("The bundle directory %s does not exist.", dir),
			dir,
			"Generate the bundle first with `bundlegen generate bundle`.",
		)
	}

	output.Debug("resolved bundle", "bundle", bundle, "namespace", namespace, "dir", dir)
	return scaffold.NewModule(namespace, bundle, dir)
}

// finish reports a generation outcome. On failure the files written before
// the error are listed so the partial state is visible.
func finish(cmd *cobra.Command, format output.OutputFormat, plan cmdutil.Plan, genErr error) error {
	if genErr != nil {
		if len(plan.Files()) > 0 && format == output.FormatText {
			_ = cmdutil.PrintResult(cmd.OutOrStdout(), format, plan)
		}
		output.Error("generation failed", "error", genErr)
		return exitError(genErr, true)
	}
	return cmdutil.PrintResult(cmd.OutOrStdout(), format, plan)
}

// newPlan wraps a possibly nil result.
func newPlan(root string, res *scaffold.Result, dryRun bool) cmdutil.Plan {
	plan := cmdutil.Plan{DryRun: dryRun, Root: root}
	if res != nil {
		plan.Result = *res
	}
	return plan
}
