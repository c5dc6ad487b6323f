package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/cmdutil"
	"github.com/bundlegen/cli/internal/naming"
	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/scaffold"
)

var (
	genBundleNamespace string
	genBundleName      string
	genBundleDir       string
	genBundleFormat    string
	genBundleStructure bool
	genBundleWeb       bool
	genBundlePlan      cmdutil.PlanFlags
)

// NewGenerateBundleCmd creates the generate bundle command.
func NewGenerateBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Generate a bundle skeleton",
		Long: `Generate a bundle skeleton: the bundle class, its dependency injection
extension and configuration, a default controller, a template and a test.

The bundle is written below --dir, in the directory matching its namespace.

Examples:
  # Create Acme\BlogBundle in src/Acme/BlogBundle with YAML configuration
  bundlegen generate bundle --namespace 'Acme\BlogBundle' --dir src

  # Separate Backend and Frontend controllers, annotation routing
  bundlegen generate bundle --namespace Acme/BlogBundle --dir src --web --format annotation

  # Preview the files as YAML
  bundlegen generate bundle --namespace Acme/BlogBundle --dir src --dry-run -o yaml`,
		Args: cobra.NoArgs,
		RunE: runGenerateBundle,
	}

	cmd.Flags().StringVar(&genBundleNamespace, "namespace", "", `Bundle namespace, e.g. Acme\BlogBundle`)
	cmd.Flags().StringVar(&genBundleName, "bundle-name", "", "Bundle name (defaults to the namespace without separators)")
	cmd.Flags().StringVar(&genBundleDir, "dir", "src", "Directory the bundle namespace is created in")
	cmd.Flags().StringVar(&genBundleFormat, "format", "", "Configuration format: yml, xml, php or annotation (env: BUNDLEGEN_FORMAT)")
	cmd.Flags().BoolVar(&genBundleStructure, "structure", false, "Also create translations, documentation and public asset directories")
	cmd.Flags().BoolVar(&genBundleWeb, "web", false, "Generate Backend and Frontend controllers instead of a default one")
	genBundlePlan.AddTo(cmd)
	_ = cmd.MarkFlagRequired("namespace")

	return cmd
}

func runGenerateBundle(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	outFormat, err := genBundlePlan.Format()
	if err != nil {
		return err
	}

	namespace, err := validateBundleNamespace(genBundleNamespace)
	if err != nil {
		return err
	}
	name := genBundleName
	if name == "" {
		name = defaultBundleName(namespace)
	}
	if _, err := validateBundleName(name); err != nil {
		return err
	}

	format, err := resolveFormat(genBundleFormat, cfg)
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	root := filepath.Join(genBundleDir, filepath.FromSlash(naming.SlashPath(namespace)))
	output.BundleLogger(name).Info("generating bundle", "dir", root, "format", format, "dry-run", genBundlePlan.DryRun)

	fs := cmdutil.TargetFs(afero.NewOsFs(), genBundlePlan.DryRun)
	res, genErr := scaffold.NewModuleGenerator(engine, fs).Generate(scaffold.ModuleRequest{
		Namespace: namespace,
		Bundle:    name,
		Dir:       genBundleDir,
		Format:    format,
		Structure: genBundleStructure,
		Web:       genBundleWeb,
	})
	if genErr == nil && !genBundlePlan.DryRun && outFormat == output.FormatText {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s in %s\n\n", output.StyleNoun.Render(name), output.StyleNoun.Render(root))
	}
	return finish(cmd, outFormat, newPlan(root, res, genBundlePlan.DryRun), genErr)
}
