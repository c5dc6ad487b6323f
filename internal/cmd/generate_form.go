package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/cmdutil"
	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/scaffold"
	"github.com/bundlegen/cli/internal/schema"
)

var (
	genFormSchema   string
	genFormVariants []string
	genFormBundle   cmdutil.BundleFlags
	genFormPlan     cmdutil.PlanFlags
)

// NewGenerateFormCmd creates the generate form command.
func NewGenerateFormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form <Bundle:Entity>",
		Short: "Generate form types for an entity",
		Long: `Generate a form type class from an entity schema.

Without --variant a single <Entity>Type class is generated. Each --variant
generates a Form<Variant> class in the entity's form namespace instead.

Examples:
  bundlegen generate form AcmeBlogBundle:Blog/Post --schema post.yaml
  bundlegen generate form AcmeBlogBundle:Blog/Post --schema post.yaml --variant new --variant edit`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerateForm,
	}

	cmd.Flags().StringVar(&genFormSchema, "schema", "", "Entity schema file (.yaml, .yml, .json or .cue)")
	cmd.Flags().StringArrayVar(&genFormVariants, "variant", nil, "Form variant to generate, e.g. new (repeatable)")
	genFormBundle.AddTo(cmd)
	genFormPlan.AddTo(cmd)
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runGenerateForm(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	outFormat, err := genFormPlan.Format()
	if err != nil {
		return err
	}

	bundle, entityName, err := parseEntityShortcut(args[0])
	if err != nil {
		return err
	}

	fs := cmdutil.TargetFs(afero.NewOsFs(), genFormPlan.DryRun)
	module, err := resolveModule(fs, cfg, bundle, genFormBundle)
	if err != nil {
		return err
	}

	loader, err := schema.NewLoader(fs)
	if err != nil {
		return err
	}
	entity, err := loader.Load(genFormSchema, entityName)
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	output.BundleLogger(module.Name()).Info("generating form",
		"entity", entity.Path(),
		"variants", len(genFormVariants),
		"dry-run", genFormPlan.DryRun)

	res, genErr := scaffold.NewFormGenerator(engine, fs).Generate(scaffold.FormRequest{
		Module:   module,
		Entity:   entity,
		Variants: genFormVariants,
	})

	plan := newPlan(module.Dir(), nil, genFormPlan.DryRun)
	if res != nil {
		plan.Result = res.Result
		plan.FormClass = res.ClassName
	}
	return finish(cmd, outFormat, plan, genErr)
}
