package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bundlegen/cli/internal/cmdutil"
	"github.com/bundlegen/cli/internal/config"
	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/scaffold"
	"github.com/bundlegen/cli/internal/schema"
)

var (
	genCrudSchema      string
	genCrudRoutePrefix string
	genCrudWithWrite   bool
	genCrudOverwrite   bool
	genCrudOffice      string
	genCrudFormat      string
	genCrudBundle      cmdutil.BundleFlags
	genCrudPlan        cmdutil.PlanFlags
)

// NewGenerateCrudCmd creates the generate crud command.
func NewGenerateCrudCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crud <Bundle:Entity>",
		Short: "Generate a CRUD controller, views, routing and a functional test",
		Long: `Generate a CRUD surface for an entity described by a schema file.

The bundle is located with --namespace and --module-dir, or through the
modules registry of the config file. The entity schema may be YAML, JSON or
CUE.

Offices:
  default   artifacts directly under the entity path
  backend   artifacts under a Backend segment
  frontend  artifacts under a Frontend segment

Examples:
  # Read-only index and show actions
  bundlegen generate crud AcmeBlogBundle:Blog/Post --schema post.yaml

  # All actions for the backend office
  bundlegen generate crud AcmeBlogBundle:Blog/Post --schema post.yaml --with-write --office backend

  # Unregistered bundle
  bundlegen generate crud AcmeBlogBundle:Post --schema post.cue \
    --namespace 'Acme\BlogBundle' --module-dir src/Acme/BlogBundle`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerateCrud,
	}

	cmd.Flags().StringVar(&genCrudSchema, "schema", "", "Entity schema file (.yaml, .yml, .json or .cue)")
	cmd.Flags().StringVar(&genCrudRoutePrefix, "route-prefix", "", "Route prefix (env: BUNDLEGEN_ROUTE_PREFIX, defaults to the entity path)")
	cmd.Flags().BoolVar(&genCrudWithWrite, "with-write", false, "Generate the new, edit and delete actions")
	cmd.Flags().BoolVar(&genCrudOverwrite, "overwrite", false, "Replace an existing controller")
	cmd.Flags().StringVar(&genCrudOffice, "office", "",
		fmt.Sprintf("Office: %s (env: BUNDLEGEN_OFFICE)", strings.Join(scaffold.ValidOffices(), ", ")))
	cmd.Flags().StringVar(&genCrudFormat, "format", "", "Routing format: yml, xml, php or annotation (env: BUNDLEGEN_FORMAT)")
	genCrudBundle.AddTo(cmd)
	genCrudPlan.AddTo(cmd)
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runGenerateCrud(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}
	outFormat, err := genCrudPlan.Format()
	if err != nil {
		return err
	}

	bundle, entityName, err := parseEntityShortcut(args[0])
	if err != nil {
		return err
	}

	// office fails fast, before any file is read
	officeValue := config.Resolve(config.ResolveOptions{
		Key:         "office",
		FlagValue:   genCrudOffice,
		EnvVar:      config.EnvOffice,
		ConfigValue: cfg.Office,
		Default:     config.DefaultOffice,
	})
	config.LogResolvedValues(officeValue)
	office, err := scaffold.ParseOffice(officeValue.Value)
	if err != nil {
		return err
	}

	format, err := resolveFormat(genCrudFormat, cfg)
	if err != nil {
		return err
	}

	fs := cmdutil.TargetFs(afero.NewOsFs(), genCrudPlan.DryRun)
	module, err := resolveModule(fs, cfg, bundle, genCrudBundle)
	if err != nil {
		return err
	}

	loader, err := schema.NewLoader(fs)
	if err != nil {
		return err
	}
	entity, err := loader.Load(genCrudSchema, entityName)
	if err != nil {
		return err
	}

	prefix := config.Resolve(config.ResolveOptions{
		Key:         "routePrefix",
		FlagValue:   genCrudRoutePrefix,
		EnvVar:      config.EnvRoutePrefix,
		ConfigValue: cfg.RoutePrefix,
		Default:     defaultRoutePrefix(entity.Name),
	})
	config.LogResolvedValues(prefix)

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	output.BundleLogger(module.Name()).Info("generating crud",
		"entity", entity.Path(),
		"office", office,
		"format", format,
		"dry-run", genCrudPlan.DryRun)

	res, genErr := scaffold.NewCrudGenerator(engine, fs).Generate(scaffold.CrudRequest{
		Module:      module,
		Entity:      entity,
		Format:      format,
		RoutePrefix: normalizeRoutePrefix(prefix.Value),
		WithWrite:   genCrudWithWrite,
		Overwrite:   genCrudOverwrite,
		Office:      office,
	})
	return finish(cmd, outFormat, newPlan(module.Dir(), res, genCrudPlan.DryRun), genErr)
}
