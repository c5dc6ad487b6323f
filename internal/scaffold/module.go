package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/naming"
	"github.com/bundlegen/cli/internal/output"
)

// ModuleRequest describes a new bundle skeleton.
type ModuleRequest struct {
	// Namespace is the bundle namespace, e.g. `Acme\BlogBundle`.
	Namespace string

	// Bundle is the bundle name, e.g. "AcmeBlogBundle".
	Bundle string

	// Dir is the destination directory; the namespace path is appended to it.
	Dir string

	// Format selects the service and routing configuration flavour.
	Format ConfigFormat

	// Structure adds translations, documentation and public asset directories.
	Structure bool

	// Web generates separate Backend and Frontend controllers.
	Web bool
}

// ModuleGenerator generates bundle skeletons.
type ModuleGenerator struct {
	r renderer
}

// NewModuleGenerator creates a ModuleGenerator writing through fs.
func NewModuleGenerator(engine Engine, fs afero.Fs) *ModuleGenerator {
	return &ModuleGenerator{r: newRenderer(engine, fs)}
}

// Generate emits the bundle skeleton described by req.
func (g *ModuleGenerator) Generate(req ModuleRequest) (*Result, error) {
	module, err := NewModule(req.Namespace, req.Bundle, filepath.Join(req.Dir, filepath.FromSlash(naming.SlashPath(req.Namespace))))
	if err != nil {
		return nil, err
	}
	format := ParseFormat(string(req.Format))

	if err := g.checkTargetDir(module.Dir()); err != nil {
		return nil, err
	}

	params := map[string]any{
		"namespace":       module.Namespace(),
		"bundle":          module.Name(),
		"format":          string(format),
		"bundle_basename": module.BaseName(),
		"extension_alias": module.ConfigAlias(),
		"controllers":     []string{"Default"},
	}
	if req.Web {
		params["controllers"] = []string{"Backend", "Frontend"}
	}

	output.Debug("generating bundle",
		"namespace", module.Namespace(),
		"bundle", module.Name(),
		"format", format,
		"target", module.Dir())

	res := &Result{}
	dir := module.Dir()
	config := filepath.Join(dir, "Resources", "config")

	if format == FormatXML || format == FormatAnnotation {
		err = g.r.renderFile(res, "bundle/services.xml.twig", filepath.Join(config, "services.xml"), params)
	} else {
		err = g.r.renderFile(res, "bundle/services."+string(format)+".twig", filepath.Join(config, "services."+string(format)), params)
	}
	if err != nil {
		return res, err
	}

	if format != FormatAnnotation {
		if err := g.r.renderFile(res, "bundle/routing."+string(format)+".twig", filepath.Join(config, "routing."+string(format)), params); err != nil {
			return res, err
		}
	}

	if req.Structure {
		if err := g.r.renderFile(res, "bundle/messages.fr.xlf", filepath.Join(dir, "Resources", "translations", "messages.fr.xlf"), params); err != nil {
			return res, err
		}
		if err := g.r.mkdir(res, filepath.Join(dir, "Resources", "doc")); err != nil {
			return res, err
		}
		if err := g.r.touch(res, filepath.Join(dir, "Resources", "doc", "index.rst")); err != nil {
			return res, err
		}
		if err := g.r.mkdir(res, filepath.Join(dir, "Resources", "translations")); err != nil {
			return res, err
		}
	}

	if err := g.r.renderFile(res, "bundle/Bundle.php.twig", filepath.Join(dir, module.Name()+".php"), params); err != nil {
		return res, err
	}
	if err := g.r.renderFile(res, "bundle/Extension.php.twig", filepath.Join(dir, "DependencyInjection", module.BaseName()+"Extension.php"), params); err != nil {
		return res, err
	}
	if err := g.r.renderFile(res, "bundle/Configuration.php.twig", filepath.Join(dir, "DependencyInjection", "Configuration.php"), params); err != nil {
		return res, err
	}

	if req.Web {
		for _, office := range []string{"Backend", "Frontend"} {
			if err := g.renderController(res, module, params, office); err != nil {
				return res, err
			}
		}
		if req.Structure {
			for _, area := range []string{"backend", "frontend", "global"} {
				if err := g.assetDirs(res, filepath.Join(dir, "Resources", "public", area)); err != nil {
					return res, err
				}
			}
		}
	} else {
		if err := g.renderController(res, module, params, ""); err != nil {
			return res, err
		}
		if req.Structure {
			if err := g.assetDirs(res, filepath.Join(dir, "Resources", "public")); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

// renderController emits one controller and its functional test. An empty
// office produces the single DefaultController.
func (g *ModuleGenerator) renderController(res *Result, module Module, params map[string]any, office string) error {
	dir := module.Dir()
	namespace := module.Namespace() + `\Controller`
	controller := "Default"
	controllerDir := filepath.Join(dir, "Controller")
	testDir := filepath.Join(dir, "Tests", "Controller")
	if office != "" {
		namespace += `\` + office
		controller = office
		controllerDir = filepath.Join(controllerDir, office)
		testDir = filepath.Join(testDir, office)
	}

	p := copyParams(params, map[string]any{
		"namespace":        namespace,
		"bundle_namespace": module.Namespace(),
		"controller":       controller,
		"office":           office,
	})

	if err := g.r.renderFile(res, "bundle/DefaultController.php.twig", filepath.Join(controllerDir, controller+"Controller.php"), p); err != nil {
		return err
	}
	return g.r.renderFile(res, "bundle/DefaultControllerTest.php.twig", filepath.Join(testDir, controller+"ControllerTest.php"), p)
}

// assetDirs creates the css, images and js directories under base.
func (g *ModuleGenerator) assetDirs(res *Result, base string) error {
	for _, name := range []string{"css", "images", "js"} {
		if err := g.r.mkdir(res, filepath.Join(base, name)); err != nil {
			return err
		}
	}
	return nil
}

// checkTargetDir accepts a missing directory or an empty writable one.
func (g *ModuleGenerator) checkTargetDir(dir string) error {
	if !g.r.exists(dir) {
		return nil
	}

	isDir, err := afero.IsDir(g.r.fs, dir)
	if err != nil {
		return fmt.Errorf("checking target directory: %w", err)
	}
	if !isDir {
		return oerrors.NewConflictError(
			fmt.Sprintf("Unable to generate the bundle as the target directory %q exists but is a file.", dir),
			dir,
			"Choose a different destination directory.",
		)
	}

	empty, err := afero.IsEmpty(g.r.fs, dir)
	if err != nil {
		return fmt.Errorf("reading target directory: %w", err)
	}
	if !empty {
		return oerrors.NewConflictError(
			fmt.Sprintf("Unable to generate the bundle as the target directory %q is not empty.", dir),
			dir,
			"Choose a different destination directory or remove the existing one.",
		)
	}

	writable, err := g.r.isWritable(dir)
	if err != nil {
		return fmt.Errorf("checking target directory: %w", err)
	}
	if !writable {
		return oerrors.NewPermissionError(
			fmt.Sprintf("Unable to generate the bundle as the target directory %q is not writable.", dir),
			dir,
			"Fix the directory permissions.",
		)
	}

	return nil
}
