package scaffold

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/naming"
	"github.com/bundlegen/cli/internal/output"
)

// formExcludedFields are audit and derived columns hidden from generated
// forms when the identifier is generated by the store.
var formExcludedFields = []string{"token", "createdAt", "updatedAt", "created_at", "updated_at", "slug"}

// FormRequest describes the form types to generate for one entity.
type FormRequest struct {
	Module Module
	Entity Entity

	// Variants names one form per action, e.g. "new" and "edit". When empty
	// a single default form type is generated.
	Variants []string
}

// FormResult reports the generated files and the last generated form class.
type FormResult struct {
	Result

	// ClassName is the class of the last generated form.
	ClassName string

	// ClassPath is the file of the last generated form.
	ClassPath string
}

// FormGenerator generates form type classes from entity metadata.
type FormGenerator struct {
	r renderer
}

// NewFormGenerator creates a FormGenerator writing through fs.
func NewFormGenerator(engine Engine, fs afero.Fs) *FormGenerator {
	return &FormGenerator{r: newRenderer(engine, fs)}
}

// FormFields returns the editable fields of entity: column names, minus the
// identifier and audit columns when the identifier is generated, followed by
// every association that is not one-to-many.
func FormFields(entity Entity) []string {
	fields := entity.FieldNames()

	if !entity.IdentifierNatural {
		fields = slices.DeleteFunc(fields, func(name string) bool {
			return slices.Contains(entity.Identifier, name) || slices.Contains(formExcludedFields, name)
		})
	}

	for _, assoc := range entity.Associations {
		if assoc.Kind != OneToMany {
			fields = append(fields, assoc.Name)
		}
	}

	return fields
}

// Generate emits the form types described by req.
func (g *FormGenerator) Generate(req FormRequest) (*FormResult, error) {
	if err := req.Entity.requireSingleIdentifier("form"); err != nil {
		return nil, err
	}

	output.Debug("generating forms",
		"bundle", req.Module.Name(),
		"entity", req.Entity.Path(),
		"variants", len(req.Variants))

	res := &FormResult{}
	if len(req.Variants) == 0 {
		return res, g.generateDefault(res, req)
	}

	for _, variant := range req.Variants {
		if err := g.generateVariant(res, req, variant); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (g *FormGenerator) generateVariant(res *FormResult, req FormRequest, variant string) error {
	module, entity := req.Module, req.Entity

	className := "Form" + naming.Capitalize(variant)
	classPath := filepath.Join(module.Dir(), "Form", filepath.FromSlash(entity.Path()), className+".php")
	res.ClassName, res.ClassPath = className, classPath

	if g.r.exists(classPath) {
		return conflictForm(className, classPath)
	}

	formName := strings.ReplaceAll(module.Name(), ModuleSuffix, "_bundle") + "_" +
		strings.ReplaceAll(entity.Path(), "/", "_") + "_form_" + variant

	return g.r.writeFile(&res.Result, "form/FormType.php.twig", classPath, map[string]any{
		"fields":           FormFields(entity),
		"bundle_namespace": module.Namespace(),
		"namespace":        module.Namespace() + `\Form\` + entity.QualifiedName(),
		"entity_namespace": strings.Join(entity.NamespaceParts(), `\`),
		"entity_class":     entity.Class(),
		"bundle":           module.Name(),
		"form_class":       className,
		"submit_label":     variant,
		"form_type_name":   strings.ToLower(formName),
	})
}

func (g *FormGenerator) generateDefault(res *FormResult, req FormRequest) error {
	module, entity := req.Module, req.Entity
	parts := entity.NamespaceParts()

	className := entity.Class() + "Type"
	classPath := filepath.Join(module.Dir(), "Form", filepath.FromSlash(entity.Path())+"Type.php")
	res.ClassName, res.ClassPath = className, classPath

	if g.r.exists(classPath) {
		return conflictForm(className, classPath)
	}

	namespace := module.Namespace() + `\Form`
	formName := strings.ReplaceAll(module.Namespace(), `\`, "_")
	if len(parts) > 0 {
		namespace += `\` + strings.Join(parts, `\`)
		formName += "_" + strings.Join(parts, "_")
	}
	// strip the 4-character "Type" suffix to recover the base name
	formName += "_" + className[:len(className)-4]

	return g.r.writeFile(&res.Result, "form/FormType.php.twig", classPath, map[string]any{
		"fields":           FormFields(entity),
		"bundle_namespace": module.Namespace(),
		"namespace":        namespace,
		"entity_namespace": strings.Join(parts, `\`),
		"entity_class":     entity.Class(),
		"bundle":           module.Name(),
		"form_class":       className,
		"submit_label":     "",
		"form_type_name":   strings.ToLower(formName),
	})
}

func conflictForm(className, classPath string) error {
	return oerrors.NewConflictError(
		fmt.Sprintf("Unable to generate the %s form class as it already exists under the %s file.", className, classPath),
		classPath,
		"Remove the existing form class or choose another variant.",
	)
}
