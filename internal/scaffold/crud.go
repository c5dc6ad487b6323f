package scaffold

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/output"
)

// Action is a generated CRUD action.
type Action string

const (
	ActionIndex  Action = "index"
	ActionShow   Action = "show"
	ActionNew    Action = "new"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// indexExcludedFields never appear as index view columns.
var indexExcludedFields = []string{"token", "slug"}

// CrudRequest describes the CRUD surface to generate for one entity.
type CrudRequest struct {
	Module      Module
	Entity      Entity
	Format      ConfigFormat
	RoutePrefix string

	// WithWrite adds the new, edit and delete actions.
	WithWrite bool

	// Overwrite replaces an existing controller. Other artifacts are never replaced.
	Overwrite bool

	// Office is parsed case-insensitively; empty means default.
	Office Office
}

// CrudGenerator generates a controller, views, routing and a functional test
// for a Doctrine-style entity.
type CrudGenerator struct {
	r renderer
}

// NewCrudGenerator creates a CrudGenerator writing through fs.
func NewCrudGenerator(engine Engine, fs afero.Fs) *CrudGenerator {
	return &CrudGenerator{r: newRenderer(engine, fs)}
}

// crudPlan holds the names derived once per Generate call.
type crudPlan struct {
	module          Module
	entity          Entity
	format          ConfigFormat
	office          Office
	actions         []Action
	routePrefix     string
	routeNamePrefix string
	template        string
	viewDir         string
}

// Actions returns the ordered action set.
func Actions(withWrite bool) []Action {
	if withWrite {
		return []Action{ActionIndex, ActionShow, ActionNew, ActionEdit, ActionDelete}
	}
	return []Action{ActionIndex, ActionShow}
}

// RouteNamePrefix derives the route name prefix for an entity, e.g.
// "acmeblog_backend_blog/post".
func RouteNamePrefix(module Module, office Office, entity Entity) string {
	parts := []string{module.BaseName()}
	if seg := office.Segment(); seg != "" {
		parts = append(parts, seg)
	}
	parts = append(parts, entity.Path())
	return strings.ToLower(strings.Join(parts, "_"))
}

// RecordActions returns the per-row actions (show, edit) present in actions.
func RecordActions(actions []Action) []Action {
	var out []Action
	for _, a := range actions {
		if a == ActionShow || a == ActionEdit {
			out = append(out, a)
		}
	}
	return out
}

// IndexFields returns the entity fields shown as index columns: every field
// except the identifier, token and slug.
func IndexFields(entity Entity) []Field {
	var out []Field
	for _, f := range entity.Fields {
		if slices.Contains(entity.Identifier, f.Name) || slices.Contains(indexExcludedFields, f.Name) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Generate emits the CRUD surface described by req.
func (g *CrudGenerator) Generate(req CrudRequest) (*Result, error) {
	if err := req.Entity.requireSingleIdentifier("CRUD"); err != nil {
		return nil, err
	}
	office, err := ParseOffice(string(req.Office))
	if err != nil {
		return nil, err
	}

	p := g.plan(req, office)

	output.Debug("generating crud",
		"bundle", p.module.Name(),
		"entity", p.entity.Path(),
		"office", office,
		"format", p.format,
		"actions", len(p.actions))

	res := &Result{}

	if !g.r.exists(p.viewDir) {
		if err := g.r.mkdir(res, p.viewDir); err != nil {
			return res, err
		}
	}

	if err := g.generateController(res, p, req.Overwrite); err != nil {
		return res, err
	}

	if p.office.hasViews() {
		if err := g.generateViews(res, p); err != nil {
			return res, err
		}
	}

	if err := g.generateTestClass(res, p); err != nil {
		return res, err
	}

	if err := g.generateRouting(res, p); err != nil {
		return res, err
	}

	return res, nil
}

func (g *CrudGenerator) plan(req CrudRequest, office Office) crudPlan {
	p := crudPlan{
		module:      req.Module,
		entity:      req.Entity,
		format:      ParseFormat(string(req.Format)),
		office:      office,
		actions:     Actions(req.WithWrite),
		routePrefix: req.RoutePrefix,
	}
	p.routeNamePrefix = RouteNamePrefix(p.module, office, p.entity)

	viewDir := filepath.Join(p.module.Dir(), "Resources", "views")
	if seg := office.Segment(); seg != "" {
		p.template = p.module.Name() + ":" + seg + "/" + p.entity.Path()
		viewDir = filepath.Join(viewDir, seg)
	} else {
		p.template = p.module.Name() + ":" + p.entity.Path()
	}
	p.viewDir = filepath.Join(viewDir, filepath.FromSlash(p.entity.Path()))
	return p
}

// params returns the mapping every CRUD render starts from.
func (p crudPlan) params() map[string]any {
	return map[string]any{
		"actions":           p.actions,
		"route_prefix":      p.routePrefix,
		"route_name_prefix": p.routeNamePrefix,
		"bundle":            p.module.Name(),
		"namespace":         p.module.Namespace(),
		"entity":            p.entity.QualifiedName(),
		"entity_path":       p.entity.Path(),
		"entity_class":      p.entity.Class(),
		"entity_namespace":  strings.Join(p.entity.NamespaceParts(), `\`),
		"format":            string(p.format),
		"template":          p.template,
		"office":            p.office.Segment(),
	}
}

func (g *CrudGenerator) generateController(res *Result, p crudPlan, overwrite bool) error {
	entity := p.entity.QualifiedName()
	controllerNamespace := p.module.Namespace() + `\Controller`
	target := filepath.Join(p.module.Dir(), "Controller")
	if seg := p.office.Segment(); seg != "" {
		controllerNamespace += `\` + seg
		target = filepath.Join(target, seg)
	}
	target = filepath.Join(target, filepath.FromSlash(p.entity.Path())+"Controller.php")

	if ns := p.entity.NamespaceParts(); len(ns) > 0 {
		controllerNamespace += `\` + strings.Join(ns, `\`)
	}

	if !overwrite && g.r.exists(target) {
		return oerrors.NewConflictError(
			"Unable to generate the controller as it already exists.",
			target,
			"Pass --overwrite to replace the existing controller.",
		)
	}

	params := copyParams(p.params(), map[string]any{
		"entity_fqcn":          p.module.Namespace() + `\Entity\` + entity,
		"form_namespace":       p.module.Namespace() + `\Form\` + entity + `\Form`,
		"controller_namespace": controllerNamespace,
		"identifier":           p.entity.Identifier[0],
	})
	return g.r.writeFile(res, "crud/controller.php.twig", target, params)
}

func (g *CrudGenerator) generateViews(res *Result, p crudPlan) error {
	identifier := p.entity.Identifier[0]

	if err := g.r.renderFile(res, p.viewTemplate("index"), filepath.Join(p.viewDir, "index.html.twig"),
		copyParams(p.params(), map[string]any{
			"identifier":     identifier,
			"fields":         IndexFields(p.entity),
			"record_actions": RecordActions(p.actions),
		})); err != nil {
		return err
	}

	if slices.Contains(p.actions, ActionShow) {
		if err := g.r.renderFile(res, p.viewTemplate("show"), filepath.Join(p.viewDir, "show.html.twig"),
			copyParams(p.params(), map[string]any{
				"identifier": identifier,
				"fields":     p.entity.Fields,
			})); err != nil {
			return err
		}
	}

	if slices.Contains(p.actions, ActionNew) {
		if err := g.r.renderFile(res, p.viewTemplate("new"), filepath.Join(p.viewDir, "new.html.twig"), p.params()); err != nil {
			return err
		}
	}

	if slices.Contains(p.actions, ActionEdit) {
		if err := g.r.renderFile(res, p.viewTemplate("edit"), filepath.Join(p.viewDir, "edit.html.twig"),
			copyParams(p.params(), map[string]any{
				"identifier": identifier,
				"fields":     p.entity.Fields,
			})); err != nil {
			return err
		}
	}

	return nil
}

// viewTemplate returns the template identifier of a view, namespaced by office.
func (p crudPlan) viewTemplate(view string) string {
	if seg := p.office.Segment(); seg != "" {
		return "crud/views/" + seg + "/" + view + ".html.twig.twig"
	}
	return "crud/views/" + view + ".html.twig.twig"
}

func (g *CrudGenerator) generateTestClass(res *Result, p crudPlan) error {
	parts := p.entity.NamespaceParts()
	class := p.entity.Class()

	target := filepath.Join(append(append([]string{p.module.Dir(), "Tests", "Controller"}, parts...), class+"ControllerTest.php")...)

	formTypeName := strings.ReplaceAll(p.module.Namespace(), `\`, "_")
	if len(parts) > 0 {
		formTypeName += "_" + strings.Join(parts, "_")
	}
	formTypeName = strings.ToLower(formTypeName + "_" + class)

	return g.r.renderFile(res, "crud/tests/test.php.twig", target, copyParams(p.params(), map[string]any{
		"form_type_name": formTypeName,
	}))
}

func (g *CrudGenerator) generateRouting(res *Result, p crudPlan) error {
	if !p.format.hasRoutingFile() {
		return nil
	}

	target := filepath.Join(p.module.Dir(), "Resources", "config", "routing")
	if seg := p.office.Segment(); seg != "" {
		target = filepath.Join(target, seg)
	}
	name := strings.ToLower(strings.ReplaceAll(p.entity.Path(), "/", "_"))
	target = filepath.Join(target, name+"."+string(p.format))

	return g.r.renderFile(res, "crud/config/routing."+string(p.format)+".twig", target, p.params())
}
