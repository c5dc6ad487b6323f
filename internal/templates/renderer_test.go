package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/bundlegen/cli/internal/errors"
)

type action string

func crudParams(actions ...string) map[string]any {
	return map[string]any{
		"actions":           actions,
		"route_prefix":      "/blog_post",
		"route_name_prefix": "acmeblog_blog/post",
		"bundle":            "AcmeBlogBundle",
		"namespace":         `Acme\BlogBundle`,
		"entity":            `Blog\Post`,
		"entity_path":       "Blog/Post",
		"entity_class":      "Post",
		"entity_namespace":  "Blog",
		"format":            "yml",
		"template":          "AcmeBlogBundle:Blog/Post",
		"office":            "",
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := NewEngine(nil).Render("crud/missing.twig", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestRenderRoutingYAML(t *testing.T) {
	e := NewEngine(nil)

	tests := []struct {
		name    string
		actions []string
		routes  int
	}{
		{"read only", []string{"index", "show"}, 2},
		{"with write", []string{"index", "show", "new", "edit", "delete"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Render("crud/config/routing.yml.twig", crudParams(tt.actions...))
			require.NoError(t, err)
			assert.Equal(t, tt.routes, strings.Count(out, "path:"))
			assert.Contains(t, out, "acmeblog_blog/post_index:")
			assert.Contains(t, out, "path:     /blog_post/\n")
			assert.Contains(t, out, `_controller: 'AcmeBlogBundle:Blog\Post:index'`)
		})
	}
}

func TestRenderRoutingOfficeSegment(t *testing.T) {
	params := crudParams("index", "show")
	params["office"] = "Backend"
	params["route_name_prefix"] = "acmeblog_backend_blog/post"

	out, err := NewEngine(nil).Render("crud/config/routing.xml.twig", params)
	require.NoError(t, err)
	assert.Contains(t, out, `<route id="acmeblog_backend_blog/post_show" path="/blog_post/{id}/show">`)
	assert.Contains(t, out, `AcmeBlogBundle:Backend\Blog\Post:show`)
}

func TestRenderController(t *testing.T) {
	e := NewEngine(nil)
	withExtra := func(p map[string]any) map[string]any {
		p["entity_fqcn"] = `Acme\BlogBundle\Entity\Blog\Post`
		p["form_namespace"] = `Acme\BlogBundle\Form\Blog\Post\Form`
		p["controller_namespace"] = `Acme\BlogBundle\Controller\Blog`
		p["identifier"] = "id"
		return p
	}

	t.Run("read only", func(t *testing.T) {
		out, err := e.Render("crud/controller.php.twig", withExtra(crudParams("index", "show")))
		require.NoError(t, err)
		assert.Contains(t, out, `namespace Acme\BlogBundle\Controller\Blog;`)
		assert.Contains(t, out, "class PostController extends Controller")
		assert.Contains(t, out, "public function indexAction()")
		assert.Contains(t, out, "public function showAction($id)")
		assert.NotContains(t, out, "newAction")
		assert.NotContains(t, out, "deleteAction")
		assert.NotContains(t, out, "@Route")
	})

	t.Run("annotation with write", func(t *testing.T) {
		p := withExtra(crudParams("index", "show", "new", "edit", "delete"))
		p["format"] = "annotation"

		out, err := e.Render("crud/controller.php.twig", p)
		require.NoError(t, err)
		assert.Contains(t, out, `@Route("/blog_post")`)
		assert.Contains(t, out, `name="acmeblog_blog/post_delete"`)
		assert.Contains(t, out, `use Acme\BlogBundle\Form\Blog\Post\FormNew;`)
		assert.Contains(t, out, `use Acme\BlogBundle\Form\Blog\Post\FormEdit;`)
		assert.Contains(t, out, "array('id' => $entity->getId())")
	})

	t.Run("natural identifier getter", func(t *testing.T) {
		p := withExtra(crudParams("index", "show", "new", "edit", "delete"))
		p["identifier"] = "code"

		out, err := e.Render("crud/controller.php.twig", p)
		require.NoError(t, err)
		assert.Contains(t, out, "array('id' => $entity->getCode())")
		assert.NotContains(t, out, "getId()")
	})
}

func TestRenderIndexView(t *testing.T) {
	type field struct{ Name, Type string }

	p := crudParams("index", "show", "new", "edit", "delete")
	p["identifier"] = "id"
	p["fields"] = []field{{"title", "string"}, {"createdAt", "datetime"}}
	p["record_actions"] = []action{"show", "edit"}

	out, err := NewEngine(nil).Render("crud/views/index.html.twig.twig", p)
	require.NoError(t, err)
	assert.Contains(t, out, "{% extends '::base.html.twig' %}")
	assert.Contains(t, out, "<th>Title</th>")
	assert.Contains(t, out, "{{ entity.createdAt|date('Y-m-d H:i:s') }}")
	assert.Contains(t, out, "path('acmeblog_blog/post_edit', { 'id': entity.id })")
	assert.Contains(t, out, "Create a new entry")
}

func TestRenderFormType(t *testing.T) {
	out, err := NewEngine(nil).Render("form/FormType.php.twig", map[string]any{
		"fields":           []string{"title", "author"},
		"bundle_namespace": `Acme\BlogBundle`,
		"namespace":        `Acme\BlogBundle\Form\Blog`,
		"entity_namespace": "Blog",
		"entity_class":     "Post",
		"bundle":           "AcmeBlogBundle",
		"form_class":       "PostType",
		"submit_label":     "",
		"form_type_name":   "acme_blogbundle_blog_post",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "class PostType extends AbstractType")
	assert.Contains(t, out, "->add('title')")
	assert.Contains(t, out, "->add('author')")
	assert.NotContains(t, out, "'submit'")
	assert.Contains(t, out, `'data_class' => 'Acme\BlogBundle\Entity\Blog\Post'`)
	assert.Contains(t, out, "return 'acme_blogbundle_blog_post';")
}

func TestHas(t *testing.T) {
	assert.True(t, has([]action{"index", "new"}, "new"))
	assert.False(t, has([]action{"index"}, "new"))
	assert.True(t, has([]string{"a"}, "a"))
	assert.False(t, has(nil, "a"))
	assert.False(t, has("new", "new"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "index, show", join([]action{"index", "show"}, ", "))
	assert.Equal(t, "", join([]string{}, ","))
	assert.Equal(t, "solo", join("solo", ","))
}

func TestActionPath(t *testing.T) {
	tests := []struct {
		prefix string
		action string
		want   string
	}{
		{"/blog_post", "index", "/blog_post/"},
		{"blog_post/", "new", "/blog_post/new"},
		{"/blog_post", "show", "/blog_post/{id}/show"},
		{"/blog_post", "edit", "/blog_post/{id}/edit"},
		{"", "index", "/"},
		{"", "delete", "/{id}/delete"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"_"+tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, actionPath(tt.prefix, tt.action))
		})
	}
}
