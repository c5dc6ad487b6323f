package scaffold

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type renderCall struct {
	id     string
	params map[string]any
}

// recordingEngine renders every template to its identifier and remembers the calls.
type recordingEngine struct {
	calls []renderCall
}

func (e *recordingEngine) Render(id string, params map[string]any) (string, error) {
	e.calls = append(e.calls, renderCall{id: id, params: params})
	return id, nil
}

// params returns the parameters of the first render of id.
func (e *recordingEngine) params(t *testing.T, id string) map[string]any {
	t.Helper()
	for _, c := range e.calls {
		if c.id == id {
			return c.params
		}
	}
	require.Failf(t, "template not rendered", "%s", id)
	return nil
}

func testModule(t *testing.T) Module {
	t.Helper()
	m, err := NewModule(`Acme\BlogBundle`, "AcmeBlogBundle", "/src/Acme/BlogBundle")
	require.NoError(t, err)
	return m
}

func postEntity() Entity {
	return Entity{
		Name:       `Blog\Post`,
		Identifier: []string{"id"},
		Fields: []Field{
			{Name: "id", Type: "integer"},
			{Name: "title", Type: "string"},
			{Name: "slug", Type: "string"},
			{Name: "createdAt", Type: "datetime"},
		},
	}
}

func targetPaths(res *Result) []string {
	paths := make([]string, 0, len(res.Targets))
	for _, t := range res.Targets {
		paths = append(paths, t.Path)
	}
	return paths
}
