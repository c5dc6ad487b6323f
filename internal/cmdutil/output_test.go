package cmdutil

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bundlegen/cli/internal/output"
	"github.com/bundlegen/cli/internal/scaffold"
)

func samplePlan(dryRun bool) Plan {
	return Plan{
		DryRun: dryRun,
		Root:   "/src/Acme/BlogBundle",
		Result: scaffold.Result{
			Targets: []scaffold.Target{
				{TemplateID: "bundle/Bundle.php.twig", Path: "/src/Acme/BlogBundle/AcmeBlogBundle.php"},
				{TemplateID: "crud/controller.php.twig", Path: "/src/Acme/BlogBundle/Controller/PostController.php", Overwritten: true},
			},
			Touched: []string{"/src/Acme/BlogBundle/Resources/doc/index.rst"},
		},
	}
}

func TestTargetFs(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/existing.txt", []byte("keep"), 0o644))

	t.Run("dry run leaves base untouched", func(t *testing.T) {
		fs := TargetFs(base, true)
		require.NoError(t, afero.WriteFile(fs, "/new.txt", []byte("x"), 0o644))
		require.NoError(t, afero.WriteFile(fs, "/existing.txt", []byte("changed"), 0o644))

		exists, err := afero.Exists(base, "/new.txt")
		require.NoError(t, err)
		assert.False(t, exists)

		content, err := afero.ReadFile(base, "/existing.txt")
		require.NoError(t, err)
		assert.Equal(t, "keep", string(content))

		content, err = afero.ReadFile(fs, "/existing.txt")
		require.NoError(t, err)
		assert.Equal(t, "changed", string(content))
	})

	t.Run("real run writes through", func(t *testing.T) {
		assert.Same(t, base, TargetFs(base, false))
	})
}

func TestPrintResultText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, output.FormatText, samplePlan(false)))

	out := buf.String()
	assert.Contains(t, out, "/src/Acme/BlogBundle/")
	assert.Contains(t, out, "AcmeBlogBundle.php")
	assert.Contains(t, out, output.StatusCreated)
	assert.Contains(t, out, output.StatusOverwritten)
	assert.Contains(t, out, output.StatusTouched)
	assert.Contains(t, out, "3 files generated")
}

func TestPrintResultDryRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, output.FormatText, samplePlan(true)))

	out := buf.String()
	assert.Contains(t, out, output.StatusPlanned)
	assert.NotContains(t, out, output.StatusCreated)
	assert.Contains(t, out, "3 files planned (dry run)")
}

func TestPrintResultEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, output.FormatText, Plan{Root: "/src"}))
	assert.Empty(t, buf.String())
}

func TestPrintResultYAML(t *testing.T) {
	plan := samplePlan(true)
	plan.FormClass = "PostType"

	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, output.FormatYAML, plan))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, true, got["dryRun"])
	assert.Equal(t, "/src/Acme/BlogBundle", got["root"])
	assert.Equal(t, "PostType", got["formClass"])

	targets, ok := got["targets"].([]any)
	require.True(t, ok)
	require.Len(t, targets, 2)
	second := targets[1].(map[string]any)
	assert.Equal(t, "crud/controller.php.twig", second["template"])
	assert.Equal(t, true, second["overwritten"])
	assert.NotContains(t, second, "params")
}
