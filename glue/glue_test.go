package glue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/glue"
)

func TestComposeSubstitutesFields(t *testing.T) {
	g, err := glue.New(glue.Filters{})
	require.NoError(t, err)

	out, err := g.Compose("greeting", "Title: {{ title }}\n{{ body }}", map[string]any{
		"title": "Hello",
		"body":  "# Hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Title: Hello\n# Hi", out)
}

func TestComposeIsDeterministic(t *testing.T) {
	g, err := glue.New(glue.Filters{})
	require.NoError(t, err)

	fields := map[string]any{"title": "Hello"}

	first, err := g.Compose("t", "{{ title }}", fields)
	require.NoError(t, err)

	second, err := g.Compose("t", "{{ title }}", fields)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStringFilterDelegatesToBackendFunction(t *testing.T) {
	var captured string

	g, err := glue.New(glue.Filters{
		String: func(s string) string {
			captured = s

			return `"` + s + `"`
		},
	})
	require.NoError(t, err)

	out, err := g.Compose("t", `{{ title|String }}`, map[string]any{"title": `a"b`})
	require.NoError(t, err)
	assert.Equal(t, `"a"b"`, out)
	assert.Equal(t, `a"b`, captured)
}

func TestMarkdownFilterPassesThroughUntouched(t *testing.T) {
	g, err := glue.New(glue.Filters{})
	require.NoError(t, err)

	out, err := g.Compose("t", `{{ body|Markdown }}`, map[string]any{"body": "<b>raw</b>"})
	require.NoError(t, err)
	assert.Equal(t, "<b>raw</b>", out)
}

func TestComposeReportsTemplateFailedWithLocation(t *testing.T) {
	g, err := glue.New(glue.Filters{})
	require.NoError(t, err)

	_, err = g.Compose("broken", "{% if %}", nil)
	require.Error(t, err)

	var d diagnostic.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diagnostic.CodeTemplateFailed, d.Code)
	require.NotNil(t, d.Primary)
	assert.Equal(t, "broken", d.Primary.File)
}
