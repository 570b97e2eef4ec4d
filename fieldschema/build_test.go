package fieldschema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/fieldschema"
)

func marshalToMap(t *testing.T, v any) map[string]any {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any

	require.NoError(t, json.Unmarshal(b, &m))

	return m
}

func TestBuildScalarFields(t *testing.T) {
	fields := []fieldschema.Field{
		{Name: "title", Type: fieldschema.TypeString, Required: true},
		{Name: "count", Type: fieldschema.TypeInteger},
		{Name: "active", Type: fieldschema.TypeBoolean},
	}

	schema := fieldschema.Build(fields)
	m := marshalToMap(t, schema)

	assert.Equal(t, "object", m["type"])
	assert.Equal(t, []any{"title"}, m["required"])

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", props["title"].(map[string]any)["type"])
	assert.Equal(t, "integer", props["count"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["active"].(map[string]any)["type"])
}

func TestBuildEnumField(t *testing.T) {
	fields := []fieldschema.Field{
		{Name: "status", Type: fieldschema.TypeEnum, Enum: []string{"draft", "final"}},
	}

	m := marshalToMap(t, fieldschema.Build(fields))

	props := m["properties"].(map[string]any)
	status := props["status"].(map[string]any)
	assert.Equal(t, "string", status["type"])
	assert.ElementsMatch(t, []any{"draft", "final"}, status["enum"])
}

func TestBuildMarkdownAndDateCarryUIWidget(t *testing.T) {
	fields := []fieldschema.Field{
		{Name: "body", Type: fieldschema.TypeMarkdown},
		{Name: "due", Type: fieldschema.TypeDate},
	}

	m := marshalToMap(t, fieldschema.Build(fields))
	props := m["properties"].(map[string]any)

	body := props["body"].(map[string]any)
	assert.Equal(t, "string", body["type"])
	assert.Equal(t, "text/markdown", body["contentMediaType"])
	assert.Equal(t, "markdown", body["x-ui"].(map[string]any)["widget"])

	due := props["due"].(map[string]any)
	assert.Equal(t, "string", due["type"])
	assert.Equal(t, "date", due["x-ui"].(map[string]any)["widget"])
}

func TestBuildArrayField(t *testing.T) {
	fields := []fieldschema.Field{
		{
			Name: "tags",
			Type: fieldschema.TypeArray,
			Items: &fieldschema.Field{
				Type: fieldschema.TypeString,
			},
		},
	}

	m := marshalToMap(t, fieldschema.Build(fields))
	props := m["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)

	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, "string", tags["items"].(map[string]any)["type"])
}

func TestBuildNestedObjectField(t *testing.T) {
	fields := []fieldschema.Field{
		{
			Name: "meta",
			Type: fieldschema.TypeObject,
			Properties: []fieldschema.Field{
				{Name: "version", Type: fieldschema.TypeString, Required: true},
			},
		},
	}

	m := marshalToMap(t, fieldschema.Build(fields))
	props := m["properties"].(map[string]any)
	meta := props["meta"].(map[string]any)

	assert.Equal(t, "object", meta["type"])
	assert.Equal(t, []any{"version"}, meta["required"])
}

func TestBuildAdditionalPropertiesPermissive(t *testing.T) {
	m := marshalToMap(t, fieldschema.Build([]fieldschema.Field{{Name: "x", Type: fieldschema.TypeString}}))
	assert.Equal(t, true, m["additionalProperties"])
}

func TestExtractDefaultsNestedDotJoined(t *testing.T) {
	fields := []fieldschema.Field{
		{Name: "title", Type: fieldschema.TypeString, Default: "Untitled"},
		{
			Name: "meta",
			Type: fieldschema.TypeObject,
			Properties: []fieldschema.Field{
				{Name: "version", Type: fieldschema.TypeString, Default: "1.0"},
			},
		},
	}

	defaults := fieldschema.ExtractDefaults(fields)
	assert.Equal(t, "Untitled", defaults["title"])
	assert.Equal(t, "1.0", defaults["meta.version"])
}

func TestStripUIRemovesHintsRecursively(t *testing.T) {
	fields := []fieldschema.Field{
		{
			Name: "tags",
			Type: fieldschema.TypeArray,
			UI:   map[string]any{"widget": "tag-list"},
			Items: &fieldschema.Field{
				Type: fieldschema.TypeString,
				UI:   map[string]any{"placeholder": "tag"},
			},
		},
	}

	stripped := fieldschema.StripUI(fields)
	assert.Nil(t, stripped[0].UI)
	assert.Nil(t, stripped[0].Items.UI)
}

func TestBuildCardDelegatesToBuild(t *testing.T) {
	card := fieldschema.CardSchema{
		Name: "items",
		Fields: []fieldschema.Field{
			{Name: "name", Type: fieldschema.TypeString, Required: true},
		},
	}

	m := marshalToMap(t, fieldschema.BuildCard(card))
	assert.Equal(t, "object", m["type"])
	assert.Equal(t, []any{"name"}, m["required"])
}
