package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/fieldschema"
	"github.com/quillmark-go/quillmark/normalize"
	"github.com/quillmark-go/quillmark/parse"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	doc := parse.NewDocument()
	doc.Set("title", parse.NewValue("Hello"))

	root := []fieldschema.Field{
		{Name: "title", Type: fieldschema.TypeString, Required: true},
		{Name: "author", Type: fieldschema.TypeString, Default: "Anonymous"},
		{Name: "status", Type: fieldschema.TypeString, Default: "draft"},
	}

	out, _, err := normalize.Normalize(doc, root, nil)
	require.NoError(t, err)

	author, ok := out.Get("author")
	require.True(t, ok)

	s, _ := author.AsString()
	assert.Equal(t, "Anonymous", s)

	status, ok := out.Get("status")
	require.True(t, ok)

	s, _ = status.AsString()
	assert.Equal(t, "draft", s)
}

func TestNormalizeMissingRequiredField(t *testing.T) {
	doc := parse.NewDocument()

	root := []fieldschema.Field{{Name: "title", Type: fieldschema.TypeString, Required: true}}

	_, _, err := normalize.Normalize(doc, root, nil)
	require.Error(t, err)
}

func TestNormalizeStringifiesNumericForStringField(t *testing.T) {
	doc := parse.NewDocument()
	doc.Set("count", parse.NewValue(int64(3)))

	root := []fieldschema.Field{{Name: "count", Type: fieldschema.TypeString}}

	out, _, err := normalize.Normalize(doc, root, nil)
	require.NoError(t, err)

	v, _ := out.Get("count")
	s, ok := v.AsString()
	assert.True(t, ok)
	assert.Equal(t, "3", s)
}

func TestNormalizeRejectsMappingForStringField(t *testing.T) {
	doc := parse.NewDocument()
	doc.Set("title", parse.NewValue(map[string]any{"a": 1}))

	root := []fieldschema.Field{{Name: "title", Type: fieldschema.TypeString}}

	_, _, err := normalize.Normalize(doc, root, nil)
	require.Error(t, err)
}

func TestNormalizePreservesUnknownFields(t *testing.T) {
	doc := parse.NewDocument()
	doc.Set("title", parse.NewValue("Hello"))
	doc.Set("extra", parse.NewValue("kept"))

	root := []fieldschema.Field{{Name: "title", Type: fieldschema.TypeString}}

	out, _, err := normalize.Normalize(doc, root, nil)
	require.NoError(t, err)

	v, ok := out.Get("extra")
	require.True(t, ok)

	s, _ := v.AsString()
	assert.Equal(t, "kept", s)
}

func TestNormalizeCardsElementWise(t *testing.T) {
	doc := parse.NewDocument()
	doc.Cards = map[string][]parse.Document{
		"items": {func() parse.Document {
			d := parse.NewDocument()
			d.Set("name", parse.NewValue("a"))
			d.Set("body", parse.NewValue("x"))

			return d
		}()},
	}

	cards := map[string]fieldschema.CardSchema{
		"items": {
			Name: "items",
			Fields: []fieldschema.Field{
				{Name: "name", Type: fieldschema.TypeString, Required: true},
				{Name: "priority", Type: fieldschema.TypeInteger, Default: int64(1)},
			},
		},
	}

	out, _, err := normalize.Normalize(doc, nil, cards)
	require.NoError(t, err)

	require.Len(t, out.Cards["items"], 1)

	priority, ok := out.Cards["items"][0].Get("priority")
	require.True(t, ok)

	i, _ := priority.AsInt()
	assert.Equal(t, int64(1), i)
}

func TestNormalizeEnumRejectsUnknownValue(t *testing.T) {
	doc := parse.NewDocument()
	doc.Set("status", parse.NewValue("unknown"))

	root := []fieldschema.Field{{Name: "status", Type: fieldschema.TypeEnum, Enum: []string{"draft", "final"}}}

	_, _, err := normalize.Normalize(doc, root, nil)
	require.Error(t, err)
}
