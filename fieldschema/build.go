package fieldschema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// uiExtraKey is the JSON Schema extension key under which [Field.UI] is
// serialized. Stripping this key yields a schema suitable for external
// validators.
const uiExtraKey = "x-ui"

// Build converts an ordered field list into an object [*jsonschema.Schema].
// additionalProperties is left permissive (true): unknown fields pass
// through unchanged during normalization; the schema declares only
// what it knows about.
func Build(fields []Field) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema),
	}

	order := make([]string, 0, len(fields))

	var required []string

	for _, f := range fields {
		schema.Properties[f.Name] = buildField(f)
		order = append(order, f.Name)

		if f.Required {
			required = append(required, f.Name)
		}
	}

	schema.PropertyOrder = order
	schema.Required = required
	schema.AdditionalProperties = TrueSchema()

	return schema
}

// BuildCard converts a [CardSchema] into an object schema for one element of
// the card's array.
func BuildCard(c CardSchema) *jsonschema.Schema {
	return Build(c.Fields)
}

// buildField converts a single field declaration into its schema fragment.
func buildField(f Field) *jsonschema.Schema {
	var s *jsonschema.Schema

	switch f.Type {
	case TypeString, TypeDate:
		s = &jsonschema.Schema{Type: "string"}
	case TypeMarkdown:
		s = &jsonschema.Schema{Type: "string", ContentMediaType: "text/markdown"}
	case TypeInteger:
		s = &jsonschema.Schema{Type: "integer"}
	case TypeNumber:
		s = &jsonschema.Schema{Type: "number"}
	case TypeBoolean:
		s = &jsonschema.Schema{Type: "boolean"}
	case TypeEnum:
		s = &jsonschema.Schema{Type: "string"}

		enum := make([]any, 0, len(f.Enum))
		for _, v := range f.Enum {
			enum = append(enum, v)
		}

		s.Enum = enum
	case TypeArray:
		s = &jsonschema.Schema{Type: "array"}

		if f.Items != nil {
			s.Items = buildField(*f.Items)
		}
	case TypeObject:
		s = Build(f.Properties)
	default:
		s = &jsonschema.Schema{}
	}

	s.Title = f.Title
	s.Description = f.Description
	s.Examples = f.Examples

	if f.Default != nil {
		s.Default = DefaultValue(f.Default)
	}

	if f.Type == TypeMarkdown || f.Type == TypeDate || len(f.UI) > 0 {
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}

		ui := make(map[string]any, len(f.UI)+1)
		for k, v := range f.UI {
			ui[k] = v
		}

		if _, ok := ui["widget"]; !ok {
			switch f.Type {
			case TypeMarkdown:
				ui["widget"] = "markdown"
			case TypeDate:
				ui["widget"] = "date"
			}
		}

		s.Extra[uiExtraKey] = ui
	}

	return s
}

// TrueSchema returns a schema that validates everything.
func TrueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// FalseSchema returns a schema that validates nothing.
func FalseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
