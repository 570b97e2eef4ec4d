package fieldschema

// Type is the small vocabulary of field types a Quill author can declare.
// It maps onto JSON Schema types, with Markdown and Date layered on top of
// string: Markdown as a string with the native contentMediaType
// "text/markdown" plus an "x-ui" widget hint, and Date as a plain string
// with an "x-ui" widget hint only.
type Type string

// Supported field types.
const (
	TypeString   Type = "string"
	TypeMarkdown Type = "markdown"
	TypeInteger  Type = "integer"
	TypeNumber   Type = "number"
	TypeBoolean  Type = "boolean"
	TypeDate     Type = "date"
	TypeEnum     Type = "enum"
	TypeArray    Type = "array"
	TypeObject   Type = "object"
)

// Field is one declared field in a Quill's schema: a top-level frontmatter
// field, a card's inner field, or a nested Object member. Fields are kept in
// declaration order; that order governs both the generated schema's
// PropertyOrder and the order [normalize.Normalize] visits fields in.
type Field struct {
	Name        string
	Type        Type
	Title       string
	Description string
	Required    bool
	Default     any
	Examples    []any
	// Enum lists the permitted values when Type is TypeEnum.
	Enum []string
	// Items describes element fields when Type is TypeArray.
	Items *Field
	// Properties lists member fields, in declaration order, when Type is
	// TypeObject.
	Properties []Field
	// UI carries renderer-facing hints (e.g. widget, placeholder) that are
	// opaque to validation and normalization. Serialized under the "x-ui"
	// schema extension.
	UI map[string]any
}

// CardSchema is the field declaration list for one named card collection.
type CardSchema struct {
	Name   string
	Fields []Field
}
