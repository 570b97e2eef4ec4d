package parse

import (
	"regexp"
)

// BodyField is the reserved field name holding the Markdown body.
const BodyField = "body"

// QuillField is the reserved frontmatter key that populates QuillTag and is
// removed from the field map.
const QuillField = "QUILL"

// CardField is the reserved frontmatter key, recognized only at the start
// of a secondary frontmatter block, that begins a card directive.
const CardField = "CARD"

var quillTagPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Field is a single ordered entry in a Document's field map.
type Field struct {
	Name  string
	Value Value
}

// Document is an ordered mapping from field name to [Value], plus an
// optional quill tag and zero or more named card collections. Field names
// are unique at each level; a card collection may not share a name with a
// top-level field.
type Document struct {
	order    []string
	fields   map[string]Value
	QuillTag *string
	Cards    map[string][]Document
}

// NewDocument creates an empty Document.
func NewDocument() Document {
	return Document{fields: make(map[string]Value)}
}

// Set inserts or overwrites a field, recording insertion order for first
// occurrences.
func (d *Document) Set(name string, v Value) {
	if d.fields == nil {
		d.fields = make(map[string]Value)
	}

	if _, exists := d.fields[name]; !exists {
		d.order = append(d.order, name)
	}

	d.fields[name] = v
}

// Get returns the field named name and whether it is present.
func (d Document) Get(name string) (Value, bool) {
	v, ok := d.fields[name]

	return v, ok
}

// Has reports whether a field named name is present.
func (d Document) Has(name string) bool {
	_, ok := d.fields[name]

	return ok
}

// Fields returns every field in insertion (source) order.
func (d Document) Fields() []Field {
	out := make([]Field, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, Field{Name: name, Value: d.fields[name]})
	}

	return out
}

// Len returns the number of top-level fields.
func (d Document) Len() int {
	return len(d.order)
}

// Body returns the reserved body field's string content. The body field
// is present iff decomposition succeeded, so ok is false only for a
// Document that was never produced by Decompose (e.g. the zero value).
func (d Document) Body() (string, bool) {
	v, ok := d.Get(BodyField)
	if !ok {
		return "", false
	}

	s, ok := v.AsString()

	return s, ok
}

// IsValidQuillTag reports whether tag is a well-formed identifier: ASCII
// letters, digits, underscore, or hyphen.
func IsValidQuillTag(tag string) bool {
	return tag != "" && quillTagPattern.MatchString(tag)
}
