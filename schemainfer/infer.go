package schemainfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/quillmark-go/quillmark/fieldschema"
)

// ErrInvalidYAML is returned when the sample frontmatter cannot be parsed.
var ErrInvalidYAML = errors.New("invalid yaml")

// ErrNotMapping is returned when the sample frontmatter is valid YAML but
// not a mapping, since only a mapping can seed a field table.
var ErrNotMapping = errors.New("frontmatter is not a mapping")

// dateLayouts are the string shapes treated as evidence of a date field.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Inferrer derives Field Schema declarations from sample frontmatter.
// Create one with [New].
type Inferrer struct {
	recordDefaults bool
	recordExamples bool
}

// Option configures an Inferrer.
type Option func(*Inferrer)

// WithDefaults records each observed scalar value as the inferred field's
// default.
func WithDefaults(record bool) Option {
	return func(i *Inferrer) {
		i.recordDefaults = record
	}
}

// WithExamples records each observed scalar value as an example on the
// inferred field.
func WithExamples(record bool) Option {
	return func(i *Inferrer) {
		i.recordExamples = record
	}
}

// New creates an Inferrer with the given options.
func New(opts ...Option) *Inferrer {
	i := &Inferrer{}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Infer parses frontmatter as a YAML mapping and returns one inferred
// [fieldschema.Field] per top-level key, in source order. Blank input
// yields an empty list.
func (i *Inferrer) Infer(frontmatter []byte) ([]fieldschema.Field, error) {
	if isBlank(frontmatter) {
		return nil, nil
	}

	file, err := parser.ParseBytes(frontmatter, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, nil
	}

	body := unwrapNode(file.Docs[0].Body)

	switch n := body.(type) {
	case *ast.MappingNode:
		return i.inferMapping(n.Values), nil
	case *ast.MappingValueNode:
		return i.inferMapping([]*ast.MappingValueNode{n}), nil
	case *ast.NullNode:
		return nil, nil
	default:
		return nil, ErrNotMapping
	}
}

func (i *Inferrer) inferMapping(entries []*ast.MappingValueNode) []fieldschema.Field {
	fields := make([]fieldschema.Field, 0, len(entries))

	for _, mvn := range entries {
		f := i.inferField(keyName(mvn), mvn.Value)

		if desc := commentText(mvn); desc != "" {
			f.Description = desc
		}

		fields = append(fields, f)
	}

	return fields
}

// inferField maps one YAML value node onto a field declaration.
func (i *Inferrer) inferField(name string, node ast.Node) fieldschema.Field {
	node = unwrapNode(node)

	f := fieldschema.Field{Name: name, Type: fieldschema.TypeString}

	switch n := node.(type) {
	case *ast.BoolNode:
		f.Type = fieldschema.TypeBoolean
	case *ast.IntegerNode:
		f.Type = fieldschema.TypeInteger
	case *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		f.Type = fieldschema.TypeNumber
	case *ast.StringNode:
		f.Type = stringFieldType(n.Value)
	case *ast.LiteralNode:
		// Block scalars are how document authors write prose in
		// frontmatter, so they read as markdown rather than plain string.
		f.Type = fieldschema.TypeMarkdown
	case *ast.SequenceNode:
		f.Type = fieldschema.TypeArray
		f.Items = i.inferItems(n)
	case *ast.MappingNode:
		f.Type = fieldschema.TypeObject
		f.Properties = i.inferMapping(n.Values)
	case *ast.MappingValueNode:
		f.Type = fieldschema.TypeObject
		f.Properties = i.inferMapping([]*ast.MappingValueNode{n})
	case *ast.NullNode, nil:
		// No evidence either way; string is the least constraining guess.
		return f
	}

	if scalar, ok := scalarValue(node); ok {
		if i.recordDefaults {
			f.Default = scalar
		}

		if i.recordExamples {
			f.Examples = []any{scalar}
		}
	}

	return f
}

// inferItems derives an element declaration from a sequence's values,
// widening across elements. Returns nil for an empty sequence.
func (i *Inferrer) inferItems(seq *ast.SequenceNode) *fieldschema.Field {
	var item *fieldschema.Field

	for _, val := range seq.Values {
		elem := i.inferField("", val)
		elem.Default = nil
		elem.Examples = nil

		if item == nil {
			e := elem
			item = &e

			continue
		}

		widened := mergeField(*item, elem)
		item = &widened
	}

	return item
}

// stringFieldType narrows a string scalar: ISO 8601 shapes become dates,
// multi-line strings become markdown, everything else stays a string.
func stringFieldType(s string) fieldschema.Type {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return fieldschema.TypeDate
		}
	}

	if strings.Contains(s, "\n") {
		return fieldschema.TypeMarkdown
	}

	return fieldschema.TypeString
}

// scalarValue returns the Go value of a scalar node, for recording as a
// default or example. Sequences, mappings, and nulls return ok=false.
func scalarValue(node ast.Node) (any, bool) {
	switch n := unwrapNode(node).(type) {
	case *ast.BoolNode:
		return n.Value, true
	case *ast.IntegerNode:
		return n.Value, true
	case *ast.FloatNode:
		return n.Value, true
	case *ast.StringNode:
		return n.Value, true
	case *ast.LiteralNode:
		return n.Value.Value, true
	default:
		return nil, false
	}
}

// unwrapNode resolves tag and anchor wrappers to the underlying value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// keyName returns a mapping entry's key with any scalar quoting removed.
func keyName(mvn *ast.MappingValueNode) string {
	s := strings.TrimSpace(mvn.Key.String())
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}

	return s
}

// commentText extracts a description from the comments attached to a
// mapping entry: the head comment if present, else an inline comment on
// the value or key.
func commentText(mvn *ast.MappingValueNode) string {
	if desc := cleanComment(mvn.GetComment()); desc != "" {
		return desc
	}

	if mvn.Value != nil {
		if desc := cleanComment(mvn.Value.GetComment()); desc != "" {
			return desc
		}
	}

	if keyNode, ok := mvn.Key.(ast.Node); ok {
		return cleanComment(keyNode.GetComment())
	}

	return ""
}

// cleanComment strips comment markers and joins multi-line comments with
// spaces, keeping only the lines after the last blank comment line so a
// field's own comment is not polluted by an unrelated block above it.
func cleanComment(comment *ast.CommentGroupNode) string {
	if comment == nil {
		return ""
	}

	lines := strings.Split(comment.String(), "\n")

	lastBlank := -1

	for idx, line := range lines {
		if strings.TrimSpace(stripCommentPrefix(line)) == "" {
			lastBlank = idx
		}
	}

	start := 0
	if lastBlank >= 0 && lastBlank < len(lines)-1 {
		start = lastBlank + 1
	}

	var parts []string

	for _, line := range lines[start:] {
		cleaned := strings.TrimSpace(stripCommentPrefix(line))
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	return strings.Join(parts, " ")
}

func stripCommentPrefix(line string) string {
	line = strings.TrimSpace(line)
	for strings.HasPrefix(line, "#") {
		line = strings.TrimPrefix(line, "#")
	}

	return strings.TrimPrefix(line, " ")
}

func isBlank(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return false
		}
	}

	return true
}
