package normalize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/fieldschema"
	"github.com/quillmark-go/quillmark/parse"
)

// dateLayouts are the ISO 8601 layouts accepted for a TypeDate field,
// tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Normalize applies root (and, for each card collection, the matching entry
// of cards) to doc: defaulting, type coercion, required-field
// enforcement, and element-wise card normalization. Unknown fields (not
// declared in root) and unknown card collections (not declared in cards)
// pass through unmodified. The returned error, when non-nil, carries a
// [diagnostic.Diagnostic] with code MissingRequiredField or
// FieldTypeMismatch: for a top-level field it is that Diagnostic itself;
// for a card element, array item or object member it wraps it with the
// element's position, so use [errors.As] to retrieve it.
func Normalize(doc parse.Document, root []fieldschema.Field, cards map[string]fieldschema.CardSchema) (parse.Document, []diagnostic.Diagnostic, error) {
	out := parse.NewDocument()
	out.QuillTag = doc.QuillTag

	applied := make(map[string]bool, len(root))

	for _, f := range root {
		v, present := doc.Get(f.Name)

		switch {
		case present:
			coerced, err := coerceValue(v, f)
			if err != nil {
				return parse.Document{}, nil, err
			}

			out.Set(f.Name, coerced)
		case f.Default != nil:
			out.Set(f.Name, parse.NewValue(f.Default))
		case f.Required:
			return parse.Document{}, nil, diagnostic.Newf(diagnostic.CodeMissingRequiredField,
				"field %q is required but was not provided", f.Name)
		}

		applied[f.Name] = true
	}

	for _, field := range doc.Fields() {
		if !applied[field.Name] {
			out.Set(field.Name, field.Value)
		}
	}

	if len(doc.Cards) > 0 {
		out.Cards = make(map[string][]parse.Document, len(doc.Cards))

		for name, elements := range doc.Cards {
			schema, declared := cards[name]

			normalized := make([]parse.Document, len(elements))

			for i, el := range elements {
				if !declared {
					normalized[i] = el

					continue
				}

				n, _, err := Normalize(el, schema.Fields, nil)
				if err != nil {
					return parse.Document{}, nil, fmt.Errorf("card %q[%d]: %w", name, i, err)
				}

				normalized[i] = n
			}

			out.Cards[name] = normalized
		}
	}

	return out, nil, nil
}

// coerceValue coerces v to satisfy f's declared type. A type mismatch
// returns a FieldTypeMismatch
// diagnostic naming the field and the value's observed kind.
func coerceValue(v parse.Value, f fieldschema.Field) (parse.Value, error) {
	switch f.Type {
	case fieldschema.TypeString, fieldschema.TypeMarkdown:
		return coerceString(v, f)
	case fieldschema.TypeInteger:
		if i, ok := v.AsInt(); ok {
			return parse.NewValue(i), nil
		}

		return v, mismatch(f, v)
	case fieldschema.TypeNumber:
		if n, ok := v.AsFloat(); ok {
			return parse.NewValue(n), nil
		}

		return v, mismatch(f, v)
	case fieldschema.TypeBoolean:
		if _, ok := v.AsBool(); ok {
			return v, nil
		}

		return v, mismatch(f, v)
	case fieldschema.TypeDate:
		return coerceDate(v, f)
	case fieldschema.TypeEnum:
		return coerceEnum(v, f)
	case fieldschema.TypeArray:
		return coerceArray(v, f)
	case fieldschema.TypeObject:
		return coerceObject(v, f)
	default:
		return v, nil
	}
}

// coerceString stringifies a scalar value when f declares String or
// Markdown: numeric and boolean scalars stringify on coerce; sequences
// and mappings do not.
func coerceString(v parse.Value, f fieldschema.Field) (parse.Value, error) {
	if _, ok := v.AsString(); ok {
		return v, nil
	}

	switch raw := v.Raw().(type) {
	case bool:
		return parse.NewValue(strconv.FormatBool(raw)), nil
	case int, int64, uint64:
		i, _ := v.AsInt()

		return parse.NewValue(strconv.FormatInt(i, 10)), nil
	case float64:
		return parse.NewValue(strconv.FormatFloat(raw, 'g', -1, 64)), nil
	default:
		return v, mismatch(f, v)
	}
}

func coerceDate(v parse.Value, f fieldschema.Field) (parse.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return v, mismatch(f, v)
	}

	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return v, nil
		}
	}

	return v, diagnostic.Newf(diagnostic.CodeFieldTypeMismatch,
		"field %q: %q is not a valid ISO 8601 date", f.Name, s)
}

func coerceEnum(v parse.Value, f fieldschema.Field) (parse.Value, error) {
	s, ok := v.AsString()
	if !ok {
		return v, mismatch(f, v)
	}

	for _, allowed := range f.Enum {
		if allowed == s {
			return v, nil
		}
	}

	return v, diagnostic.Newf(diagnostic.CodeFieldTypeMismatch,
		"field %q: %q is not one of the declared enum values", f.Name, s)
}

func coerceArray(v parse.Value, f fieldschema.Field) (parse.Value, error) {
	seq, ok := v.AsSequence()
	if !ok {
		return v, mismatch(f, v)
	}

	if f.Items == nil {
		return v, nil
	}

	out := make([]any, len(seq))

	for i, item := range seq {
		coerced, err := coerceValue(item, *f.Items)
		if err != nil {
			return v, fmt.Errorf("field %q[%d]: %w", f.Name, i, err)
		}

		out[i] = coerced.Raw()
	}

	return parse.NewValue(out), nil
}

func coerceObject(v parse.Value, f fieldschema.Field) (parse.Value, error) {
	m, ok := v.AsMapping()
	if !ok {
		return v, mismatch(f, v)
	}

	nested := parse.NewDocument()
	for k, val := range m {
		nested.Set(k, val)
	}

	normalized, _, err := Normalize(nested, f.Properties, nil)
	if err != nil {
		return v, fmt.Errorf("field %q: %w", f.Name, err)
	}

	out := make(map[string]any, normalized.Len())
	for _, nf := range normalized.Fields() {
		out[nf.Name] = nf.Value.Raw()
	}

	return parse.NewValue(out), nil
}

func mismatch(f fieldschema.Field, v parse.Value) error {
	return diagnostic.Newf(diagnostic.CodeFieldTypeMismatch,
		"field %q: expected %s, got %s", f.Name, f.Type, v.Kind())
}
