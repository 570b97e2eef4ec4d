package schemainfer

import "github.com/quillmark-go/quillmark/fieldschema"

// Merge combines field lists inferred from two sample documents using
// union semantics: fields present in either list appear in the result,
// with a's declaration order first and b's additions appended. Fields
// present in both are widened with [mergeField].
func Merge(a, b []fieldschema.Field) []fieldschema.Field {
	byName := make(map[string]int, len(a))
	out := make([]fieldschema.Field, len(a))
	copy(out, a)

	for idx, f := range a {
		byName[f.Name] = idx
	}

	for _, f := range b {
		idx, seen := byName[f.Name]
		if !seen {
			byName[f.Name] = len(out)
			out = append(out, f)

			continue
		}

		out[idx] = mergeField(out[idx], f)
	}

	return out
}

// mergeField widens two declarations for the same field. Metadata prefers
// a, falling back to b.
func mergeField(a, b fieldschema.Field) fieldschema.Field {
	merged := a
	merged.Type = widenType(a.Type, b.Type)

	if merged.Description == "" {
		merged.Description = b.Description
	}

	if merged.Default == nil {
		merged.Default = b.Default
	}

	merged.Examples = appendExamples(a.Examples, b.Examples)

	if merged.Type == fieldschema.TypeArray {
		merged.Items = mergeItems(a.Items, b.Items)
	} else {
		merged.Items = nil
	}

	if merged.Type == fieldschema.TypeObject {
		merged.Properties = Merge(a.Properties, b.Properties)
	} else {
		merged.Properties = nil
	}

	return merged
}

func mergeItems(a, b *fieldschema.Field) *fieldschema.Field {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		m := mergeField(*a, *b)

		return &m
	}
}

// widenType returns the narrowest type consistent with both observations.
// Integer widens to number against a float; the string family (string,
// markdown, date) widens to markdown if either side is markdown, else to
// plain string. Disagreement across families falls back to string, the
// type every YAML scalar satisfies once stringified.
func widenType(a, b fieldschema.Type) fieldschema.Type {
	if a == b {
		return a
	}

	if bothNumeric(a, b) {
		return fieldschema.TypeNumber
	}

	if isStringFamily(a) && isStringFamily(b) {
		if a == fieldschema.TypeMarkdown || b == fieldschema.TypeMarkdown {
			return fieldschema.TypeMarkdown
		}

		return fieldschema.TypeString
	}

	return fieldschema.TypeString
}

func bothNumeric(a, b fieldschema.Type) bool {
	numeric := func(t fieldschema.Type) bool {
		return t == fieldschema.TypeInteger || t == fieldschema.TypeNumber
	}

	return numeric(a) && numeric(b)
}

func isStringFamily(t fieldschema.Type) bool {
	switch t {
	case fieldschema.TypeString, fieldschema.TypeMarkdown, fieldschema.TypeDate:
		return true
	default:
		return false
	}
}

func appendExamples(a, b []any) []any {
	if len(b) == 0 {
		return a
	}

	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)

seen:
	for _, ex := range b {
		for _, have := range out {
			if have == ex {
				continue seen
			}
		}

		out = append(out, ex)
	}

	return out
}
