package fieldschema

import "encoding/json"

// DefaultValue converts a Go value to a [json.RawMessage] suitable for use
// as a JSON Schema default value. Returns nil if marshaling fails.
func DefaultValue(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return b
}

// ExtractDefaults walks fields and returns a name -> default value map for
// every field (at any depth, dot-joined for Object members) that declares a
// Default. The result is a Go map, so it carries no declaration order.
func ExtractDefaults(fields []Field) map[string]any {
	out := make(map[string]any)
	extractDefaults("", fields, out)

	return out
}

func extractDefaults(prefix string, fields []Field, out map[string]any) {
	for _, f := range fields {
		key := f.Name
		if prefix != "" {
			key = prefix + "." + f.Name
		}

		if f.Default != nil {
			out[key] = f.Default
		}

		if f.Type == TypeObject {
			extractDefaults(key, f.Properties, out)
		}
	}
}

// StripUI returns a copy of fields with every [Field.UI] map removed,
// recursively. Used when a caller needs validation-only semantics without
// renderer-facing hints (e.g. serializing a schema for a non-UI client).
func StripUI(fields []Field) []Field {
	out := make([]Field, len(fields))

	for i, f := range fields {
		f.UI = nil

		if f.Items != nil {
			stripped := StripUI([]Field{*f.Items})[0]
			f.Items = &stripped
		}

		if len(f.Properties) > 0 {
			f.Properties = StripUI(f.Properties)
		}

		out[i] = f
	}

	return out
}
