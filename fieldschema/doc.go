// Package fieldschema describes the typed field declarations a Quill
// attaches to its frontmatter and card collections, and builds a
// [*jsonschema.Schema] from them. [quillmark/normalize] works from the same
// field declarations directly, not from the built schema.
//
// A Quill author writes field declarations once, in Quill.toml, using the
// small vocabulary in [Type]. [Build] turns a field list into a Draft 2020-12
// object schema; [ExtractDefaults] and [StripUI] support the two other
// consumers of that same declaration list: default-filling and
// client-facing introspection.
package fieldschema
