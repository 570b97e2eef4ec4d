// Package parse implements decomposition of Markdown-with-frontmatter into
// a [Document]: a typed field map plus an optional quill tag and zero or
// more named card collections.
//
// [Decompose] never panics and never silently drops content: every failure
// path returns a [diagnostic.Diagnostic] describing exactly what went
// wrong, and the reserved "body" field is always populated on success, even
// when empty.
package parse
