// Package quill loads and validates Quill packages: the self-describing
// bundles of manifest, template, field schema, assets, and fonts that
// [quillmark/workflow] binds to a render and [quillmark/engine] registers by
// name.
//
// A Quill is addressable by [Quill.Name] and immutable once [LoadFromDir],
// [LoadFromBundle], or [LoadFromArchive] returns it. Its virtual filesystem
// ([internal/vfs.Tree]) is cloned per [quillmark/workflow.Workflow], so
// runtime asset/font injection never mutates the shared package.
package quill
