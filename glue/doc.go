// Package glue is the Glue template composition stage: it composes
// a backend-specific source file from a template string and a field map,
// using the `{{ }}`/`{% %}`/`{# #}` grammar of [github.com/flosch/pongo2/v6]
// (chosen over text/template because templates use that exact
// delimiter family and pongo2's *Error carries filename/line/column
// directly onto a TemplateFailed [diagnostic.Diagnostic]).
//
// A [Glue] is built fresh per render (via [New]), not shared globally, so
// that [Glue.RegisterFilter] calls from one Backend never leak into
// another Workflow's composition and composition stays deterministic for a
// fixed (template, fields, filters) triple.
package glue
