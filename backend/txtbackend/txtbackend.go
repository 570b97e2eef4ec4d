// Package txtbackend is a minimal, fully in-scope Backend implementation
//: it compiles Glue-composed
// source (or auto-output JSON) directly to UTF-8 bytes with no external
// typesetting dependency.
//
// It exists so an [quillmark/engine.Engine] always has a concrete
// `__default__` fallback to pre-register, so the full pipeline can be
// exercised end-to-end in tests without Typst or LaTeX, and so it
// demonstrates the Backend contract for third-party implementers. The
// heavyweight typesetting backends (Typst, LaTeX) live in their own modules and
// is not reimplemented here.
package txtbackend

import (
	"github.com/quillmark-go/quillmark/backend"
	"github.com/quillmark-go/quillmark/fieldschema"
	"github.com/quillmark-go/quillmark/glue"
	"github.com/quillmark-go/quillmark/internal/vfs"
	"github.com/quillmark-go/quillmark/quill"
)

// DefaultQuillName is the manifest name of the auto-output Quill this
// Backend advertises as the Engine's `__default__` fallback.
const DefaultQuillName = "__default__"

// Backend is the built-in "txt" Backend: auto-output or template-composed
// text, copied verbatim to a single Txt artifact.
type Backend struct{}

// New creates a txtbackend.Backend.
func New() *Backend {
	return &Backend{}
}

// ID implements [backend.Backend].
func (b *Backend) ID() string { return "txt" }

// SupportedFormats implements [backend.Backend].
func (b *Backend) SupportedFormats() []backend.Format {
	return []backend.Format{backend.Txt}
}

// TemplateExtension implements [backend.Backend].
func (b *Backend) TemplateExtension() string { return ".txt" }

// AllowAutoOutput implements [backend.Backend]: txtbackend accepts
// template-less Quills.
func (b *Backend) AllowAutoOutput() bool { return true }

// RegisterFilters implements [backend.Backend]. txtbackend needs no
// filters beyond Glue's defaults: String/List/Date already produce plain
// text, and Markdown/Markup pass through untouched.
func (b *Backend) RegisterFilters(_ *glue.Glue) {}

// Compile implements [backend.Backend]: the composed source becomes the
// single Txt artifact's bytes, unchanged.
func (b *Backend) Compile(composedSource string, _ *quill.Quill, _ backend.Options) (backend.RenderResult, error) {
	return backend.RenderResult{
		Artifacts: []backend.Artifact{{Bytes: []byte(composedSource), Format: backend.Txt}},
	}, nil
}

// ProvidesDefaultQuill implements [backend.DefaultProvider].
func (b *Backend) ProvidesDefaultQuill() *quill.Quill {
	return &quill.Quill{
		Name: DefaultQuillName,
		Manifest: quill.Manifest{
			Name:        DefaultQuillName,
			Backend:     b.ID(),
			Description: "built-in auto-output fallback",
		},
		AutoOutput: true,
		Files:      vfs.New(),
		Root:       []fieldschema.Field{},
		Cards:      map[string]fieldschema.CardSchema{},
		Schema:     fieldschema.Build(nil),
	}
}
