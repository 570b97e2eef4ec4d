package backend

import (
	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/glue"
	"github.com/quillmark-go/quillmark/quill"
)

// Format identifies an output artifact kind a Backend can produce.
type Format string

// Well-known output formats.
const (
	Pdf Format = "pdf"
	Svg Format = "svg"
	Txt Format = "txt"
)

// Artifact is one rendered output: its bytes and the format they were
// produced in.
type Artifact struct {
	Bytes  []byte
	Format Format
}

// RenderResult is the outcome of a successful compile: one or more
// Artifacts in the backend's natural output order, plus any accumulated
// warning Diagnostics.
type RenderResult struct {
	Artifacts []Artifact
	Warnings  []diagnostic.Diagnostic
}

// Options carries the caller-tunable knobs for one Compile call.
type Options struct {
	// Format is the requested output format. Nil requests the backend's
	// default.
	Format *Format
	// AllowPackageSearch permits the backend to resolve fonts/packages
	// over the network or from a search path, the opt-in font/package
	// search channel.
	AllowPackageSearch bool
	// FontSearchPaths is an optional hint of additional host-filesystem
	// directories to search for fonts, only consulted when
	// AllowPackageSearch is true.
	FontSearchPaths []string
}

// Backend is a pluggable compilation stage. Implementations must be
// stateless with respect to a single Compile call: no instance mutation
// may leak between renders.
type Backend interface {
	// ID returns a stable identifier used to key this Backend in an
	// [quillmark/engine.Engine] and to match a Quill manifest's declared
	// backend.
	ID() string
	// SupportedFormats returns the non-empty set of output formats this
	// Backend can produce.
	SupportedFormats() []Format
	// TemplateExtension returns the file suffix this Backend's templates
	// conventionally use (e.g. ".typ", ".tex").
	TemplateExtension() string
	// AllowAutoOutput reports whether this Backend accepts a Quill with no
	// template_file (auto-output mode).
	AllowAutoOutput() bool
	// RegisterFilters installs this Backend's filters into g, including
	// any override of the standard String/List/Date filters.
	RegisterFilters(g *glue.Glue)
	// Compile turns composedSource (or, in auto-output mode, canonical
	// JSON) into a RenderResult, using q's virtual filesystem (which may
	// carry Workflow-injected dynamic assets/fonts) for any referenced
	// files. Any internal failure is returned as a CompilationFailed
	// [diagnostic.Diagnostic] (or a [diagnostic.Diagnostics] thereof).
	Compile(composedSource string, q *quill.Quill, opts Options) (RenderResult, error)
}

// DefaultProvider is an optional capability a Backend may implement to
// supply the Engine's `__default__` fallback Quill.
type DefaultProvider interface {
	// ProvidesDefaultQuill returns the auto-output Quill this Backend
	// wants registered as `__default__` when no other Quill of that name
	// is present.
	ProvidesDefaultQuill() *quill.Quill
}
