package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quillmark-go/quillmark/backend"
	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/glue"
	"github.com/quillmark-go/quillmark/internal/vfs"
	"github.com/quillmark-go/quillmark/normalize"
	"github.com/quillmark-go/quillmark/parse"
	"github.com/quillmark-go/quillmark/quill"
)

// RenderResult and Artifact are the Workflow-facing names for the shared
// value types defined in [quillmark/backend], where every Backend
// implementation also produces and consumes them.
type (
	RenderResult = backend.RenderResult
	Artifact     = backend.Artifact
)

// renderState is the forward-only state machine a single [Workflow.Render]
// call advances through: Bound -> Normalized -> Composed ->
// Compiled -> Done. It is unexported; callers observe only success or a
// terminal Diagnostic.
type renderState int

const (
	stateBound renderState = iota
	stateNormalized
	stateComposed
	stateCompiled
	stateDone
)

// Workflow is the stateful per-render object bound to one Quill and one
// Backend. Create one with [New]; it is not safe for concurrent use.
type Workflow struct {
	quill    *quill.Quill
	backend  backend.Backend
	renderID uuid.UUID

	assetNames []string
	fontNames  []string

	state renderState
}

// New binds q and b into a Workflow, cloning q's virtual filesystem so
// dynamic asset/font injection is local to this render.
func New(q *quill.Quill, b backend.Backend) (*Workflow, error) {
	if q.AutoOutput && !b.AllowAutoOutput() {
		return nil, diagnostic.Newf(diagnostic.CodeUnsupportedBackend,
			"quill %q has no template but backend %q does not allow auto-output", q.Name, b.ID())
	}

	clone, err := q.Clone()
	if err != nil {
		return nil, fmt.Errorf("workflow: cloning quill %q: %w", q.Name, err)
	}

	return &Workflow{
		quill:    clone,
		backend:  b,
		renderID: uuid.New(),
		state:    stateBound,
	}, nil
}

// RenderID returns the UUID generated for this Workflow. The Workflow itself
// does not log it; cmd/quillmark's render command logs it once when it binds
// a Workflow.
func (w *Workflow) RenderID() uuid.UUID {
	return w.renderID
}

// AddAsset injects a dynamic asset file, visible to the Backend at
// DYNAMIC_ASSET__/<name>. Fails with DynamicAssetCollision if name is
// already present.
func (w *Workflow) AddAsset(name string, data []byte) error {
	return w.addDynamic(vfs.DynamicAssetPrefix, name, data, diagnostic.CodeDynamicAssetCollision, &w.assetNames)
}

// AddFont injects a dynamic font file, visible to the Backend at
// DYNAMIC_FONT__/<name>. That path in the Quill's virtual filesystem is the
// only way the font reaches the Backend; it is not added to the
// [backend.Options] passed to Compile. Fails with DynamicFontCollision if
// name is already present.
func (w *Workflow) AddFont(name string, data []byte) error {
	return w.addDynamic(vfs.DynamicFontPrefix, name, data, diagnostic.CodeDynamicFontCollision, &w.fontNames)
}

func (w *Workflow) addDynamic(prefix, name string, data []byte, code diagnostic.Code, names *[]string) error {
	if w.quill.Files.Exists(prefix + name) {
		return diagnostic.Newf(code, "%q is already present under %s", name, prefix)
	}

	if err := w.quill.Files.WriteDynamic(prefix, name, data); err != nil {
		return fmt.Errorf("workflow: writing %s%s: %w", prefix, name, err)
	}

	*names = append(*names, name)

	return nil
}

// AddAssets injects each named asset, in Go's unspecified map iteration
// order, failing fast on the first collision. Already-injected entries from
// this call are not rolled back.
func (w *Workflow) AddAssets(assets map[string][]byte) error {
	for name, data := range assets {
		if err := w.AddAsset(name, data); err != nil {
			return err
		}
	}

	return nil
}

// AddFonts injects each named font, in Go's unspecified map iteration
// order, failing fast on the first collision.
func (w *Workflow) AddFonts(fonts map[string][]byte) error {
	for name, data := range fonts {
		if err := w.AddFont(name, data); err != nil {
			return err
		}
	}

	return nil
}

// ClearAssets removes every dynamic asset injected so far.
func (w *Workflow) ClearAssets() error {
	if err := w.quill.Files.RemovePrefix(vfs.DynamicAssetPrefix); err != nil {
		return fmt.Errorf("workflow: clearing assets: %w", err)
	}

	w.assetNames = nil

	return nil
}

// ClearFonts removes every dynamic font injected so far.
func (w *Workflow) ClearFonts() error {
	if err := w.quill.Files.RemovePrefix(vfs.DynamicFontPrefix); err != nil {
		return fmt.Errorf("workflow: clearing fonts: %w", err)
	}

	w.fontNames = nil

	return nil
}

// SupportedFormats returns the bound Backend's supported output formats.
func (w *Workflow) SupportedFormats() []backend.Format {
	return w.backend.SupportedFormats()
}

// BackendID returns the bound Backend's id.
func (w *Workflow) BackendID() string {
	return w.backend.ID()
}

// QuillName returns the bound Quill's name.
func (w *Workflow) QuillName() string {
	return w.quill.Name
}

// DynamicAssetNames returns the names injected via AddAsset/AddAssets since
// the last ClearAssets, in injection order.
func (w *Workflow) DynamicAssetNames() []string {
	out := make([]string, len(w.assetNames))
	copy(out, w.assetNames)

	return out
}

// DynamicFontNames returns the names injected via AddFont/AddFonts since
// the last ClearFonts, in injection order.
func (w *Workflow) DynamicFontNames() []string {
	out := make([]string, len(w.fontNames))
	copy(out, w.fontNames)

	return out
}

// Compose normalizes doc against the bound Quill's schema and composes the
// backend source text (or, for an auto-output Quill, canonical JSON of the
// normalized field map). It does not dispatch to the Backend;
// use [Workflow.Render] for a full render.
func (w *Workflow) Compose(doc parse.Document) (string, []diagnostic.Diagnostic, error) {
	normalized, warnings, err := normalize.Normalize(doc, w.quill.Root, w.quill.Cards)
	if err != nil {
		return "", warnings, err
	}

	w.state = stateNormalized

	if w.quill.AutoOutput {
		out, jerr := autoOutputJSON(normalized)
		if jerr != nil {
			return "", warnings, jerr
		}

		w.state = stateComposed

		return out, warnings, nil
	}

	g, gerr := glue.New(glue.Filters{})
	if gerr != nil {
		return "", warnings, fmt.Errorf("workflow: building glue: %w", gerr)
	}

	w.backend.RegisterFilters(g)

	templateName := w.quill.Manifest.TemplateFile
	if templateName == "" {
		templateName = w.quill.Name
	}

	source, cerr := g.Compose(templateName, w.quill.Template, contextFromDocument(normalized))
	if cerr != nil {
		return "", warnings, cerr
	}

	w.state = stateComposed

	return source, warnings, nil
}

// Render carries doc through the full pipeline: quill-tag hint
// check, normalization, composition, and backend compilation. Warnings
// accumulate, in stage order, onto the returned RenderResult; a fatal
// failure at any stage returns a terminal Diagnostic and no RenderResult.
func (w *Workflow) Render(doc parse.Document, format *backend.Format) (RenderResult, error) {
	var warnings []diagnostic.Diagnostic

	if doc.QuillTag != nil && *doc.QuillTag != w.quill.Name {
		warnings = append(warnings, diagnostic.Warnf(diagnostic.CodeQuillTagMismatch,
			"document requested quill %q but this Workflow is bound to %q", *doc.QuillTag, w.quill.Name))
	}

	source, composeWarnings, err := w.Compose(doc)
	if err != nil {
		return RenderResult{}, err
	}

	warnings = append(warnings, composeWarnings...)

	if format != nil && !formatSupported(*format, w.backend.SupportedFormats()) {
		return RenderResult{}, diagnostic.Newf(diagnostic.CodeFormatNotSupported,
			"backend %q does not support format %q", w.backend.ID(), *format)
	}

	opts := backend.Options{Format: format}

	result, err := w.backend.Compile(source, w.quill, opts)
	if err != nil {
		return RenderResult{}, err
	}

	w.state = stateCompiled

	result.Warnings = append(append([]diagnostic.Diagnostic{}, warnings...), result.Warnings...)
	w.state = stateDone

	return result, nil
}

func formatSupported(f backend.Format, supported []backend.Format) bool {
	for _, s := range supported {
		if s == f {
			return true
		}
	}

	return false
}
