package glue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/quillmark-go/quillmark/diagnostic"
)

func init() {
	// Composed sources are backend markup (Typst, LaTeX, plain text), never
	// HTML: pongo2's Django-style autoescaping would corrupt every
	// interpolation, so it is disabled once, globally, for the process.
	pongo2.SetAutoescape(false)
}

// registryMu serializes filter (re)registration and template execution
// against pongo2's process-wide filter registry, since pongo2 has no
// per-TemplateSet filter namespace. A Glue is meant to be used by one
// Workflow at a time; this mutex only protects against a second
// Workflow racing the same process.
var registryMu sync.Mutex

// Filters are the backend-supplied rendering functions behind the standard
// filter set. Any nil field falls back to a conservative default.
type Filters struct {
	// String escapes and quotes a scalar as the backend's string literal.
	// Must satisfy the escaping invariant: inserting the result into the
	// backend's string-literal context and parsing it back recovers
	// exactly the input, for any input bytes.
	String func(s string) string
	// List renders a sequence as the backend's list literal syntax.
	List func(items []any) string
	// Date renders an ISO-8601 date string as the backend's date literal.
	Date func(s string) string
}

// Glue composes a template source string with a field map into backend
// source text. Create one per render with [New]; it is not safe to
// share a Glue across concurrent renders.
type Glue struct {
	set     *pongo2.TemplateSet
	filters Filters
}

// New creates a Glue and registers the standard filters (String, List,
// Markdown, Markup, Date) against filters, falling back to conservative
// defaults for any filters left nil.
func New(filters Filters) (*Glue, error) {
	g := &Glue{
		set:     pongo2.NewSet("quillmark", pongo2.DefaultLoader),
		filters: withDefaults(filters),
	}

	std := map[string]pongo2.FilterFunction{
		"String":   g.filterString,
		"List":     g.filterList,
		"Markdown": filterPassthrough,
		"Markup":   filterPassthrough,
		"Date":     g.filterDate,
	}

	for name, fn := range std {
		if err := g.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("glue: registering filter %q: %w", name, err)
		}
	}

	return g, nil
}

func withDefaults(f Filters) Filters {
	if f.String == nil {
		f.String = defaultStringEscaper
	}

	if f.List == nil {
		f.List = defaultListFormatter
	}

	if f.Date == nil {
		f.Date = func(s string) string { return s }
	}

	return f
}

// defaultStringEscaper is the conservative fallback String filter: a JSON
// string literal, which is quoted and fully escapes control characters,
// backslashes, and quotes for any Go string.
func defaultStringEscaper(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}

	return string(b)
}

func defaultListFormatter(items []any) string {
	parts := make([]string, len(items))

	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			b = []byte("null")
		}

		parts[i] = string(b)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// RegisterFilter installs fn under name, the hook Backends use to install
// backend-specific filters or override a default. Re-registering an
// existing name replaces it, so a second Glue in the same process can
// supply its own backend's filter definitions.
func (g *Glue) RegisterFilter(name string, fn pongo2.FilterFunction) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if pongo2.FilterExists(name) {
		return pongo2.ReplaceFilter(name, fn)
	}

	return pongo2.RegisterFilter(name, fn)
}

func (g *Glue) filterString(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(g.filters.String(in.String())), nil
}

func (g *Glue) filterList(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	items := asSlice(in)

	return pongo2.AsValue(g.filters.List(items)), nil
}

func (g *Glue) filterDate(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(g.filters.Date(in.String())), nil
}

// filterPassthrough implements Markdown/Markup: a value that has already
// been converted to backend markup by an upstream converter is emitted
// verbatim, never re-escaped.
func filterPassthrough(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return in, nil
}

func asSlice(v *pongo2.Value) []any {
	raw := v.Interface()

	seq, ok := raw.([]any)
	if !ok {
		return []any{raw}
	}

	return seq
}

// Compose compiles templateSource (named name, for diagnostics) and
// executes it against fields, returning the composed backend source text.
// A syntax or evaluation failure is reported as a TemplateFailed
// [diagnostic.Diagnostic] carrying the template's line and column.
func (g *Glue) Compose(name, templateSource string, fields map[string]any) (string, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	tpl, err := g.set.FromString(templateSource)
	if err != nil {
		return "", toDiagnostic(name, err)
	}

	out, err := tpl.Execute(pongo2.Context(fields))
	if err != nil {
		return "", toDiagnostic(name, err)
	}

	return out, nil
}

func toDiagnostic(name string, err error) error {
	var perr *pongo2.Error
	if errors.As(err, &perr) {
		d := diagnostic.Newf(diagnostic.CodeTemplateFailed, "template %q failed to compose", name).
			WithPrimary(name, perr.Line, perr.Column)

		if perr.OrigError != nil {
			d = d.WithHint(perr.OrigError.Error())
		}

		return d.WithCause(perr)
	}

	return diagnostic.Newf(diagnostic.CodeTemplateFailed, "template %q failed to compose", name).
		WithCause(err)
}
