package diagnostic

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// Error indicates the diagnostic is fatal to the current operation.
	Error Severity = iota
	// Warning indicates a non-fatal, surfaced-on-success condition.
	Warning
	// Note indicates purely informational output.
	Note
)

// String implements [fmt.Stringer].
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Code identifies the kind of failure a Diagnostic describes.
type Code string

// Well-known diagnostic codes.
const (
	CodeInvalidFrontmatter      Code = "InvalidFrontmatter"
	CodeFrontmatterUnterminated Code = "FrontmatterUnterminated"
	CodeFieldCollision          Code = "FieldCollision"
	CodeMissingRequiredField    Code = "MissingRequiredField"
	CodeFieldTypeMismatch       Code = "FieldTypeMismatch"
	CodeTemplateFailed          Code = "TemplateFailed"
	CodeCompilationFailed       Code = "CompilationFailed"
	CodeDynamicAssetCollision   Code = "DynamicAssetCollision"
	CodeDynamicFontCollision    Code = "DynamicFontCollision"
	CodeUnsupportedBackend      Code = "UnsupportedBackend"
	CodeFormatNotSupported      Code = "FormatNotSupported"
	CodeEngineCreation          Code = "EngineCreation"
	CodeQuillTagMismatch        Code = "QuillTagMismatch"
	CodeQuillAlreadyRegistered  Code = "QuillAlreadyRegistered"
	CodeQuillNotFound           Code = "QuillNotFound"
)

// Location is a primary or related source position: a file path, 1-based
// line and column, and an optional byte span.
type Location struct {
	File string
	Line int
	Col  int
	Span *[2]int
}

// Related is a secondary source location carrying an explanatory label.
type Related struct {
	Location
	Label string
}

// Diagnostic is a structured error or warning value with source location
// and a cause chain. Diagnostics are value types; identity is not
// meaningful, so two Diagnostics with equal fields are interchangeable.
type Diagnostic struct {
	Severity    Severity
	Code        Code
	Message     string
	Primary     *Location
	Related     []Related
	Hint        string
	SourceChain []string
}

// New creates an Error-severity Diagnostic with the given code and message.
func New(code Code, message string) Diagnostic {
	return Diagnostic{Severity: Error, Code: code, Message: message}
}

// Newf creates an Error-severity Diagnostic with a formatted message.
func Newf(code Code, format string, args ...any) Diagnostic {
	return New(code, fmt.Sprintf(format, args...))
}

// Warn creates a Warning-severity Diagnostic with the given code and message.
func Warn(code Code, message string) Diagnostic {
	return Diagnostic{Severity: Warning, Code: code, Message: message}
}

// Warnf creates a Warning-severity Diagnostic with a formatted message.
func Warnf(code Code, format string, args ...any) Diagnostic {
	return Warn(code, fmt.Sprintf(format, args...))
}

// WithPrimary returns a copy of d with its primary location set.
func (d Diagnostic) WithPrimary(file string, line, col int) Diagnostic {
	d.Primary = &Location{File: file, Line: line, Col: col}

	return d
}

// WithHint returns a copy of d with its hint set.
func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint

	return d
}

// WithRelated returns a copy of d with a related location appended.
func (d Diagnostic) WithRelated(file string, line, col int, label string) Diagnostic {
	d.Related = append(append([]Related{}, d.Related...), Related{
		Location: Location{File: file, Line: line, Col: col},
		Label:    label,
	})

	return d
}

// WithCause returns a copy of d with a stringified cause appended to the
// source chain. Causes are pre-stringified (not live error references) so
// Diagnostics remain serializable across process boundaries.
func (d Diagnostic) WithCause(err error) Diagnostic {
	if err == nil {
		return d
	}

	d.SourceChain = append(append([]string{}, d.SourceChain...), err.Error())

	return d
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped anywhere a Go error is expected.
func (d Diagnostic) Error() string {
	var b strings.Builder

	if d.Primary != nil {
		fmt.Fprintf(&b, "%s:%d:%d: ", d.Primary.File, d.Primary.Line, d.Primary.Col)
	}

	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)

	if d.Hint != "" {
		fmt.Fprintf(&b, " (hint: %s)", d.Hint)
	}

	return b.String()
}

// IsFatal reports whether d has Error severity.
func (d Diagnostic) IsFatal() bool {
	return d.Severity == Error
}

// Print writes a human-readable rendering of d to w, matching the CLI
// printer convention: file/line/col, severity tag, message,
// optional hint, related locations with labels, then the source chain as an
// indented list.
func (d Diagnostic) Print(w interface{ WriteString(string) (int, error) }) {
	_, _ = w.WriteString(d.Error() + "\n")

	for _, r := range d.Related {
		_, _ = w.WriteString(fmt.Sprintf("  related: %s:%d:%d: %s\n", r.File, r.Line, r.Col, r.Label))
	}

	for _, cause := range d.SourceChain {
		_, _ = w.WriteString("  caused by: " + cause + "\n")
	}
}

// Diagnostics is an ordered collection, used where a failure carries "a
// collection with a summary count" (e.g. CompilationFailed).
type Diagnostics []Diagnostic

// Error implements the error interface, joining every diagnostic's
// message, whatever its severity, with "; ".
func (ds Diagnostics) Error() string {
	msgs := make([]string, 0, len(ds))
	for _, d := range ds {
		msgs = append(msgs, d.Error())
	}

	return strings.Join(msgs, "; ")
}

// HasFatal reports whether any diagnostic in ds has Error severity.
func (ds Diagnostics) HasFatal() bool {
	for _, d := range ds {
		if d.IsFatal() {
			return true
		}
	}

	return false
}

// Warnings returns the subset of ds with Warning severity, preserving order.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics

	for _, d := range ds {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}

	return out
}
