package diagnostic

import "encoding/json"

// wireLocation is the external JSON shape of a [Location].
type wireLocation struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
	Span *[2]int `json:"span,omitempty"`
}

// wireRelated is the JSON shape of a [Related] location.
type wireRelated struct {
	wireLocation
	Label string `json:"label"`
}

// wireDiagnostic is the external serialization of a [Diagnostic]:
// { severity, code?, message, primary?, related, hint?, source_chain }.
type wireDiagnostic struct {
	Severity    string        `json:"severity"`
	Code        string        `json:"code,omitempty"`
	Message     string        `json:"message"`
	Primary     *wireLocation `json:"primary,omitempty"`
	Related     []wireRelated `json:"related"`
	Hint        string        `json:"hint,omitempty"`
	SourceChain []string      `json:"source_chain"`
}

// MarshalJSON implements [json.Marshaler] for the external wire format.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	w := wireDiagnostic{
		Severity:    d.Severity.String(),
		Code:        string(d.Code),
		Message:     d.Message,
		Hint:        d.Hint,
		Related:     make([]wireRelated, 0, len(d.Related)),
		SourceChain: d.SourceChain,
	}

	if d.Primary != nil {
		w.Primary = &wireLocation{File: d.Primary.File, Line: d.Primary.Line, Col: d.Primary.Col, Span: d.Primary.Span}
	}

	for _, r := range d.Related {
		w.Related = append(w.Related, wireRelated{
			wireLocation: wireLocation{File: r.File, Line: r.Line, Col: r.Col, Span: r.Span},
			Label:        r.Label,
		})
	}

	if w.SourceChain == nil {
		w.SourceChain = []string{}
	}

	return json.Marshal(w)
}
