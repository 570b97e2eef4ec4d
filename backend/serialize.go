package backend

import (
	"encoding/base64"
	"encoding/json"

	"github.com/quillmark-go/quillmark/diagnostic"
)

// wireArtifact is the external JSON shape of an [Artifact]: bytes are
// base64 so a PDF can cross a process or language-binding boundary.
type wireArtifact struct {
	Bytes        string `json:"bytes"`
	OutputFormat string `json:"output_format"`
}

// MarshalJSON implements [json.Marshaler] for the external wire format.
func (a Artifact) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireArtifact{
		Bytes:        base64.StdEncoding.EncodeToString(a.Bytes),
		OutputFormat: string(a.Format),
	})
}

// UnmarshalJSON implements [json.Unmarshaler] for the external wire format.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	var w wireArtifact

	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(w.Bytes)
	if err != nil {
		return err
	}

	a.Bytes = raw
	a.Format = Format(w.OutputFormat)

	return nil
}

// MarshalJSON implements [json.Marshaler]: artifacts and warnings are
// always present as arrays, never null, so consumers can index without a
// presence check.
func (r RenderResult) MarshalJSON() ([]byte, error) {
	artifacts := r.Artifacts
	if artifacts == nil {
		artifacts = []Artifact{}
	}

	warnings := r.Warnings
	if warnings == nil {
		warnings = []diagnostic.Diagnostic{}
	}

	return json.Marshal(struct {
		Artifacts []Artifact              `json:"artifacts"`
		Warnings  []diagnostic.Diagnostic `json:"warnings"`
	}{Artifacts: artifacts, Warnings: warnings})
}
