package backend_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/backend"
	"github.com/quillmark-go/quillmark/diagnostic"
)

func TestRenderResultMarshalsWireShape(t *testing.T) {
	r := backend.RenderResult{
		Artifacts: []backend.Artifact{{Bytes: []byte("hello"), Format: backend.Txt}},
		Warnings: []diagnostic.Diagnostic{
			diagnostic.Warn(diagnostic.CodeQuillTagMismatch, "tag mismatch"),
		},
	}

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	artifacts, ok := decoded["artifacts"].([]any)
	require.True(t, ok)
	require.Len(t, artifacts, 1)

	first := artifacts[0].(map[string]any)
	assert.Equal(t, "aGVsbG8=", first["bytes"])
	assert.Equal(t, "txt", first["output_format"])

	warnings, ok := decoded["warnings"].([]any)
	require.True(t, ok)
	require.Len(t, warnings, 1)
}

func TestRenderResultEmptyArraysNeverNull(t *testing.T) {
	b, err := json.Marshal(backend.RenderResult{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"artifacts":[],"warnings":[]}`, string(b))
}

func TestArtifactRoundTrip(t *testing.T) {
	a := backend.Artifact{Bytes: []byte{0x25, 0x50, 0x44, 0x46}, Format: backend.Pdf}

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var back backend.Artifact
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, a, back)
}
