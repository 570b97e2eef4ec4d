package diagnostic_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/diagnostic"
)

func TestNewIsFatalBySeverity(t *testing.T) {
	d := diagnostic.New(diagnostic.CodeTemplateFailed, "boom")
	assert.True(t, d.IsFatal())

	w := diagnostic.Warn(diagnostic.CodeQuillTagMismatch, "mismatch")
	assert.False(t, w.IsFatal())
}

func TestWithPrimaryAndHint(t *testing.T) {
	d := diagnostic.New(diagnostic.CodeTemplateFailed, "syntax error").
		WithPrimary("letter.typ", 3, 5).
		WithHint("did you forget a closing brace?")

	require.NotNil(t, d.Primary)
	assert.Equal(t, 3, d.Primary.Line)
	assert.Equal(t, 5, d.Primary.Col)
	assert.Contains(t, d.Error(), "letter.typ:3:5")
	assert.Contains(t, d.Error(), "did you forget a closing brace?")
}

func TestWithCausePreservesOrderAndStringifies(t *testing.T) {
	d := diagnostic.New(diagnostic.CodeCompilationFailed, "compile failed").
		WithCause(errors.New("low-level io error")).
		WithCause(errors.New("higher-level wrap"))

	require.Len(t, d.SourceChain, 2)
	assert.Equal(t, "low-level io error", d.SourceChain[0])
	assert.Equal(t, "higher-level wrap", d.SourceChain[1])
}

func TestWithCauseNilIsNoop(t *testing.T) {
	d := diagnostic.New(diagnostic.CodeTemplateFailed, "x").WithCause(nil)
	assert.Empty(t, d.SourceChain)
}

func TestDiagnosticsHasFatal(t *testing.T) {
	ds := diagnostic.Diagnostics{
		diagnostic.Warn(diagnostic.CodeQuillTagMismatch, "warn only"),
	}
	assert.False(t, ds.HasFatal())

	ds = append(ds, diagnostic.New(diagnostic.CodeFieldCollision, "fatal"))
	assert.True(t, ds.HasFatal())
}

func TestDiagnosticsWarningsFiltersBySeverity(t *testing.T) {
	ds := diagnostic.Diagnostics{
		diagnostic.Warn(diagnostic.CodeQuillTagMismatch, "w1"),
		diagnostic.New(diagnostic.CodeFieldCollision, "fatal"),
		diagnostic.Warn(diagnostic.CodeQuillTagMismatch, "w2"),
	}

	warnings := ds.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "w1", warnings[0].Message)
	assert.Equal(t, "w2", warnings[1].Message)
}

func TestMarshalJSONMatchesWireFormat(t *testing.T) {
	d := diagnostic.New(diagnostic.CodeFieldTypeMismatch, "expected string").
		WithPrimary("doc.md", 1, 2).
		WithRelated("doc.md", 5, 1, "first occurrence").
		WithHint("quote the value").
		WithCause(errors.New("root cause"))

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Equal(t, "error", decoded["severity"])
	assert.Equal(t, "FieldTypeMismatch", decoded["code"])
	assert.Equal(t, "expected string", decoded["message"])
	assert.Equal(t, "quote the value", decoded["hint"])

	primary, ok := decoded["primary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "doc.md", primary["file"])

	related, ok := decoded["related"].([]any)
	require.True(t, ok)
	require.Len(t, related, 1)

	chain, ok := decoded["source_chain"].([]any)
	require.True(t, ok)
	require.Len(t, chain, 1)
	assert.Equal(t, "root cause", chain[0])
}

func TestMarshalJSONOmitsEmptyOptionalFields(t *testing.T) {
	d := diagnostic.New(diagnostic.CodeEngineCreation, "bad manifest")

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	_, hasPrimary := decoded["primary"]
	assert.False(t, hasPrimary)

	_, hasHint := decoded["hint"]
	assert.False(t, hasHint)
}
