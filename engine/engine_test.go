package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/backend/txtbackend"
	"github.com/quillmark-go/quillmark/engine"
	"github.com/quillmark-go/quillmark/fieldschema"
	"github.com/quillmark-go/quillmark/internal/vfs"
	"github.com/quillmark-go/quillmark/parse"
	"github.com/quillmark-go/quillmark/quill"
)

func fooQuill() *quill.Quill {
	return &quill.Quill{
		Name:       "foo",
		Manifest:   quill.Manifest{Name: "foo", Backend: "txt"},
		AutoOutput: true,
		Files:      vfs.New(),
		Schema:     fieldschema.Build(nil),
	}
}

func TestWorkflowFromParsedUsesQuillTag(t *testing.T) {
	e := engine.New()
	e.RegisterBackend(txtbackend.New())
	require.NoError(t, e.RegisterQuill(fooQuill()))

	doc, err := parse.Decompose("---\nQUILL: foo\n---\nbody")
	require.NoError(t, err)

	wf, err := e.WorkflowFromParsed(doc)
	require.NoError(t, err)
	assert.Equal(t, "foo", wf.QuillName())
}

func TestWorkflowFromParsedFallsBackToDefault(t *testing.T) {
	e := engine.New()
	e.RegisterBackend(txtbackend.New())

	doc, err := parse.Decompose("body only")
	require.NoError(t, err)

	wf, err := e.WorkflowFromParsed(doc)
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultQuillName, wf.QuillName())
}

func TestRegisterQuillRejectsDuplicateName(t *testing.T) {
	e := engine.New()
	require.NoError(t, e.RegisterQuill(fooQuill()))

	err := e.RegisterQuill(fooQuill())
	require.Error(t, err)
}

func TestRegisterQuillAllowsUnregisteredBackendLazily(t *testing.T) {
	e := engine.New()

	q := &quill.Quill{
		Name:       "bar",
		Manifest:   quill.Manifest{Name: "bar", Backend: "does-not-exist"},
		AutoOutput: true,
		Files:      vfs.New(),
		Schema:     fieldschema.Build(nil),
	}

	require.NoError(t, e.RegisterQuill(q))

	_, err := e.WorkflowFromName("bar")
	require.Error(t, err)
}
