package engine

import (
	"sync"

	"golang.org/x/exp/maps"

	"github.com/quillmark-go/quillmark/backend"
	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/parse"
	"github.com/quillmark-go/quillmark/quill"
	"github.com/quillmark-go/quillmark/workflow"
)

// DefaultQuillName is the reserved fallback Quill name consulted by
// [Engine.WorkflowFromParsed] when a Parsed Document carries no quill tag
//.
const DefaultQuillName = "__default__"

// Engine is the top-level registry of Backends and Quills. Safe for
// concurrent reads once registration is complete; registration calls must
// be sequenced by the caller.
type Engine struct {
	mu       sync.RWMutex
	backends map[string]backend.Backend
	quills   map[string]*quill.Quill
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{
		backends: make(map[string]backend.Backend),
		quills:   make(map[string]*quill.Quill),
	}
}

// RegisterBackend installs b, replacing any existing entry with the same
// id. If b advertises a default Quill via
// [backend.DefaultProvider] and no Quill named [DefaultQuillName] is
// registered yet, that default Quill is registered automatically.
func (e *Engine) RegisterBackend(b backend.Backend) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.backends[b.ID()] = b

	if _, exists := e.quills[DefaultQuillName]; exists {
		return
	}

	provider, ok := b.(backend.DefaultProvider)
	if !ok {
		return
	}

	e.quills[DefaultQuillName] = provider.ProvidesDefaultQuill()
}

// RegisterQuill installs q under q.Name, failing if that name is already
// registered. The backend id is validated lazily: an unknown
// backend id is accepted here and only fails at workflow-creation time,
// which supports registering Quills and Backends in either order.
func (e *Engine) RegisterQuill(q *quill.Quill) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.quills[q.Name]; exists {
		return diagnostic.Newf(diagnostic.CodeQuillAlreadyRegistered,
			"a quill named %q is already registered", q.Name)
	}

	e.quills[q.Name] = q

	return nil
}

// UnregisterQuill removes the Quill named name, if present. Required
// before re-registering a Quill under the same name.
func (e *Engine) UnregisterQuill(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.quills, name)
}

// RegisteredQuills returns every registered Quill's name.
func (e *Engine) RegisteredQuills() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return maps.Keys(e.quills)
}

// RegisteredBackends returns every registered Backend's id.
func (e *Engine) RegisteredBackends() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return maps.Keys(e.backends)
}

// WorkflowFromQuill binds q to its manifest-declared backend and returns a
// new Workflow. Fails with UnsupportedBackend if that backend id is not
// registered.
func (e *Engine) WorkflowFromQuill(q *quill.Quill) (*workflow.Workflow, error) {
	e.mu.RLock()
	b, ok := e.backends[q.Manifest.Backend]
	e.mu.RUnlock()

	if !ok {
		return nil, diagnostic.Newf(diagnostic.CodeUnsupportedBackend,
			"quill %q declares unregistered backend %q", q.Name, q.Manifest.Backend)
	}

	return workflow.New(q, b)
}

// WorkflowFromName looks up the Quill registered as name and binds it via
// [Engine.WorkflowFromQuill].
func (e *Engine) WorkflowFromName(name string) (*workflow.Workflow, error) {
	e.mu.RLock()
	q, ok := e.quills[name]
	e.mu.RUnlock()

	if !ok {
		return nil, diagnostic.Newf(diagnostic.CodeQuillNotFound, "no quill registered as %q", name)
	}

	return e.WorkflowFromQuill(q)
}

// WorkflowFromParsed selects a Quill from doc.QuillTag, falling back to
// [DefaultQuillName] when doc carries no tag, and binds it.
func (e *Engine) WorkflowFromParsed(doc parse.Document) (*workflow.Workflow, error) {
	name := DefaultQuillName
	if doc.QuillTag != nil {
		name = *doc.QuillTag
	}

	return e.WorkflowFromName(name)
}
