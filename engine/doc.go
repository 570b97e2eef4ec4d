// Package engine implements the top-level Engine: the
// registry of Backends (keyed by id) and named Quills, and the factory
// that turns a bound Quill+Backend pair into a [quillmark/workflow.Workflow].
package engine
