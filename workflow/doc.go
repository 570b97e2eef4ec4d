// Package workflow implements the Workflow: the per-render object that
// binds a cloned Quill to a Backend, accepts dynamic assets and fonts,
// and carries a Parsed Document through normalization, composition, and
// backend compilation to a RenderResult.
//
// A Workflow is owned by a single caller for the lifetime of one render;
// [New] clones the bound Quill's virtual filesystem so per-render
// asset/font injection never mutates the registered package.
package workflow
