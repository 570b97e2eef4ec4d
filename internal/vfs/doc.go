// Package vfs is the in-memory, path-safe file tree backing a [quill.Quill]
// and, per render, the dynamic assets and fonts layered onto it. A [Tree]
// keeps its files in an unexported [afero.MemMapFs] and exposes them only
// through its own methods (ReadFile, Exists, Paths, WriteFile, and so on);
// [Tree.LoadDir] copies an on-disk Quill tree into memory, so a Tree is
// always in memory whether it came from a directory or a bundle.
package vfs
