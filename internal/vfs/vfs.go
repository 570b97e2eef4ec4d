package vfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Reserved path prefixes. A Quill's own files may not live under these;
// they are populated only by [Tree.WriteDynamic] for the lifetime of a
// single render.
const (
	DynamicAssetPrefix = "DYNAMIC_ASSET__/"
	DynamicFontPrefix  = "DYNAMIC_FONT__/"
)

var (
	// ErrInvalidPath is returned when a path escapes the tree root, is
	// absolute, or is empty.
	ErrInvalidPath = errors.New("vfs: invalid path")
	// ErrReservedPrefix is returned when a caller tries to write a
	// dynamic-only prefix through the static loader.
	ErrReservedPrefix = errors.New("vfs: path uses a reserved prefix")
)

// Tree is an in-memory, path-safe file tree.
type Tree struct {
	fs afero.Fs
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{fs: afero.NewMemMapFs()}
}

// CleanPath validates and normalizes p: forward slashes only, no "..", no
// leading slash, not empty.
func CleanPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	norm := strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(norm, "/") {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidPath, p)
	}

	clean := path.Clean(norm)
	if clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", fmt.Errorf("%w: %q escapes the tree root", ErrInvalidPath, p)
	}

	return clean, nil
}

// WriteFile validates p and writes data, rejecting the reserved dynamic
// prefixes: static Quill content may not shadow per-render dynamic assets.
func (t *Tree) WriteFile(p string, data []byte) error {
	clean, err := CleanPath(p)
	if err != nil {
		return err
	}

	if strings.HasPrefix(clean, DynamicAssetPrefix) || strings.HasPrefix(clean, DynamicFontPrefix) {
		return fmt.Errorf("%w: %q", ErrReservedPrefix, p)
	}

	return t.writeRaw(clean, data)
}

// WriteDynamic writes data under the given reserved prefix (DynamicAssetPrefix
// or DynamicFontPrefix), used by a Workflow to layer per-render assets and
// fonts on top of the Quill's static tree.
func (t *Tree) WriteDynamic(prefix, name string, data []byte) error {
	clean, err := CleanPath(name)
	if err != nil {
		return err
	}

	return t.writeRaw(prefix+clean, data)
}

func (t *Tree) writeRaw(clean string, data []byte) error {
	if dir := path.Dir(clean); dir != "." {
		if err := t.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("vfs: creating directory %q: %w", dir, err)
		}
	}

	f, err := t.fs.Create(clean)
	if err != nil {
		return fmt.Errorf("vfs: creating %q: %w", clean, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("vfs: writing %q: %w", clean, err)
	}

	return nil
}

// ReadFile returns the contents of the file at p.
func (t *Tree) ReadFile(p string) ([]byte, error) {
	clean, err := CleanPath(p)
	if err != nil {
		return nil, err
	}

	return afero.ReadFile(t.fs, clean)
}

// Exists reports whether a file or directory exists at p.
func (t *Tree) Exists(p string) bool {
	clean, err := CleanPath(p)
	if err != nil {
		return false
	}

	ok, err := afero.Exists(t.fs, clean)

	return err == nil && ok
}

// Remove deletes the file at p, if present. Removing a file that does not
// exist is not an error.
func (t *Tree) Remove(p string) error {
	clean, err := CleanPath(p)
	if err != nil {
		return err
	}

	err = t.fs.Remove(clean)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("vfs: removing %q: %w", clean, err)
	}

	return nil
}

// RemovePrefix deletes every file whose path starts with prefix. Used to
// clear dynamic assets or fonts between renders on a reused Workflow.
func (t *Tree) RemovePrefix(prefix string) error {
	var toRemove []string

	err := afero.Walk(t.fs, ".", func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() {
			return nil
		}

		if strings.HasPrefix(p, prefix) {
			toRemove = append(toRemove, p)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("vfs: walking tree: %w", err)
	}

	for _, p := range toRemove {
		if rmErr := t.fs.Remove(p); rmErr != nil {
			return fmt.Errorf("vfs: removing %q: %w", p, rmErr)
		}
	}

	return nil
}

// Paths returns every regular file path in the tree, sorted.
func (t *Tree) Paths() ([]string, error) {
	var paths []string

	err := afero.Walk(t.fs, ".", func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !info.IsDir() {
			paths = append(paths, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vfs: walking tree: %w", err)
	}

	sort.Strings(paths)

	return paths, nil
}

// Clone returns a deep, independent copy of t.
func (t *Tree) Clone() (*Tree, error) {
	out := New()

	paths, err := t.Paths()
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		data, rerr := afero.ReadFile(t.fs, p)
		if rerr != nil {
			return nil, fmt.Errorf("vfs: reading %q during clone: %w", p, rerr)
		}

		if werr := out.writeRaw(p, data); werr != nil {
			return nil, werr
		}
	}

	return out, nil
}

// LoadDir populates t by recursively copying every regular file under root
// on the host filesystem, preserving relative paths.
func (t *Tree) LoadDir(osFS afero.Fs, root string) error {
	return afero.Walk(osFS, root, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() {
			return nil
		}

		rel, err := relPath(root, p)
		if err != nil {
			return err
		}

		data, err := afero.ReadFile(osFS, p)
		if err != nil {
			return fmt.Errorf("vfs: reading %q: %w", p, err)
		}

		return t.WriteFile(rel, data)
	})
}

func relPath(root, full string) (string, error) {
	rel := strings.TrimPrefix(full, root)
	rel = strings.TrimPrefix(rel, "/")

	if rel == "" {
		return "", fmt.Errorf("%w: %q is the tree root", ErrInvalidPath, full)
	}

	return rel, nil
}

// Reader returns an [io.ReadCloser] for the file at p.
func (t *Tree) Reader(p string) (io.ReadCloser, error) {
	clean, err := CleanPath(p)
	if err != nil {
		return nil, err
	}

	return t.fs.Open(clean)
}
