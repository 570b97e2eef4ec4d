package quill

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/internal/vfs"
)

const (
	manifestTOMLName = "Quill.toml"
	manifestYAMLName = "Quill.yaml"
)

// LoadFromDir loads a Quill from a directory on the host filesystem.
func LoadFromDir(root string) (*Quill, error) {
	files := vfs.New()
	if err := files.LoadDir(afero.NewOsFs(), root); err != nil {
		return nil, diagnostic.Newf(diagnostic.CodeEngineCreation, "reading package directory %q", root).
			WithPrimary(root, 1, 1).
			WithCause(err)
	}

	doc, err := readManifest(files)
	if err != nil {
		return nil, err
	}

	return fromDocument(doc, files)
}

// bundleFile is one entry of a [LoadFromBundle] JSON bundle's "files" map.
type bundleFile struct {
	Contents string `json:"contents"`
	Base64   bool   `json:"base64"`
}

// bundleDocument is the shape of an in-memory JSON bundle: a flat
// "files" map keyed by path relative to the package root.
type bundleDocument struct {
	Files map[string]bundleFile `json:"files"`
}

// LoadFromBundle loads a Quill from an in-memory JSON bundle:
//
//	{ "files": { "<relative/path>": { "contents": "<utf-8 or base64>" } } }
//
// A file entry is treated as base64 when its "base64" key is true;
// otherwise contents are taken as UTF-8 text verbatim.
func LoadFromBundle(data []byte) (*Quill, error) {
	var bundle bundleDocument

	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, diagnostic.New(diagnostic.CodeEngineCreation, "invalid bundle JSON").
			WithCause(err)
	}

	files := vfs.New()

	for path, f := range bundle.Files {
		raw, err := decodeBundleFile(f)
		if err != nil {
			return nil, diagnostic.Newf(diagnostic.CodeEngineCreation, "decoding bundle file %q", path).
				WithPrimary(path, 1, 1).
				WithCause(err)
		}

		if err := files.WriteFile(path, raw); err != nil {
			return nil, diagnostic.Newf(diagnostic.CodeEngineCreation, "invalid bundle path %q", path).
				WithPrimary(path, 1, 1).
				WithCause(err)
		}
	}

	doc, err := readManifest(files)
	if err != nil {
		return nil, err
	}

	return fromDocument(doc, files)
}

func decodeBundleFile(f bundleFile) ([]byte, error) {
	if !f.Base64 {
		return []byte(f.Contents), nil
	}

	return base64.StdEncoding.DecodeString(f.Contents)
}

// archiveDocument is the shape of a TOML+files archive: the manifest
// table, field/card declarations, and a "files" table in one document, used
// where shipping a directory tree is inconvenient (e.g. embedding a Quill
// in a single config value).
type archiveDocument struct {
	manifestDocument

	Files map[string]bundleFile `toml:"files"`
}

// LoadFromArchive loads a Quill from a single TOML document that embeds its
// manifest, field/card schemas, and file contents together.
func LoadFromArchive(data []byte) (*Quill, error) {
	var archive archiveDocument

	if _, err := toml.Decode(string(data), &archive); err != nil {
		return nil, diagnostic.New(diagnostic.CodeEngineCreation, "invalid archive TOML").
			WithCause(err)
	}

	files := vfs.New()

	for path, f := range archive.Files {
		raw, err := decodeBundleFile(f)
		if err != nil {
			return nil, diagnostic.Newf(diagnostic.CodeEngineCreation, "decoding archive file %q", path).
				WithPrimary(path, 1, 1).
				WithCause(err)
		}

		if err := files.WriteFile(path, raw); err != nil {
			return nil, diagnostic.Newf(diagnostic.CodeEngineCreation, "invalid archive path %q", path).
				WithPrimary(path, 1, 1).
				WithCause(err)
		}
	}

	return fromDocument(archive.manifestDocument, files)
}

// readManifest locates Quill.toml or Quill.yaml at the package root and
// parses it into a [manifestDocument].
func readManifest(files *vfs.Tree) (manifestDocument, error) {
	if files.Exists(manifestTOMLName) {
		raw, err := files.ReadFile(manifestTOMLName)
		if err != nil {
			return manifestDocument{}, diagnostic.New(diagnostic.CodeEngineCreation, "reading "+manifestTOMLName).
				WithCause(err)
		}

		var doc manifestDocument

		if _, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil {
			return manifestDocument{}, diagnostic.New(diagnostic.CodeEngineCreation, "invalid "+manifestTOMLName).
				WithPrimary(manifestTOMLName, 1, 1).
				WithCause(err)
		}

		return doc, nil
	}

	if files.Exists(manifestYAMLName) {
		raw, err := files.ReadFile(manifestYAMLName)
		if err != nil {
			return manifestDocument{}, diagnostic.New(diagnostic.CodeEngineCreation, "reading "+manifestYAMLName).
				WithCause(err)
		}

		var doc manifestDocument

		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return manifestDocument{}, diagnostic.New(diagnostic.CodeEngineCreation, "invalid "+manifestYAMLName).
				WithPrimary(manifestYAMLName, 1, 1).
				WithCause(err)
		}

		return doc, nil
	}

	return manifestDocument{}, diagnostic.Newf(diagnostic.CodeEngineCreation,
		"package is missing %s or %s", manifestTOMLName, manifestYAMLName)
}
