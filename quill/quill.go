package quill

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/fieldschema"
	"github.com/quillmark-go/quillmark/internal/vfs"
	"github.com/quillmark-go/quillmark/parse"
)

// Quill is a self-contained template package: a manifest, an optional
// primary template source, declarative field schemas for its root document
// and named card collections, and a virtual filesystem covering the
// template, assets, fonts, and any nested packages.
//
// A Quill is immutable once returned by [LoadFromDir], [LoadFromBundle], or
// [LoadFromArchive]. [Quill.Clone] produces the independent, mutable copy a
// [quillmark/workflow.Workflow] owns for the lifetime of one render.
type Quill struct {
	// Name is the manifest's declared name, unique within an
	// [quillmark/engine.Engine].
	Name string
	// Manifest is the parsed `Quill` table.
	Manifest Manifest
	// Template is the primary template source. Empty when AutoOutput is
	// true.
	Template string
	// AutoOutput is true when the manifest omits template_file: the
	// composed source becomes canonical JSON of the normalized field map
	//.
	AutoOutput bool
	// Files is the package's virtual filesystem: template, assets, fonts,
	// and any nested packages, keyed by path relative to the package root.
	Files *vfs.Tree
	// Root is the top-level Field Schema (root Card Schema fields).
	Root []fieldschema.Field
	// Cards maps card name to its Field Schema.
	Cards map[string]fieldschema.CardSchema
	// Schema is the JSON Schema built once at load time from Root.
	Schema *jsonschema.Schema
}

// fromDocument builds and validates a Quill from a parsed manifest document
// and a populated virtual filesystem.
func fromDocument(doc manifestDocument, files *vfs.Tree) (*Quill, error) {
	if !parse.IsValidQuillTag(doc.Quill.Name) {
		return nil, diagnostic.Newf(diagnostic.CodeEngineCreation,
			"manifest name %q is not a well-formed identifier", doc.Quill.Name).
			WithPrimary("Quill.toml", 1, 1)
	}

	if doc.Quill.Backend == "" {
		return nil, diagnostic.New(diagnostic.CodeEngineCreation, "manifest is missing a backend id").
			WithPrimary("Quill.toml", 1, 1)
	}

	root, err := convertFields(doc.Fields)
	if err != nil {
		return nil, asEngineCreation(err)
	}

	cards, err := convertCards(doc.Cards)
	if err != nil {
		return nil, asEngineCreation(err)
	}

	q := &Quill{
		Name:     doc.Quill.Name,
		Manifest: doc.Quill,
		Files:    files,
		Root:     root,
		Cards:    cards,
	}

	if doc.Quill.TemplateFile == "" {
		q.AutoOutput = true
	} else {
		contents, rerr := files.ReadFile(doc.Quill.TemplateFile)
		if rerr != nil {
			return nil, diagnostic.Newf(diagnostic.CodeEngineCreation,
				"declared template_file %q not found in package", doc.Quill.TemplateFile).
				WithPrimary(doc.Quill.TemplateFile, 1, 1).
				WithCause(rerr)
		}

		q.Template = string(contents)
	}

	q.Schema = fieldschema.Build(root)

	return q, nil
}

// asEngineCreation returns err unchanged: a diagnostic.Diagnostic, or, for
// a card or nested field, one wrapped with the card or field name.
func asEngineCreation(err error) error {
	return err
}

// Clone returns an independent copy of q with its own virtual filesystem,
// suitable for a [quillmark/workflow.Workflow] to mutate with dynamic
// assets/fonts without affecting the registered Quill.
func (q *Quill) Clone() (*Quill, error) {
	files, err := q.Files.Clone()
	if err != nil {
		return nil, err
	}

	clone := *q
	clone.Files = files

	return &clone, nil
}
