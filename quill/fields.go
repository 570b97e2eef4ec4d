package quill

import (
	"fmt"

	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/fieldschema"
)

// knownTypes is the recognized `type` vocabulary for a manifest field decl.
var knownTypes = map[string]fieldschema.Type{
	"string":   fieldschema.TypeString,
	"markdown": fieldschema.TypeMarkdown,
	"integer":  fieldschema.TypeInteger,
	"number":   fieldschema.TypeNumber,
	"boolean":  fieldschema.TypeBoolean,
	"date":     fieldschema.TypeDate,
	"enum":     fieldschema.TypeEnum,
	"array":    fieldschema.TypeArray,
	"object":   fieldschema.TypeObject,
}

// convertFields turns manifest field declarations into [fieldschema.Field]
// values, rejecting unrecognized `type` names.
func convertFields(decls []fieldDecl) ([]fieldschema.Field, error) {
	out := make([]fieldschema.Field, 0, len(decls))

	for _, d := range decls {
		f, err := convertField(d)
		if err != nil {
			return nil, err
		}

		out = append(out, f)
	}

	return out, nil
}

func convertField(d fieldDecl) (fieldschema.Field, error) {
	if d.Name == "" {
		return fieldschema.Field{}, diagnostic.New(diagnostic.CodeEngineCreation,
			"field declaration missing a name")
	}

	typ, ok := knownTypes[d.Type]
	if !ok {
		return fieldschema.Field{}, diagnostic.Newf(diagnostic.CodeEngineCreation,
			"field %q declares unknown type %q", d.Name, d.Type)
	}

	f := fieldschema.Field{
		Name:        d.Name,
		Type:        typ,
		Title:       d.Title,
		Description: d.Description,
		Required:    d.Required,
		Default:     d.Default,
		Examples:    d.Examples,
		Enum:        d.Enum,
		UI:          d.UI,
	}

	if typ == fieldschema.TypeArray && d.Items != nil {
		item, err := convertField(*d.Items)
		if err != nil {
			return fieldschema.Field{}, fmt.Errorf("field %q: %w", d.Name, err)
		}

		f.Items = &item
	}

	if typ == fieldschema.TypeObject && len(d.Properties) > 0 {
		props, err := convertFields(d.Properties)
		if err != nil {
			return fieldschema.Field{}, err
		}

		f.Properties = props
	}

	return f, nil
}

// convertCards turns manifest card declarations into named
// [fieldschema.CardSchema] values, keyed by card name.
func convertCards(decls []cardDecl) (map[string]fieldschema.CardSchema, error) {
	out := make(map[string]fieldschema.CardSchema, len(decls))

	for _, d := range decls {
		if d.Name == "" {
			return nil, diagnostic.New(diagnostic.CodeEngineCreation, "card declaration missing a name")
		}

		fields, err := convertFields(d.Fields)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", d.Name, err)
		}

		out[d.Name] = fieldschema.CardSchema{Name: d.Name, Fields: fields}
	}

	return out, nil
}
