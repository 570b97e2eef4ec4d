package workflow

import "github.com/quillmark-go/quillmark/parse"

// contextFromDocument flattens a normalized Document into the plain
// map[string]any a [quillmark/glue.Glue] template executes against: each
// top-level field by name, plus each card collection as a list of maps
// (one per card element, including that element's own "body").
func contextFromDocument(doc parse.Document) map[string]any {
	ctx := make(map[string]any, doc.Len()+len(doc.Cards))

	for _, f := range doc.Fields() {
		ctx[f.Name] = f.Value.Raw()
	}

	for name, elements := range doc.Cards {
		list := make([]any, len(elements))
		for i, el := range elements {
			list[i] = documentToMap(el)
		}

		ctx[name] = list
	}

	return ctx
}

func documentToMap(doc parse.Document) map[string]any {
	out := make(map[string]any, doc.Len())
	for _, f := range doc.Fields() {
		out[f.Name] = f.Value.Raw()
	}

	return out
}
