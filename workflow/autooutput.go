package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/quillmark-go/quillmark/parse"
)

// autoOutputJSON implements auto-output mode: a Quill with no template composes
// to canonical JSON of its normalized field map. encoding/json sorts
// map[string]any keys when marshaling, which is what makes this
// deterministic across runs: compose output is valid
// JSON and parses back to a mapping equal to the normalized field map.
func autoOutputJSON(doc parse.Document) (string, error) {
	b, err := json.Marshal(contextFromDocument(doc))
	if err != nil {
		return "", fmt.Errorf("workflow: marshaling auto-output JSON: %w", err)
	}

	return string(b), nil
}
