package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillmark-go/quillmark/fieldschema"
	"github.com/quillmark-go/quillmark/quill"
)

func newSchemaCmd(_ *cliConfig) *cobra.Command {
	var stripUI bool

	cmd := &cobra.Command{
		Use:   "schema <quill-dir>",
		Short: "Print a Quill's root Field Schema as JSON Schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSchema(args[0], stripUI)
		},
	}

	cmd.Flags().BoolVar(&stripUI, "strip-ui", false, "omit renderer-facing x-ui hints from the schema")

	return cmd
}

func runSchema(quillPath string, stripUI bool) error {
	q, err := quill.LoadFromDir(quillPath)
	if err != nil {
		return err
	}

	schema := q.Schema
	if stripUI {
		schema = fieldschema.Build(fieldschema.StripUI(q.Root))
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}

	_, err = fmt.Fprintln(os.Stdout, string(out))

	return err
}
