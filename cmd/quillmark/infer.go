package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/quillmark-go/quillmark/fieldschema"
	"github.com/quillmark-go/quillmark/parse"
	"github.com/quillmark-go/quillmark/schemainfer"
)

func newInferCmd(_ *cliConfig) *cobra.Command {
	var (
		asJSON   bool
		defaults bool
		examples bool
	)

	cmd := &cobra.Command{
		Use:   "infer <document.md> [<document.md>...]",
		Short: "Propose a fields table from sample documents' frontmatter",
		Long: `infer reads sample Markdown documents' frontmatter and proposes Field Schema
declarations, for pasting into a new Quill manifest's fields table. YAML
comments on frontmatter keys become field descriptions; multiple samples are
merged, widening each field's type across its observed values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInfer(args, asJSON, defaults, examples)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&asJSON, "json", false, "print the built JSON Schema instead of a manifest fields table")
	flags.BoolVar(&defaults, "defaults", false, "record observed scalar values as field defaults")
	flags.BoolVar(&examples, "examples", true, "record observed scalar values as field examples")

	return cmd
}

func runInfer(docPaths []string, asJSON, defaults, examples bool) error {
	inf := schemainfer.New(
		schemainfer.WithDefaults(defaults),
		schemainfer.WithExamples(examples),
	)

	var merged []fieldschema.Field

	for i, path := range docPaths {
		raw, err := readInput(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		frontmatter, _, err := parse.SplitFrontmatter(string(raw))
		if err != nil {
			return err
		}

		fields, err := inf.Infer([]byte(frontmatter))
		if err != nil {
			return fmt.Errorf("inferring from %s: %w", path, err)
		}

		if i == 0 {
			merged = fields
		} else {
			merged = schemainfer.Merge(merged, fields)
		}
	}

	if asJSON {
		out, err := json.MarshalIndent(fieldschema.Build(merged), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling inferred schema: %w", err)
		}

		_, err = fmt.Fprintln(os.Stdout, string(out))

		return err
	}

	return writeFieldsTOML(os.Stdout, merged)
}

// inferredField is the manifest-shaped TOML view of an inferred field.
type inferredField struct {
	Name        string          `toml:"name"`
	Type        string          `toml:"type"`
	Description string          `toml:"description,omitempty"`
	Default     any             `toml:"default,omitempty"`
	Examples    []any           `toml:"examples,omitempty"`
	Items       *inferredField  `toml:"items,omitempty"`
	Properties  []inferredField `toml:"properties,omitempty"`
}

func toInferred(fields []fieldschema.Field) []inferredField {
	out := make([]inferredField, 0, len(fields))

	for _, f := range fields {
		inf := inferredField{
			Name:        f.Name,
			Type:        string(f.Type),
			Description: f.Description,
			Default:     f.Default,
			Examples:    f.Examples,
		}

		if f.Items != nil {
			item := toInferred([]fieldschema.Field{*f.Items})[0]
			inf.Items = &item
		}

		if len(f.Properties) > 0 {
			inf.Properties = toInferred(f.Properties)
		}

		out = append(out, inf)
	}

	return out
}

func writeFieldsTOML(w *os.File, fields []fieldschema.Field) error {
	doc := struct {
		Fields []inferredField `toml:"fields"`
	}{Fields: toInferred(fields)}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encoding fields table: %w", err)
	}

	return nil
}
