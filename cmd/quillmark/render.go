package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillmark-go/quillmark/backend"
	"github.com/quillmark-go/quillmark/backend/txtbackend"
	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/engine"
	"github.com/quillmark-go/quillmark/parse"
	"github.com/quillmark-go/quillmark/quill"
)

func newRenderCmd(cfg *cliConfig) *cobra.Command {
	var (
		quillPath string
		format    string
		output    string
		progress  bool
	)

	cmd := &cobra.Command{
		Use:   "render [flags] <document.md>",
		Short: "Render a Markdown document through a Quill package",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRender(cfg, quillPath, format, output, progress, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&quillPath, "quill", "", "path to a Quill package directory (required unless the document names a registered default)")
	flags.StringVar(&format, "format", "", "requested output format (backend-specific; defaults to the backend's first supported format)")
	flags.StringVarP(&output, "output", "o", "-", "output file, or - for stdout")
	flags.BoolVar(&progress, "progress", false, "stream render diagnostics to a live log as they are produced")

	return cmd
}

func runRender(cfg *cliConfig, quillPath, format, output string, progress bool, inputPath string) error {
	e := engine.New()
	e.RegisterBackend(txtbackend.New())

	if quillPath != "" {
		q, err := quill.LoadFromDir(quillPath)
		if err != nil {
			return err
		}

		if err := e.RegisterQuill(q); err != nil {
			return err
		}
	}

	raw, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	doc, err := parse.Decompose(string(raw))
	if err != nil {
		return err
	}

	wf, err := e.WorkflowFromParsed(doc)
	if err != nil {
		return err
	}

	cfg.logger.Debug("workflow bound",
		"quill", wf.QuillName(),
		"backend", wf.BackendID(),
		"render_id", wf.RenderID(),
	)

	var (
		stream *diagnostic.Stream
		stop   func()
	)

	if progress {
		stream, stop = startDiagnosticStream()
		defer stop()
	}

	var formatPtr *backend.Format

	if format != "" {
		f := backend.Format(format)
		formatPtr = &f
	}

	result, err := wf.Render(doc, formatPtr)
	if err != nil {
		if d, ok := err.(diagnostic.Diagnostic); ok {
			d.Print(os.Stderr)
		}

		return err
	}

	for _, w := range result.Warnings {
		if stream != nil {
			stream.Publish(w)
		}

		w.Print(os.Stderr)
	}

	if len(result.Artifacts) == 0 {
		return nil
	}

	return writeOutput(output, result.Artifacts[0].Bytes)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)

		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec // CLI output path is user-supplied by design.
}
