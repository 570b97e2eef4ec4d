package main

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/normalize"
	"github.com/quillmark-go/quillmark/parse"
	"github.com/quillmark-go/quillmark/quill"
)

func newValidateCmd(_ *cliConfig) *cobra.Command {
	var tui bool

	cmd := &cobra.Command{
		Use:   "validate <quill-dir> <document.md>",
		Short: "Normalize a document against a Quill's schema and report Diagnostics",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], args[1], tui)
		},
	}

	cmd.Flags().BoolVar(&tui, "tui", true, "show an interactive diagnostics tree when connected to a terminal")

	return cmd
}

func runValidate(quillPath, docPath string, tui bool) error {
	q, err := quill.LoadFromDir(quillPath)
	if err != nil {
		return err
	}

	raw, err := readInput(docPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", docPath, err)
	}

	doc, err := parse.Decompose(string(raw))
	if err != nil {
		return err
	}

	_, diags, normErr := normalize.Normalize(doc, q.Root, q.Cards)

	var fatal *diagnostic.Diagnostic

	if normErr != nil {
		if d, ok := normErr.(diagnostic.Diagnostic); ok {
			fatal = &d
		} else {
			return normErr
		}
	}

	if tui && term.IsTerminal(int(os.Stdout.Fd())) {
		return runValidateTUI(fatal, diags)
	}

	for _, d := range diags {
		d.Print(os.Stderr)
	}

	if fatal != nil {
		fatal.Print(os.Stderr)

		return fatal
	}

	fmt.Println("ok: no diagnostics")

	return nil
}

// diagnosticsModel is the bubbletea model for an interactive Diagnostics
// tree: plain fields, an Init that does nothing, an Update that only
// reacts to key presses and resize, and a View that renders a string buffer.
type diagnosticsModel struct {
	rows     []string
	cursor   int
	cols     int
	height   int
	quitting bool
}

var (
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

func newDiagnosticsModel(fatal *diagnostic.Diagnostic, diags []diagnostic.Diagnostic) *diagnosticsModel {
	rows := make([]string, 0, len(diags)+1)

	if fatal != nil {
		rows = append(rows, renderDiagnosticRow(*fatal))
	}

	for _, d := range diags {
		rows = append(rows, renderDiagnosticRow(d))
	}

	if len(rows) == 0 {
		rows = append(rows, "no diagnostics")
	}

	return &diagnosticsModel{rows: rows}
}

func renderDiagnosticRow(d diagnostic.Diagnostic) string {
	style := warnStyle
	if d.IsFatal() {
		style = errorStyle
	}

	line := style.Render(fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message))

	if d.Hint != "" {
		line += "\n  " + hintStyle.Render(d.Hint)
	}

	return line
}

func (m *diagnosticsModel) Init() tea.Cmd {
	return nil
}

func (m *diagnosticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true

			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}

	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m *diagnosticsModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("Diagnostics (%d) — up/down to browse, q to quit\n\n", len(m.rows)))

	for i, row := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}

		b.WriteString(prefix + row + "\n")
	}

	return tea.NewView(b.String())
}

func runValidateTUI(fatal *diagnostic.Diagnostic, diags []diagnostic.Diagnostic) error {
	p := tea.NewProgram(newDiagnosticsModel(fatal, diags))

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("running diagnostics TUI: %w", err)
	}

	if fatal != nil {
		return fatal
	}

	return nil
}
