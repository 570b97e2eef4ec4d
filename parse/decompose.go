package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/quillmark-go/quillmark/diagnostic"
)

const delimiter = "---"

// Decompose splits Markdown into frontmatter fields,
// body, and zero or more tagged card collections. On success the returned
// Document always carries a "body" field (possibly empty). On failure the
// error is a [diagnostic.Diagnostic] with code InvalidFrontmatter,
// FrontmatterUnterminated or FieldCollision and, where known, the offending
// line/column.
func Decompose(markdown string) (Document, error) {
	doc := NewDocument()

	frontmatter, bodyStart, err := splitPrimaryFrontmatter(markdown)
	if err != nil {
		return Document{}, err
	}

	if frontmatter != "" {
		order, values, quillTag, perr := parseFrontmatterMapping(frontmatter)
		if perr != nil {
			return Document{}, perr
		}

		for _, name := range order {
			doc.Set(name, NewValue(values[name]))
		}

		doc.QuillTag = quillTag
	}

	rest := markdown[bodyStart:]

	primaryBody, cards, err := splitCards(rest, doc)
	if err != nil {
		return Document{}, err
	}

	doc.Set(BodyField, NewValue(primaryBody))
	doc.Cards = cards

	return doc, nil
}

// SplitFrontmatter returns the raw YAML text of markdown's primary
// frontmatter block (empty if there is none) and the remaining document
// text. Unlike [Decompose] it does not parse the YAML, so comments and
// formatting survive for tools that inspect the block as written.
func SplitFrontmatter(markdown string) (frontmatter, rest string, err error) {
	fm, bodyStart, err := splitPrimaryFrontmatter(markdown)
	if err != nil {
		return "", "", err
	}

	return fm, markdown[bodyStart:], nil
}

// splitPrimaryFrontmatter locates the primary "---\n...\n---\n" block, if
// any, and returns its raw YAML text plus the byte offset where the
// remaining document text (body + card blocks) begins.
func splitPrimaryFrontmatter(markdown string) (frontmatter string, bodyStart int, err error) {
	if !strings.HasPrefix(markdown, delimiter+"\n") {
		return "", 0, nil
	}

	searchFrom := len(delimiter) + 1

	closeStart, closeEnd, found := findClosingDelimiterLine(markdown, searchFrom)
	if !found {
		return "", 0, diagnostic.New(
			diagnostic.CodeFrontmatterUnterminated,
			"frontmatter opened with '---' but never closed",
		).WithPrimary("<markdown>", 1, 1)
	}

	frontmatter = markdown[searchFrom:closeStart]

	return frontmatter, closeEnd, nil
}

// findClosingDelimiterLine scans markdown starting at offset from for a
// line exactly equal to "---", returning the line's start offset and the
// offset immediately following its trailing newline (or end of string if
// the file ends without one).
func findClosingDelimiterLine(markdown string, from int) (start, end int, found bool) {
	pos := from

	for pos <= len(markdown) {
		nlIdx := strings.IndexByte(markdown[pos:], '\n')

		var rawLine string

		var lineEnd int

		if nlIdx == -1 {
			rawLine = markdown[pos:]
			lineEnd = len(markdown)
		} else {
			rawLine = markdown[pos : pos+nlIdx]
			lineEnd = pos + nlIdx + 1
		}

		trimmed := strings.TrimSuffix(rawLine, "\r")

		if trimmed == delimiter {
			return pos, lineEnd, true
		}

		if nlIdx == -1 {
			break
		}

		pos = lineEnd
	}

	return 0, 0, false
}

// parseFrontmatterMapping parses a frontmatter YAML block, extracts the
// reserved QUILL key, and returns the remaining fields in source order.
func parseFrontmatterMapping(raw string) (order []string, values map[string]any, quillTag *string, err error) {
	order, values, perr := parseOrderedMapping([]byte(raw))
	if perr != nil {
		return nil, nil, nil, perr
	}

	if qv, ok := values[QuillField]; ok {
		switch t := qv.(type) {
		case nil:
			// QUILL: null is permitted; quillTag stays unset.
		case string:
			if !IsValidQuillTag(t) {
				return nil, nil, nil, diagnostic.Newf(
					diagnostic.CodeInvalidFrontmatter,
					"QUILL value %q is not a well-formed identifier", t,
				)
			}

			quillTag = &t
		default:
			return nil, nil, nil, diagnostic.New(
				diagnostic.CodeInvalidFrontmatter,
				"QUILL must be a string or null",
			)
		}

		delete(values, QuillField)
		order = removeName(order, QuillField)
	}

	return order, values, quillTag, nil
}

// parseOrderedMapping parses data as a single-document YAML mapping,
// returning its top-level keys in source order and their decoded values.
// Non-mapping top-level YAML is an error. Empty/blank input yields an empty
// mapping.
func parseOrderedMapping(data []byte) (order []string, values map[string]any, err error) {
	if isBlankYAML(data) {
		return nil, map[string]any{}, nil
	}

	file, perr := parser.ParseBytes(data, parser.ParseComments)
	if perr != nil {
		line, col := extractYAMLPosition(perr)

		return nil, nil, diagnostic.Newf(diagnostic.CodeInvalidFrontmatter, "invalid YAML: %v", perr).
			WithPrimary("<frontmatter>", line, col).
			WithCause(perr)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, map[string]any{}, nil
	}

	order, err = orderedKeys(file.Docs[0].Body)
	if err != nil {
		return nil, nil, err
	}

	var decoded map[string]any

	if derr := yaml.Unmarshal(data, &decoded); derr != nil {
		line, col := extractYAMLPosition(derr)

		return nil, nil, diagnostic.Newf(diagnostic.CodeInvalidFrontmatter, "invalid YAML: %v", derr).
			WithPrimary("<frontmatter>", line, col).
			WithCause(derr)
	}

	if decoded == nil {
		decoded = map[string]any{}
	}

	return order, decoded, nil
}

// orderedKeys walks a mapping AST node and returns its top-level keys in
// source order. Decoding alone loses the order; the AST keeps it.
func orderedKeys(node ast.Node) ([]string, error) {
	switch n := node.(type) {
	case *ast.MappingNode:
		keys := make([]string, 0, len(n.Values))
		for _, mvn := range n.Values {
			keys = append(keys, cleanKey(mvn.Key.String()))
		}

		return keys, nil
	case *ast.MappingValueNode:
		return []string{cleanKey(n.Key.String())}, nil
	case *ast.NullNode:
		return nil, nil
	default:
		tok := n.GetToken()
		line, col := 1, 1

		if tok != nil && tok.Position != nil {
			line, col = tok.Position.Line, tok.Position.Column
		}

		return nil, diagnostic.New(diagnostic.CodeInvalidFrontmatter, "frontmatter must be a YAML mapping").
			WithPrimary("<frontmatter>", line, col)
	}
}

// cleanKey strips surrounding quotes a YAML scalar key's String() may carry.
func cleanKey(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}

	return s
}

func removeName(names []string, name string) []string {
	out := names[:0]

	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}

	return out
}

func isBlankYAML(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return false
		}
	}

	return true
}

var yamlLinePattern = regexp.MustCompile(`(?i)line[^0-9]*(\d+)(?:[^0-9]+(?:column|col)[^0-9]*(\d+))?`)

// extractYAMLPosition best-effort extracts a 1-based line/column from a
// goccy/go-yaml error message. Returns (1, 1) if no position is found.
func extractYAMLPosition(err error) (line, col int) {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 1, 1
	}

	line, _ = strconv.Atoi(m[1])
	if line == 0 {
		line = 1
	}

	col = 1
	if m[2] != "" {
		if c, cerr := strconv.Atoi(m[2]); cerr == nil && c > 0 {
			col = c
		}
	}

	return line, col
}
