// Package mdtest builds Markdown fixtures for tests. Frontmatter and card
// blocks are newline-sensitive, so fixtures are assembled from explicit
// lines rather than raw string literals with embedded escapes.
package mdtest

import "strings"

// Lines joins each line with LF and appends a trailing LF.
//
//	mdtest.Lines("a", "b") // -> "a\nb\n"
func Lines(lines ...string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Frontmatter wraps the given YAML lines in a "---" delimited block.
//
//	mdtest.Frontmatter("title: Hello") // -> "---\ntitle: Hello\n---\n"
func Frontmatter(yamlLines ...string) string {
	parts := make([]string, 0, len(yamlLines)+2)
	parts = append(parts, "---")
	parts = append(parts, yamlLines...)
	parts = append(parts, "---")

	return Lines(parts...)
}

// Card builds a card directive block: a frontmatter block opening with
// "CARD: <name>", followed by the card's body text verbatim.
func Card(name string, yamlLines []string, body string) string {
	header := append([]string{"CARD: " + name}, yamlLines...)

	return Frontmatter(header...) + body
}

// Doc concatenates a frontmatter block, a body, and any card blocks into
// one Markdown document.
func Doc(frontmatter, body string, cards ...string) string {
	var sb strings.Builder

	sb.WriteString(frontmatter)
	sb.WriteString(body)

	for _, card := range cards {
		sb.WriteString(card)
	}

	return sb.String()
}
