package parse

import (
	"regexp"
	"strings"

	"github.com/quillmark-go/quillmark/diagnostic"
)

var cardHeaderPattern = regexp.MustCompile(`^CARD:\s*(\S.*?)\s*$`)

// cardBlock is a located, well-formed "---\nCARD: name\n...\n---\n" header,
// with its frontmatter fields already parsed (CARD key removed).
type cardBlock struct {
	name        string
	order       []string
	values      map[string]any
	headerStart int // offset, in `rest`, of the opening "---" line
	bodyStart   int // offset, in `rest`, immediately after the closing "---" line
}

// splitCards scans the text following the primary frontmatter for card
// directive blocks, validates the collision rule against doc's
// already-populated top-level fields, and returns the primary body plus
// the resulting card collections.
func splitCards(rest string, doc Document) (primaryBody string, cards map[string][]Document, err error) {
	blocks, err := scanCardBlocks(rest, doc)
	if err != nil {
		return "", nil, err
	}

	if len(blocks) == 0 {
		return rest, nil, nil
	}

	primaryBody = rest[:blocks[0].headerStart]
	cards = make(map[string][]Document)

	for i, b := range blocks {
		bodyEnd := len(rest)
		if i+1 < len(blocks) {
			bodyEnd = blocks[i+1].headerStart
		}

		cardDoc := NewDocument()
		for _, name := range b.order {
			cardDoc.Set(name, NewValue(b.values[name]))
		}

		cardDoc.Set(BodyField, NewValue(rest[b.bodyStart:bodyEnd]))

		cards[b.name] = append(cards[b.name], cardDoc)
	}

	return primaryBody, cards, nil
}

// scanCardBlocks walks rest line by line looking for "---" lines that begin
// a well-formed CARD directive. A "---" line not immediately followed by a
// "CARD: <name>" line, or not followed eventually by a closing "---" line,
// is not a card block and is left as ordinary text: embedded "---" lines
// that do not begin a well-formed card block are retained verbatim.
func scanCardBlocks(rest string, doc Document) ([]cardBlock, error) {
	var blocks []cardBlock

	pos := 0

	for pos < len(rest) {
		lineEnd := lineEndAt(rest, pos)
		line := strings.TrimSuffix(rest[pos:lineEnd], "\n")
		line = strings.TrimSuffix(line, "\r")

		if line != delimiter {
			pos = lineEnd

			continue
		}

		headerStart := pos
		afterHeader := lineEnd

		nextLineEnd := lineEndAt(rest, afterHeader)
		nextLine := strings.TrimSuffix(rest[afterHeader:nextLineEnd], "\n")
		nextLine = strings.TrimSuffix(nextLine, "\r")

		m := cardHeaderPattern.FindStringSubmatch(nextLine)
		if m == nil {
			pos = lineEnd

			continue
		}

		closeStart, closeEnd, found := findClosingDelimiterLine(rest, afterHeader)
		if !found {
			pos = lineEnd

			continue
		}

		frontmatter := rest[afterHeader:closeStart]

		order, values, perr := parseOrderedMapping([]byte(frontmatter))
		if perr != nil {
			pos = lineEnd

			continue
		}

		rawName, ok := values[CardField].(string)
		if !ok || strings.TrimSpace(rawName) == "" {
			pos = lineEnd

			continue
		}

		name := strings.TrimSpace(rawName)

		delete(values, CardField)
		order = removeName(order, CardField)

		if doc.Has(name) {
			line, col := lineColInText(rest, headerStart)

			return nil, diagnostic.Newf(
				diagnostic.CodeFieldCollision,
				"card collection %q collides with a top-level field of the same name", name,
			).WithPrimary("<markdown>", line, col).
				WithRelated("<markdown>", 0, 0, "top-level field \""+name+"\" declared in frontmatter")
		}

		blocks = append(blocks, cardBlock{
			name:        name,
			order:       order,
			values:      values,
			headerStart: headerStart,
			bodyStart:   closeEnd,
		})

		pos = closeEnd
	}

	return blocks, nil
}

// lineEndAt returns the offset immediately after the next newline at or
// after pos, or len(s) if there is none.
func lineEndAt(s string, pos int) int {
	if pos >= len(s) {
		return len(s)
	}

	idx := strings.IndexByte(s[pos:], '\n')
	if idx == -1 {
		return len(s)
	}

	return pos + idx + 1
}

// lineColInText computes a 1-based line/column for offset within s, used
// for diagnostics anchored to text that may not be the whole document.
func lineColInText(s string, offset int) (line, col int) {
	line = 1
	lastNL := -1

	for i := 0; i < offset && i < len(s); i++ {
		if s[i] == '\n' {
			line++

			lastNL = i
		}
	}

	col = offset - lastNL

	return line, col
}
