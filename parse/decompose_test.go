package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmark-go/quillmark/diagnostic"
	"github.com/quillmark-go/quillmark/internal/mdtest"
	"github.com/quillmark-go/quillmark/parse"
)

func TestDecomposeNoFrontmatter(t *testing.T) {
	md := "# Hello World\n\nThis is a test."

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	body, ok := doc.Body()
	require.True(t, ok)
	assert.Equal(t, md, body)
	assert.Equal(t, 1, doc.Len())
}

func TestDecomposeWithFrontmatter(t *testing.T) {
	md := "---\ntitle: Hello\n---\n# Hi"

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	title, ok := doc.Get("title")
	require.True(t, ok)

	s, ok := title.AsString()
	require.True(t, ok)
	assert.Equal(t, "Hello", s)

	body, _ := doc.Body()
	assert.Equal(t, "# Hi", body)
}

func TestDecomposeEmptyFrontmatter(t *testing.T) {
	md := "---\n---\nremainder text"

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Len()) // only body
	body, _ := doc.Body()
	assert.Equal(t, "remainder text", body)
}

func TestDecomposeComplexYAML(t *testing.T) {
	md := "---\ntitle: Complex\ntags:\n  - a\n  - b\nmeta:\n  version: 1.0\n---\nbody text"

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	tagsVal, ok := doc.Get("tags")
	require.True(t, ok)

	seq, ok := tagsVal.AsSequence()
	require.True(t, ok)
	require.Len(t, seq, 2)

	first, _ := seq[0].AsString()
	assert.Equal(t, "a", first)

	metaVal, ok := doc.Get("meta")
	require.True(t, ok)

	m, ok := metaVal.AsMapping()
	require.True(t, ok)
	assert.Contains(t, m, "version")
}

func TestDecomposeInvalidYAML(t *testing.T) {
	md := "---\ntitle: [unterminated\n---\nbody"

	_, err := parse.Decompose(md)
	require.Error(t, err)

	var d diagnostic.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diagnostic.CodeInvalidFrontmatter, d.Code)
}

func TestDecomposeNonMappingFrontmatter(t *testing.T) {
	md := "---\n- just\n- a\n- list\n---\nbody"

	_, err := parse.Decompose(md)
	require.Error(t, err)

	var d diagnostic.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diagnostic.CodeInvalidFrontmatter, d.Code)
}

func TestDecomposeUnterminatedFrontmatter(t *testing.T) {
	md := "---\ntitle: Test\n\nContent without closing"

	_, err := parse.Decompose(md)
	require.Error(t, err)

	var d diagnostic.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diagnostic.CodeFrontmatterUnterminated, d.Code)
}

func TestDecomposeQuillTag(t *testing.T) {
	md := "---\nQUILL: foo\ntitle: X\n---\nbody"

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	require.NotNil(t, doc.QuillTag)
	assert.Equal(t, "foo", *doc.QuillTag)
	assert.False(t, doc.Has("QUILL"))

	_, ok := doc.Get("title")
	assert.True(t, ok)
}

func TestDecomposeInvalidQuillTag(t *testing.T) {
	md := "---\nQUILL: \"not a valid tag!\"\n---\nbody"

	_, err := parse.Decompose(md)
	require.Error(t, err)

	var d diagnostic.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diagnostic.CodeInvalidFrontmatter, d.Code)
}

func TestDecomposeCardBlock(t *testing.T) {
	md := mdtest.Doc(
		mdtest.Frontmatter("title: Letter"),
		"Intro text\n\n",
		mdtest.Card("items", []string{"name: widget"}, "widget body\n"),
	)

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	body, _ := doc.Body()
	assert.Equal(t, "Intro text\n\n", body)

	items, ok := doc.Cards["items"]
	require.True(t, ok)
	require.Len(t, items, 1)

	nameVal, ok := items[0].Get("name")
	require.True(t, ok)

	nameStr, _ := nameVal.AsString()
	assert.Equal(t, "widget", nameStr)

	cardBody, ok := items[0].Body()
	require.True(t, ok)
	assert.Equal(t, "widget body\n", cardBody)
}

func TestDecomposeMultipleCardsSameTagPreserveOrder(t *testing.T) {
	md := mdtest.Doc(
		mdtest.Frontmatter("title: Letter"),
		"Intro\n",
		mdtest.Card("items", []string{"name: first"}, "first body\n"),
		mdtest.Card("items", []string{"name: second"}, "second body\n"),
	)

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	items := doc.Cards["items"]
	require.Len(t, items, 2)

	n1, _ := items[0].Get("name")
	s1, _ := n1.AsString()
	assert.Equal(t, "first", s1)

	n2, _ := items[1].Get("name")
	s2, _ := n2.AsString()
	assert.Equal(t, "second", s2)
}

func TestDecomposeCardFieldCollision(t *testing.T) {
	md := mdtest.Doc(
		mdtest.Frontmatter("items: 1"),
		"\n",
		mdtest.Card("items", []string{"name: a"}, "x"),
	)

	_, err := parse.Decompose(md)
	require.Error(t, err)

	var d diagnostic.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diagnostic.CodeFieldCollision, d.Code)
	assert.Contains(t, d.Message, "items")
}

func TestDecomposeEmbeddedDashesRetainedVerbatim(t *testing.T) {
	md := "---\ntitle: X\n---\nSome text\n---\nnot a card block since no CARD key follows\nmore text"

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	body, _ := doc.Body()
	assert.Contains(t, body, "---\nnot a card block")
}

func TestDecomposeEmptyBodyPermitted(t *testing.T) {
	md := "---\ntitle: X\n---\n"

	doc, err := parse.Decompose(md)
	require.NoError(t, err)

	body, ok := doc.Body()
	require.True(t, ok)
	assert.Empty(t, body)
}
