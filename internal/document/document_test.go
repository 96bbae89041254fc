package document_test

import (
	"strings"
	"testing"

	"github.com/KeeghanM/arc-aide-sub000/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) *string { return &s }

func TestPlainText(t *testing.T) {
	t.Run("nil doc projects to empty string", func(t *testing.T) {
		var d document.Doc
		assert.Equal(t, "", d.PlainText())
	})

	t.Run("root children joined with newlines", func(t *testing.T) {
		d := document.Doc{
			{Type: "paragraph", Children: []document.Node{{Text: text("first line")}}},
			{Type: "paragraph", Children: []document.Node{{Text: text("second line")}}},
		}
		assert.Equal(t, "first line\nsecond line", d.PlainText())
	})

	t.Run("nested containers flatten depth-first", func(t *testing.T) {
		d := document.Doc{
			{Type: "bulleted-list", Children: []document.Node{
				{Type: "list-item", Children: []document.Node{{Text: text("one")}}},
				{Type: "list-item", Children: []document.Node{{Text: text("two")}}},
			}},
		}
		assert.Equal(t, "onetwo", d.PlainText())
	})

	t.Run("style flags dropped", func(t *testing.T) {
		d := document.Doc{
			{Type: "paragraph", Children: []document.Node{
				{Text: text("bold "), Styles: map[string]any{"bold": true}},
				{Text: text("plain")},
			}},
		}
		assert.Equal(t, "bold plain", d.PlainText())
	})

	t.Run("idempotent", func(t *testing.T) {
		d := document.FromPlainText("a\nb\nc")
		assert.Equal(t, d.PlainText(), d.PlainText())
	})
}

func TestNormalize(t *testing.T) {
	var d document.Doc
	n := d.Normalize()
	require.Len(t, n, 1)
	assert.Equal(t, "paragraph", n[0].Type)
	assert.Equal(t, "", n.PlainText())

	// Non-empty documents pass through untouched
	orig := document.FromPlainText("keep me")
	assert.Equal(t, "keep me", orig.Normalize().PlainText())
}

func TestRoundTrip_PreservesLinkMarkers(t *testing.T) {
	// Rename propagation does literal substring replacement on the stored
	// JSON, so the serialized form must contain the bracket syntax verbatim.
	d := document.Doc{
		{Type: "paragraph", Children: []document.Node{
			{Text: text("klarg leads the warband to [[arc#old-arc]] at dawn")},
			{Text: text(" see also [[thing#goblin-chief-klarg]]"), Styles: map[string]any{"italic": true}},
		}},
	}
	blob, err := d.JSON()
	require.NoError(t, err)
	assert.Contains(t, blob, "[[arc#old-arc]]")
	assert.Contains(t, blob, "[[thing#goblin-chief-klarg]]")

	parsed, err := document.Parse(blob)
	require.NoError(t, err)
	assert.Equal(t, d.PlainText(), parsed.PlainText())

	reblob, err := parsed.JSON()
	require.NoError(t, err)
	assert.Equal(t, blob, reblob)
}

func TestRoundTrip_PreservesStyleFlags(t *testing.T) {
	blob := `[{"type":"paragraph","children":[{"bold":true,"text":"hi","underline":true}]}]`
	d, err := document.Parse(blob)
	require.NoError(t, err)
	require.Len(t, d, 1)
	leaf := d[0].Children[0]
	assert.Equal(t, true, leaf.Styles["bold"])
	assert.Equal(t, true, leaf.Styles["underline"])
	assert.Equal(t, "hi", *leaf.Text)
}

func TestParse(t *testing.T) {
	t.Run("empty blob", func(t *testing.T) {
		d, err := document.Parse("")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("null blob", func(t *testing.T) {
		d, err := document.Parse("null")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("malformed blob", func(t *testing.T) {
		_, err := document.Parse("{not json")
		require.Error(t, err)
	})
}

func TestMarkdown(t *testing.T) {
	d := document.Doc{
		{Type: "heading-one", Children: []document.Node{{Text: text("The Hook")}}},
		{Type: "paragraph", Children: []document.Node{
			{Text: text("A "), Styles: nil},
			{Text: text("dangerous"), Styles: map[string]any{"bold": true}},
			{Text: text(" journey")},
		}},
		{Type: "bulleted-list", Children: []document.Node{
			{Type: "list-item", Children: []document.Node{{Text: text("one")}}},
			{Type: "list-item", Children: []document.Node{{Text: text("two")}}},
		}},
	}
	md := d.Markdown()
	assert.Contains(t, md, "# The Hook")
	assert.Contains(t, md, "**dangerous**")
	assert.Contains(t, md, "- one")
	assert.True(t, strings.Contains(md, "- two"))
}

func TestFromPlainText(t *testing.T) {
	d := document.FromPlainText("line one\nline two")
	assert.Equal(t, "line one\nline two", d.PlainText())

	// Empty input normalizes to a single empty paragraph, never an empty doc
	e := document.FromPlainText("")
	require.Len(t, e, 1)
	assert.Equal(t, "", e.PlainText())
}
