// markdown.go renders a document tree to markdown for terminal display.
//
// Separated from document.go because rendering is a one-way projection used
// only by the CLI show command (via glamour). It is deliberately lossy in the
// other direction - markdown is never parsed back into a tree.

package document

import "strings"

// Markdown renders the document as markdown. Block types map to their
// markdown equivalents; unknown types render as plain paragraphs. Inline
// style flags bold, italic and code are honoured; anything else is dropped.
func (d Doc) Markdown() string {
	var b strings.Builder
	for i := range d {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeBlock(&b, &d[i], "")
	}
	return b.String()
}

func writeBlock(b *strings.Builder, n *Node, prefix string) {
	switch n.Type {
	case "heading-one":
		b.WriteString("# ")
		writeInline(b, n)
	case "heading-two":
		b.WriteString("## ")
		writeInline(b, n)
	case "heading-three":
		b.WriteString("### ")
		writeInline(b, n)
	case "block-quote":
		b.WriteString("> ")
		writeInline(b, n)
	case "bulleted-list", "numbered-list":
		for i := range n.Children {
			if i > 0 {
				b.WriteByte('\n')
			}
			marker := "- "
			if n.Type == "numbered-list" {
				marker = "1. "
			}
			b.WriteString(prefix + marker)
			writeInline(b, &n.Children[i])
		}
	default:
		writeInline(b, n)
	}
}

func writeInline(b *strings.Builder, n *Node) {
	if n.Text != nil {
		b.WriteString(decorate(*n.Text, n.Styles))
		return
	}
	for i := range n.Children {
		writeInline(b, &n.Children[i])
	}
}

func decorate(text string, styles map[string]any) string {
	if text == "" || len(styles) == 0 {
		return text
	}
	if flag(styles, "code") {
		text = "`" + text + "`"
	}
	if flag(styles, "italic") {
		text = "_" + text + "_"
	}
	if flag(styles, "bold") {
		text = "**" + text + "**"
	}
	return text
}

func flag(styles map[string]any, name string) bool {
	v, ok := styles[name].(bool)
	return ok && v
}
