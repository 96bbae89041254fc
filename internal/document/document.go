// Package document models the structured rich-text tree that backs every
// long-form campaign field (an arc's hook, a thing's description, and so on).
//
// A document is an ordered sequence of block nodes. Each node is either a
// container with ordered children or a leaf text span carrying style flags
// (bold, italic, heading level, ...). Documents are stored as an opaque JSON
// blob plus a derived plain-text shadow; the shadow is what search indexing
// and link rewriting operate on.
//
// The JSON codec must preserve embedded [[type#slug]] link markers
// byte-for-byte across a round trip. Rename propagation performs literal
// substring replacement on the serialized form, so any escaping or
// restructuring of the bracket syntax would silently break link rewriting.
// TestRoundTrip_PreservesLinkMarkers guards this coupling.
package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Node is a single node of the rich-text tree. Exactly one of Text or
// Children is expected to be populated: leaves carry Text plus style flags,
// containers carry Children. Unknown style flags are preserved verbatim so
// the editor's serialization survives a round trip through the store.
type Node struct {
	Type     string         // block type: paragraph, heading-one, list-item, ...
	Text     *string        // leaf text span content; nil for containers
	Styles   map[string]any // style flags on a leaf (bold, italic, ...)
	Children []Node         // ordered children; nil for leaves
}

// Doc is the root of a document: an ordered sequence of block nodes.
// The zero value (nil) is a valid document that projects to "".
type Doc []Node

// IsLeaf reports whether the node is a text span.
func (n *Node) IsLeaf() bool { return n.Text != nil }

// MarshalJSON flattens Type, Text, Children and the style flags into a single
// JSON object, matching the editor's node shape. Style keys are emitted in
// sorted order so serialization is deterministic.
func (n Node) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	field := func(key string, v any) error {
		enc, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteByte('"')
		b.WriteString(key)
		b.WriteString(`":`)
		b.Write(enc)
		return nil
	}

	if n.Type != "" {
		if err := field("type", n.Type); err != nil {
			return nil, err
		}
	}
	if n.Text != nil {
		if err := field("text", *n.Text); err != nil {
			return nil, err
		}
	}
	keys := make([]string, 0, len(n.Styles))
	for k := range n.Styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := field(k, n.Styles[k]); err != nil {
			return nil, err
		}
	}
	if n.Children != nil {
		if err := field("children", n.Children); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// UnmarshalJSON splits the flat editor object back into Type, Text, Children
// and the remaining style flags.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node{}
	for k, v := range raw {
		switch k {
		case "type":
			if err := json.Unmarshal(v, &n.Type); err != nil {
				return fmt.Errorf("node type: %w", err)
			}
		case "text":
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("node text: %w", err)
			}
			n.Text = &s
		case "children":
			if err := json.Unmarshal(v, &n.Children); err != nil {
				return fmt.Errorf("node children: %w", err)
			}
		default:
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return fmt.Errorf("node style %q: %w", k, err)
			}
			if n.Styles == nil {
				n.Styles = make(map[string]any)
			}
			n.Styles[k] = val
		}
	}
	return nil
}

// Parse decodes a serialized document. An empty or "null" blob decodes to a
// nil Doc rather than an error, matching the projector's empty-string rule.
func Parse(data string) (Doc, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var d Doc
	if err := json.Unmarshal([]byte(trimmed), &d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return d, nil
}

// JSON serializes the document. The output is what gets stored and what
// rename propagation runs literal substring replacement against.
func (d Doc) JSON() (string, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}
	return string(b), nil
}

// PlainText flattens the document into a single string by depth-first
// traversal. Direct children of the root are joined with newlines; leaf text
// is emitted verbatim with style flags dropped. A nil document projects to
// the empty string. The projection is idempotent: it depends only on the
// tree, so projecting twice yields the same string.
func (d Doc) PlainText() string {
	if len(d) == 0 {
		return ""
	}
	parts := make([]string, len(d))
	for i := range d {
		parts[i] = d[i].flatten()
	}
	return strings.Join(parts, "\n")
}

func (n *Node) flatten() string {
	if n.Text != nil {
		return *n.Text
	}
	var b strings.Builder
	for i := range n.Children {
		b.WriteString(n.Children[i].flatten())
	}
	return b.String()
}

// Normalize returns the document with the empty state replaced by a single
// empty paragraph. A document is never stored empty.
func (d Doc) Normalize() Doc {
	if len(d) > 0 {
		return d
	}
	empty := ""
	return Doc{{Type: "paragraph", Children: []Node{{Text: &empty}}}}
}

// FromPlainText builds a document of plain paragraphs, one per line.
// Used by the CLI and fixtures; the editor produces richer trees.
func FromPlainText(text string) Doc {
	if text == "" {
		return Doc{}.Normalize()
	}
	lines := strings.Split(text, "\n")
	d := make(Doc, len(lines))
	for i, line := range lines {
		s := line
		d[i] = Node{Type: "paragraph", Children: []Node{{Text: &s}}}
	}
	return d
}
