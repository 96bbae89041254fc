// Package link recognises the [[type#slug]] cross-reference syntax embedded
// in plain text. The editor inserts markers while writing; this package
// classifies them for rendering, search prompts and rename propagation.
//
// A marker is one of three variants:
//
//	[[]]              empty: the editor should open a search prompt
//	[[arc#old-arc]]   resolved: entity type and slug are known
//	[[anything else]] malformed: handled identically to empty
//
// Classification is exhaustive and deterministic. Scanning may run alongside
// independent syntax-highlighting tokenization over the same text; a position
// can carry both a highlight style and a link classification.
package link

import (
	"regexp"
	"strings"
)

// Kind classifies a scanned marker.
type Kind int

const (
	// Empty markers ([[]] or whitespace-only content) prompt a new search.
	Empty Kind = iota
	// Resolved markers carry an entity type and slug.
	Resolved
	// Malformed markers have content that is not type#slug. Downstream
	// handling is identical to Empty.
	Malformed
)

// Entity types a marker may resolve to.
const (
	KindArc   = "arc"
	KindThing = "thing"
)

// pattern matches bracket markers without nesting: the content group
// excludes ']' so the first ']]' always terminates the marker.
var pattern = regexp.MustCompile(`\[\[([^\]]*)\]\]`)

// Marker is a single classified occurrence within a scanned string.
// Start and End are byte offsets into the scanned text, recorded so callers
// can replace the marker span after the scan.
type Marker struct {
	Kind       Kind
	Start, End int
	EntityType string // set when Kind == Resolved
	Slug       string // set when Kind == Resolved
}

// NeedsSearch reports whether the marker should trigger an editor search
// prompt. Empty and Malformed markers are treated identically.
func (m Marker) NeedsSearch() bool { return m.Kind != Resolved }

// String reconstructs the literal marker text.
func (m Marker) String() string {
	if m.Kind == Resolved {
		return Build(m.EntityType, m.Slug)
	}
	return "[[]]"
}

// Build produces the literal marker for an entity. Rename propagation
// replaces Build(kind, oldSlug) with Build(kind, newSlug) across a campaign.
func Build(entityType, slug string) string {
	return "[[" + entityType + "#" + slug + "]]"
}

// Scan finds every marker in text in left-to-right, non-overlapping order.
// The scan is restartable: callers re-run it after each document mutation.
func Scan(text string) []Marker {
	idx := pattern.FindAllStringSubmatchIndex(text, -1)
	if idx == nil {
		return nil
	}
	markers := make([]Marker, 0, len(idx))
	for _, loc := range idx {
		m := Marker{Start: loc[0], End: loc[1]}
		content := text[loc[2]:loc[3]]
		switch {
		case strings.TrimSpace(content) == "":
			m.Kind = Empty
		default:
			// Split on the FIRST '#' only; slugs never contain '#' but the
			// classification must stay deterministic even for junk content.
			entityType, slug, found := strings.Cut(content, "#")
			if !found {
				m.Kind = Malformed
			} else {
				m.Kind = Resolved
				m.EntityType = entityType
				m.Slug = slug
			}
		}
		markers = append(markers, m)
	}
	return markers
}

// ScanResolved returns only the resolved markers in text.
func ScanResolved(text string) []Marker {
	var out []Marker
	for _, m := range Scan(text) {
		if m.Kind == Resolved {
			out = append(out, m)
		}
	}
	return out
}
