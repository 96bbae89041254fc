// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment, tree rendering, and highlight colouring.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/KeeghanM/arc-aide-sub000/internal/search"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

// Campaigns prints campaigns in long format with key, slug and creation date.
func Campaigns(w io.Writer, campaigns []store.Campaign) {
	if len(campaigns) == 0 {
		return
	}

	maxSlug := 4 // minimum "SLUG"
	for _, c := range campaigns {
		if len(c.Slug) > maxSlug {
			maxSlug = len(c.Slug)
		}
	}

	fmt.Fprintf(w, "%-8s  %-*s  %-10s  %s\n", "KEY", maxSlug, "SLUG", "CREATED", "NAME")
	for _, c := range campaigns {
		date := time.Unix(c.CreatedAt, 0).Format("2006-01-02")
		fmt.Fprintf(w, "%s  %-*s  %s  %s\n", c.Key, maxSlug, c.Slug, date, c.Name)
	}
}

// Arcs prints arcs as an indented tree following parent links. Arcs whose
// parent is not in the listing are printed at the root level.
func Arcs(w io.Writer, arcs []store.Arc) {
	children := make(map[int64][]store.Arc)
	ids := make(map[int64]bool, len(arcs))
	for _, a := range arcs {
		ids[a.ID] = true
	}

	var roots []store.Arc
	for _, a := range arcs {
		if a.ParentID != nil && ids[*a.ParentID] {
			children[*a.ParentID] = append(children[*a.ParentID], a)
			continue
		}
		roots = append(roots, a)
	}

	var print func(list []store.Arc, depth int)
	print = func(list []store.Arc, depth int) {
		for _, a := range list {
			fmt.Fprintf(w, "%s  %s%s  (%s)\n", a.Key, strings.Repeat("    ", depth), a.Name, a.Slug)
			print(children[a.ID], depth+1)
		}
	}
	print(roots, 0)
}

// Things prints things in long format with key, slug, type and name.
func Things(w io.Writer, things []store.Thing) {
	if len(things) == 0 {
		return
	}

	maxSlug, maxType := 4, 4
	for _, t := range things {
		if len(t.Slug) > maxSlug {
			maxSlug = len(t.Slug)
		}
		if len(t.TypeName) > maxType {
			maxType = len(t.TypeName)
		}
	}

	fmt.Fprintf(w, "%-8s  %-*s  %-*s  %s\n", "KEY", maxSlug, "SLUG", maxType, "TYPE", "NAME")
	for _, t := range things {
		typeName := t.TypeName
		if typeName == "" {
			typeName = "-"
		}
		fmt.Fprintf(w, "%s  %-*s  %-*s  %s\n", t.Key, maxSlug, t.Slug, maxType, typeName, t.Name)
	}
}

// SearchResults prints ranked search hits with their highlight snippets.
// When colour is enabled the snippet's <mark> regions render bold yellow.
func SearchResults(w io.Writer, resp search.Response, colour bool) {
	if resp.CorrectedQuery != "" && resp.CorrectedQuery != resp.OriginalQuery {
		fmt.Fprintf(w, "showing results for %q (searched for %q)\n\n", resp.CorrectedQuery, resp.OriginalQuery)
	}
	for _, hit := range resp.Results {
		fmt.Fprintf(w, "%s#%s  %s\n", hit.Kind, hit.Slug, hit.Title)
		if hit.Highlight != "" {
			fmt.Fprintf(w, "    %s\n", Highlight(hit.Highlight, colour))
		}
	}
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "no results")
	}
}

// Highlight converts <mark> regions in a snippet to ANSI bold yellow, or
// strips them when colour is disabled.
func Highlight(s string, colour bool) string {
	if colour {
		s = strings.ReplaceAll(s, "<mark>", "\x1b[1;33m")
		return strings.ReplaceAll(s, "</mark>", "\x1b[0m")
	}
	s = strings.ReplaceAll(s, "<mark>", "")
	return strings.ReplaceAll(s, "</mark>", "")
}

// ArcMarkdown renders an arc as a markdown document for terminal display.
// Empty fields are skipped.
func ArcMarkdown(arc *store.Arc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", arc.Name)
	for _, name := range store.ArcFieldNames {
		f := arc.Fields[name]
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", title(name), f.Text)
	}
	return b.String()
}

// ThingMarkdown renders a thing as a markdown document for terminal display.
func ThingMarkdown(th *store.Thing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", th.Name)
	if th.TypeName != "" {
		fmt.Fprintf(&b, "\n*%s*\n", th.TypeName)
	}
	if strings.TrimSpace(th.Description.Text) != "" {
		fmt.Fprintf(&b, "\n%s\n", th.Description.Text)
	}
	return b.String()
}

// title upper-cases the first letter of an ASCII field name.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
