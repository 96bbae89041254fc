// Package store defines campaign persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
//
// Every entity row is scoped by campaign id. Searches and rename sweeps are
// strictly bounded to one campaign; cross-campaign leakage of results or
// link rewrites is a correctness violation, so every query in this package
// carries the campaign filter.
package store

import (
	"encoding/json"
	"time"
)

// Entity kinds as stored in the search index and link markers.
const (
	KindArc   = "arc"
	KindThing = "thing"
)

// ArcFieldNames lists an arc's rich-text fields in display order. Each name
// corresponds to a <name>_doc / <name>_text column pair; rename propagation
// sweeps every pair.
var ArcFieldNames = []string{
	"hook", "protagonist", "antagonist", "problem", "key", "outcome", "notes",
}

// Field pairs a serialized rich-text document with its plain-text shadow.
// Whoever writes a field writes both together; search indexing and link
// rewriting operate on Text, the editor operates on Doc.
type Field struct {
	Doc  string // JSON serialization of the rich-text tree
	Text string // derived plain-text projection
}

// Campaign is the top-level container. One owner, scopes all arcs, things
// and searches.
type Campaign struct {
	ID          int64
	Key         string // unique 8-char public identifier
	Name        string
	Slug        string
	Description Field
	CreatedAt   int64
	UpdatedAt   int64
}

// Arc is a hierarchical narrative unit with seven rich-text fields.
// Fields is keyed by ArcFieldNames.
type Arc struct {
	ID         int64
	Key        string
	CampaignID int64
	ParentID   *int64 // nil for top-level arcs
	Name       string
	Slug       string
	Fields     map[string]Field
	CreatedAt  int64
	UpdatedAt  int64
}

// Thing is a typed catalog entity (character, location, item, ...) with one
// rich-text description. Things associate many-to-many with arcs.
type Thing struct {
	ID          int64
	Key         string
	CampaignID  int64
	TypeID      *int64
	TypeName    string // joined from thing_types; empty when untyped
	Name        string
	Slug        string
	Description Field
	CreatedAt   int64
	UpdatedAt   int64
}

// ThingType is a per-campaign category for things.
type ThingType struct {
	ID         int64
	CampaignID int64
	Name       string
	CreatedAt  int64
}

// RenameResult reports what a rename sweep touched, for audit logging and
// CLI output.
type RenameResult struct {
	OldSlug         string `json:"oldSlug"`
	NewSlug         string `json:"newSlug"`
	ArcsRewritten   int64  `json:"arcsRewritten"`   // arcs whose documents changed
	ThingsRewritten int64  `json:"thingsRewritten"` // things whose documents changed
}

// AffectedDoc is one document that a rename sweep would rewrite, surfaced
// by the preview path so callers can diff before committing.
type AffectedDoc struct {
	Kind  string // KindArc or KindThing
	Slug  string // owning entity's slug
	Field string // field name ("description" for things)
	Text  string // current plain-text shadow
}

// CampaignJSON is the API representation of a Campaign.
type CampaignJSON struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
}

// ToJSON converts a Campaign to its API representation with RFC3339 timestamps.
func (c *Campaign) ToJSON() CampaignJSON {
	return CampaignJSON{
		Key:       c.Key,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: time.Unix(c.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// ArcJSON is the API representation of an Arc. Fields holds the serialized
// documents keyed by field name; omitted when content was not requested.
type ArcJSON struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Slug      string            `json:"slug"`
	Parent    *int64            `json:"parent,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	CreatedAt string            `json:"created_at"`
}

// ToJSON converts an Arc to its API representation. The content parameter
// controls whether the rich-text fields are included.
func (a *Arc) ToJSON(content bool) ArcJSON {
	j := ArcJSON{
		Key:       a.Key,
		Name:      a.Name,
		Slug:      a.Slug,
		Parent:    a.ParentID,
		CreatedAt: time.Unix(a.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
	if content {
		j.Fields = make(map[string]string, len(a.Fields))
		for name, f := range a.Fields {
			j.Fields[name] = f.Doc
		}
	}
	return j
}

// ThingJSON is the API representation of a Thing.
type ThingJSON struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ToJSON converts a Thing to its API representation.
func (t *Thing) ToJSON(content bool) ThingJSON {
	j := ThingJSON{
		Key:       t.Key,
		Name:      t.Name,
		Slug:      t.Slug,
		Type:      t.TypeName,
		CreatedAt: time.Unix(t.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
	if content {
		j.Description = t.Description.Doc
	}
	return j
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// WriteOptions carries configured limits into mutating operations.
type WriteOptions struct {
	MaxName    int   // 0 means no limit
	MaxContent int64 // serialized document size limit; 0 means no limit
}
