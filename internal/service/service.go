// Package service defines the shared interface for campaign operations.
// Commands, web handlers and MCP tools depend on this interface rather than
// concrete implementations, enabling testing with mocks and future backend
// changes.
package service

import (
	"context"
	"database/sql"

	"github.com/KeeghanM/arc-aide-sub000/internal/diff"
	"github.com/KeeghanM/arc-aide-sub000/internal/link"
	"github.com/KeeghanM/arc-aide-sub000/internal/search"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

// ResolvedLink is one [[kind#slug]] marker found in an entity's documents,
// annotated with whether its target currently exists. Dangling links are
// reported, never repaired: the target may be created later, or restored
// under the same slug.
type ResolvedLink struct {
	Marker link.Marker `json:"marker"`
	Field  string      `json:"field"`            // field the marker appears in
	Exists bool        `json:"exists"`           // target resolves in this campaign
	Title  string      `json:"title,omitempty"`  // target display name when it exists
}

// SearchOptions shapes a search request. Zero values fall back to the
// configured defaults (fuzzy on, limit 50 unless reconfigured).
type SearchOptions struct {
	Kind  string // search.KindAny, KindArc or KindThing; invalid values widen to any
	Fuzzy *bool  // nil means use the configured default
	Limit int    // 0 means use the configured default
}

// Service defines all campaign operations. Every entity operation is
// addressed by campaign slug plus entity slug; the service resolves slugs to
// ids internally so callers never handle row ids.
//
// Obtain an implementation with campaign.New() and always Close it:
//
//	svc, err := campaign.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	arc, err := svc.Arc(ctx, "lost-mine", "goblin-ambush")
type Service interface {
	// Close releases database resources. Always defer this after New().
	Close() error

	// CreateCampaign creates a campaign named name; the slug is derived.
	// Returns store.ErrAlreadyExists when the slug is taken.
	CreateCampaign(ctx context.Context, name string) (*store.Campaign, error)

	// Campaign resolves a campaign by slug.
	Campaign(ctx context.Context, slug string) (*store.Campaign, error)

	// Campaigns lists all campaigns ordered by name.
	Campaigns(ctx context.Context) ([]store.Campaign, error)

	// DeleteCampaign removes a campaign and everything scoped to it:
	// arcs, things, types, attachments and search index rows.
	DeleteCampaign(ctx context.Context, slug string) error

	// CreateArc creates an arc under the named campaign. parentSlug may be
	// empty for a top-level arc. Every rich-text field starts as the
	// normalized empty document.
	CreateArc(ctx context.Context, campaign, name, parentSlug string) (*store.Arc, error)

	// Arc resolves an arc by slug within a campaign.
	Arc(ctx context.Context, campaign, slug string) (*store.Arc, error)

	// Arcs lists a campaign's arcs. A non-empty parentSlug limits the
	// listing to that arc's direct children.
	Arcs(ctx context.Context, campaign, parentSlug string) ([]store.Arc, error)

	// UpdateArcField writes one rich-text field from its serialized editor
	// document. The service parses and normalizes the document, derives the
	// plain-text shadow, and commits both together with the index refresh.
	// The field must be one of store.ArcFieldNames.
	UpdateArcField(ctx context.Context, campaign, slug, field, docJSON string) error

	// DeleteArc removes an arc. Children re-parent to the root; markers
	// referencing the arc are left dangling.
	DeleteArc(ctx context.Context, campaign, slug string) error

	// RenameArc renames an arc and synchronously rewrites every
	// [[arc#old-slug]] marker across the campaign. The entity update and
	// the sweep commit in one transaction.
	RenameArc(ctx context.Context, campaign, slug, newName string) (store.RenameResult, error)

	// CreateThingType registers a category label for things.
	CreateThingType(ctx context.Context, campaign, name string) (*store.ThingType, error)

	// ThingTypes lists a campaign's thing types ordered by name.
	ThingTypes(ctx context.Context, campaign string) ([]store.ThingType, error)

	// CreateThing creates a thing, optionally categorised by the named
	// type. An empty typeName leaves the thing untyped.
	CreateThing(ctx context.Context, campaign, name, typeName string) (*store.Thing, error)

	// Thing resolves a thing by slug within a campaign.
	Thing(ctx context.Context, campaign, slug string) (*store.Thing, error)

	// Things lists a campaign's things, optionally filtered by type name.
	Things(ctx context.Context, campaign, typeName string) ([]store.Thing, error)

	// UpdateThingDescription writes a thing's description from its
	// serialized editor document, like UpdateArcField.
	UpdateThingDescription(ctx context.Context, campaign, slug, docJSON string) error

	// DeleteThing removes a thing and its arc attachments.
	DeleteThing(ctx context.Context, campaign, slug string) error

	// RenameThing is RenameArc for things.
	RenameThing(ctx context.Context, campaign, slug, newName string) (store.RenameResult, error)

	// AttachThing associates a thing with an arc. Idempotent.
	AttachThing(ctx context.Context, campaign, arcSlug, thingSlug string) error

	// DetachThing removes the association. Returns store.ErrNotFound when
	// no association exists.
	DetachThing(ctx context.Context, campaign, arcSlug, thingSlug string) error

	// ThingsForArc lists the things attached to an arc.
	ThingsForArc(ctx context.Context, campaign, arcSlug string) ([]store.Thing, error)

	// Search runs a ranked full-text query scoped to one campaign. An
	// empty or all-symbol query yields an empty result set, not an error.
	// With fuzzy enabled, misspelled terms are corrected against the
	// campaign vocabulary and the response carries the corrected query.
	Search(ctx context.Context, campaign, query string, opts SearchOptions) (search.Response, error)

	// Links scans an entity's documents for [[kind#slug]] markers and
	// reports each with its resolution state. kind and slug address the
	// entity being scanned, not the link targets.
	Links(ctx context.Context, campaign, kind, slug string) ([]ResolvedLink, error)

	// RenamePreview returns per-document diffs of what renaming the entity
	// to newName would rewrite, without writing. One Result per affected
	// field, labelled "kind/slug#field".
	RenamePreview(ctx context.Context, campaign, kind, slug, newName string) ([]diff.Result, error)

	// DB returns the underlying SQLite connection.
	// Do not close this connection directly; use Service.Close().
	DB() *sql.DB

	// Tx runs a function within a database transaction.
	// If fn returns nil, the transaction is committed.
	// If fn returns an error, the transaction is rolled back.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
