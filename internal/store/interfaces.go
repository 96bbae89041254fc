// interfaces.go defines the storage abstraction for campaign persistence.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are intentionally granular so
// consumers only depend on the capabilities they need: the search engine
// sees only the index and vocabulary, the web handlers see CRUD plus
// rename, and so on.

package store

import (
	"context"
	"database/sql"

	"github.com/KeeghanM/arc-aide-sub000/internal/search"
)

// CampaignStore manages top-level campaigns.
type CampaignStore interface {
	// CreateCampaign inserts a campaign and returns it with ids assigned.
	// Returns ErrAlreadyExists when the derived slug is taken.
	CreateCampaign(ctx context.Context, name string, opts WriteOptions) (*Campaign, error)

	// CampaignBySlug resolves a campaign by its slug.
	CampaignBySlug(ctx context.Context, slug string) (*Campaign, error)

	// Campaigns lists all campaigns ordered by name.
	Campaigns(ctx context.Context) ([]Campaign, error)

	// DeleteCampaign removes a campaign and everything scoped to it.
	DeleteCampaign(ctx context.Context, id int64) error
}

// ArcStore manages narrative arcs within a campaign.
type ArcStore interface {
	// CreateArc inserts an arc with empty (normalized) rich-text fields.
	// Returns ErrAlreadyExists when the slug is taken within the campaign.
	CreateArc(ctx context.Context, campaignID int64, name string, parentID *int64, opts WriteOptions) (*Arc, error)

	// ArcBySlug resolves an arc within a campaign.
	ArcBySlug(ctx context.Context, campaignID int64, slug string) (*Arc, error)

	// Arcs lists a campaign's arcs ordered by name. When parentID is
	// non-nil only direct children are returned.
	Arcs(ctx context.Context, campaignID int64, parentID *int64) ([]Arc, error)

	// UpdateArcField writes one rich-text field (document plus shadow)
	// and refreshes the search index and vocabulary in the same
	// transaction. The field name must be one of ArcFieldNames.
	UpdateArcField(ctx context.Context, campaignID int64, slug, field string, content Field, opts WriteOptions) error

	// DeleteArc removes an arc. Child arcs are re-parented to the root.
	// Link markers referencing the arc are left dangling.
	DeleteArc(ctx context.Context, campaignID int64, slug string) error
}

// ThingStore manages catalog entities within a campaign.
type ThingStore interface {
	// CreateThingType registers a category label for things.
	CreateThingType(ctx context.Context, campaignID int64, name string, opts WriteOptions) (*ThingType, error)
	// ThingTypes lists a campaign's thing types ordered by name.
	ThingTypes(ctx context.Context, campaignID int64) ([]ThingType, error)

	CreateThing(ctx context.Context, campaignID int64, name string, typeID *int64, opts WriteOptions) (*Thing, error)
	ThingBySlug(ctx context.Context, campaignID int64, slug string) (*Thing, error)

	// Things lists a campaign's things ordered by name. When typeID is
	// non-nil only things of that type are returned.
	Things(ctx context.Context, campaignID int64, typeID *int64) ([]Thing, error)

	// UpdateThingDescription writes the description field and refreshes
	// the search index and vocabulary in the same transaction.
	UpdateThingDescription(ctx context.Context, campaignID int64, slug string, content Field, opts WriteOptions) error

	DeleteThing(ctx context.Context, campaignID int64, slug string) error

	// AttachThing associates a thing with an arc (idempotent).
	AttachThing(ctx context.Context, campaignID int64, arcSlug, thingSlug string) error
	// DetachThing removes the association.
	DetachThing(ctx context.Context, campaignID int64, arcSlug, thingSlug string) error
	// ThingsForArc lists things associated with an arc.
	ThingsForArc(ctx context.Context, campaignID int64, arcSlug string) ([]Thing, error)
}

// Renamer performs slug renames with synchronous cross-document link
// propagation. The entity's own row update and the campaign-wide sweep
// commit in one transaction: a reader never observes the new slug alongside
// stale [[kind#old-slug]] markers.
type Renamer interface {
	// RenameArc renames an arc to a new display name, deriving the new
	// slug from it. When the slug changes, every [[arc#oldSlug]] marker
	// across the campaign's documents (and their plain-text shadows and
	// index rows) is rewritten.
	RenameArc(ctx context.Context, campaignID int64, oldSlug, newName string, opts WriteOptions) (RenameResult, error)

	// RenameThing is RenameArc for things.
	RenameThing(ctx context.Context, campaignID int64, oldSlug, newName string, opts WriteOptions) (RenameResult, error)

	// AffectedByRename returns the documents a rename sweep would rewrite,
	// without writing. Used for dry-run previews.
	AffectedByRename(ctx context.Context, campaignID int64, kind, oldSlug string) ([]AffectedDoc, error)
}

// Maintainer defines database lifecycle operations.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for callers needing custom queries.
	DB() *sql.DB

	// Tx runs fn within a transaction, committing on nil and rolling back
	// on error.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Store is the full persistence interface. SQLiteStore implements it along
// with search.Index and search.Vocabulary.
type Store interface {
	CampaignStore
	ArcStore
	ThingStore
	Renamer
	Maintainer
	search.Index
	search.Vocabulary
}
