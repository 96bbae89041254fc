// Package campaign implements the Service interface over the SQLite store.
// It owns slug-to-id resolution, editor document parsing and the wiring of
// the search engine, so callers above it (CLI, web, MCP) deal only in slugs
// and serialized documents.
package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/diff"
	"github.com/KeeghanM/arc-aide-sub000/internal/document"
	"github.com/KeeghanM/arc-aide-sub000/internal/link"
	"github.com/KeeghanM/arc-aide-sub000/internal/search"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
	"github.com/KeeghanM/arc-aide-sub000/internal/slug"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

// Service implements service.Service over a SQLite store.
type Service struct {
	store  *store.SQLiteStore
	engine *search.Engine
	cfg    *config.Config
}

var _ service.Service = (*Service)(nil)

// New opens (and if necessary initialises) the campaign database named in
// cfg and returns a ready Service. The caller must Close it.
func New(cfg *config.Config) (*Service, error) {
	s, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("initialise schema: %w", err)
	}
	return NewWithStore(s, cfg), nil
}

// NewWithStore wraps an already-open store. Used by tests and by callers
// that manage the store lifecycle themselves.
func NewWithStore(s *store.SQLiteStore, cfg *config.Config) *Service {
	return &Service{
		store:  s,
		engine: search.NewEngine(s, search.NewCorrector(s)),
		cfg:    cfg,
	}
}

// Close releases database resources.
func (s *Service) Close() error { return s.store.Close() }

// DB returns the underlying SQLite connection.
func (s *Service) DB() *sql.DB { return s.store.DB() }

// Tx runs fn within a database transaction.
func (s *Service) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.store.Tx(ctx, fn)
}

func (s *Service) opts() store.WriteOptions {
	return store.WriteOptions{
		MaxName:    s.cfg.MaxName(),
		MaxContent: s.cfg.MaxContent(),
	}
}

// campaignID resolves a campaign slug to its row id.
func (s *Service) campaignID(ctx context.Context, campaignSlug string) (int64, error) {
	c, err := s.store.CampaignBySlug(ctx, campaignSlug)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// parseField turns a serialized editor document into the Field pair written
// to storage. The document is normalized first so an empty edit never stores
// a blank blob, and the plain-text shadow is derived from the same parse the
// blob is re-serialized from: the two cannot drift.
func parseField(docJSON string) (store.Field, error) {
	doc, err := document.Parse(docJSON)
	if err != nil {
		return store.Field{}, err
	}
	doc = doc.Normalize()
	blob, err := doc.JSON()
	if err != nil {
		return store.Field{}, err
	}
	return store.Field{Doc: blob, Text: doc.PlainText()}, nil
}

// --- Campaigns ---

func (s *Service) CreateCampaign(ctx context.Context, name string) (*store.Campaign, error) {
	return s.store.CreateCampaign(ctx, name, s.opts())
}

func (s *Service) Campaign(ctx context.Context, campaignSlug string) (*store.Campaign, error) {
	return s.store.CampaignBySlug(ctx, campaignSlug)
}

func (s *Service) Campaigns(ctx context.Context) ([]store.Campaign, error) {
	return s.store.Campaigns(ctx)
}

func (s *Service) DeleteCampaign(ctx context.Context, campaignSlug string) error {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return err
	}
	return s.store.DeleteCampaign(ctx, id)
}

// --- Arcs ---

func (s *Service) CreateArc(ctx context.Context, campaignSlug, name, parentSlug string) (*store.Arc, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	var parentID *int64
	if parentSlug != "" {
		parent, err := s.store.ArcBySlug(ctx, id, parentSlug)
		if err != nil {
			return nil, fmt.Errorf("resolve parent arc: %w", err)
		}
		parentID = &parent.ID
	}
	return s.store.CreateArc(ctx, id, name, parentID, s.opts())
}

func (s *Service) Arc(ctx context.Context, campaignSlug, arcSlug string) (*store.Arc, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	return s.store.ArcBySlug(ctx, id, arcSlug)
}

func (s *Service) Arcs(ctx context.Context, campaignSlug, parentSlug string) ([]store.Arc, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	var parentID *int64
	if parentSlug != "" {
		parent, err := s.store.ArcBySlug(ctx, id, parentSlug)
		if err != nil {
			return nil, fmt.Errorf("resolve parent arc: %w", err)
		}
		parentID = &parent.ID
	}
	return s.store.Arcs(ctx, id, parentID)
}

func (s *Service) UpdateArcField(ctx context.Context, campaignSlug, arcSlug, field, docJSON string) error {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return err
	}
	f, err := parseField(docJSON)
	if err != nil {
		return err
	}
	return s.store.UpdateArcField(ctx, id, arcSlug, field, f, s.opts())
}

func (s *Service) DeleteArc(ctx context.Context, campaignSlug, arcSlug string) error {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return err
	}
	return s.store.DeleteArc(ctx, id, arcSlug)
}

func (s *Service) RenameArc(ctx context.Context, campaignSlug, arcSlug, newName string) (store.RenameResult, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return store.RenameResult{}, err
	}
	return s.store.RenameArc(ctx, id, arcSlug, newName, s.opts())
}

// --- Things ---

func (s *Service) CreateThingType(ctx context.Context, campaignSlug, name string) (*store.ThingType, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	return s.store.CreateThingType(ctx, id, name, s.opts())
}

func (s *Service) ThingTypes(ctx context.Context, campaignSlug string) ([]store.ThingType, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	return s.store.ThingTypes(ctx, id)
}

// typeIDByName resolves a type name to its id, creating nothing.
func (s *Service) typeIDByName(ctx context.Context, campaignID int64, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	types, err := s.store.ThingTypes(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if t.Name == name {
			return &t.ID, nil
		}
	}
	return nil, fmt.Errorf("thing type %q: %w", name, store.ErrNotFound)
}

func (s *Service) CreateThing(ctx context.Context, campaignSlug, name, typeName string) (*store.Thing, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	typeID, err := s.typeIDByName(ctx, id, typeName)
	if err != nil {
		return nil, err
	}
	return s.store.CreateThing(ctx, id, name, typeID, s.opts())
}

func (s *Service) Thing(ctx context.Context, campaignSlug, thingSlug string) (*store.Thing, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	return s.store.ThingBySlug(ctx, id, thingSlug)
}

func (s *Service) Things(ctx context.Context, campaignSlug, typeName string) ([]store.Thing, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	typeID, err := s.typeIDByName(ctx, id, typeName)
	if err != nil {
		return nil, err
	}
	return s.store.Things(ctx, id, typeID)
}

func (s *Service) UpdateThingDescription(ctx context.Context, campaignSlug, thingSlug, docJSON string) error {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return err
	}
	f, err := parseField(docJSON)
	if err != nil {
		return err
	}
	return s.store.UpdateThingDescription(ctx, id, thingSlug, f, s.opts())
}

func (s *Service) DeleteThing(ctx context.Context, campaignSlug, thingSlug string) error {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return err
	}
	return s.store.DeleteThing(ctx, id, thingSlug)
}

func (s *Service) RenameThing(ctx context.Context, campaignSlug, thingSlug, newName string) (store.RenameResult, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return store.RenameResult{}, err
	}
	return s.store.RenameThing(ctx, id, thingSlug, newName, s.opts())
}

func (s *Service) AttachThing(ctx context.Context, campaignSlug, arcSlug, thingSlug string) error {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return err
	}
	return s.store.AttachThing(ctx, id, arcSlug, thingSlug)
}

func (s *Service) DetachThing(ctx context.Context, campaignSlug, arcSlug, thingSlug string) error {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return err
	}
	return s.store.DetachThing(ctx, id, arcSlug, thingSlug)
}

func (s *Service) ThingsForArc(ctx context.Context, campaignSlug, arcSlug string) ([]store.Thing, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	return s.store.ThingsForArc(ctx, id, arcSlug)
}

// --- Search ---

func (s *Service) Search(ctx context.Context, campaignSlug, query string, opts service.SearchOptions) (search.Response, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return search.Response{}, err
	}
	fuzzy := s.cfg.FuzzyDefault()
	if opts.Fuzzy != nil {
		fuzzy = *opts.Fuzzy
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.SearchLimit()
	}
	return s.engine.Search(ctx, search.Request{
		CampaignID: id,
		Query:      query,
		Kind:       opts.Kind,
		Fuzzy:      fuzzy,
		Limit:      limit,
	})
}

// --- Links ---

// fieldTexts returns the named entity's plain-text fields in a stable order.
func (s *Service) fieldTexts(ctx context.Context, campaignID int64, kind, entitySlug string) ([]string, []string, error) {
	switch kind {
	case store.KindArc:
		arc, err := s.store.ArcBySlug(ctx, campaignID, entitySlug)
		if err != nil {
			return nil, nil, err
		}
		names := make([]string, 0, len(store.ArcFieldNames))
		texts := make([]string, 0, len(store.ArcFieldNames))
		for _, f := range store.ArcFieldNames {
			names = append(names, f)
			texts = append(texts, arc.Fields[f].Text)
		}
		return names, texts, nil
	case store.KindThing:
		th, err := s.store.ThingBySlug(ctx, campaignID, entitySlug)
		if err != nil {
			return nil, nil, err
		}
		return []string{"description"}, []string{th.Description.Text}, nil
	default:
		return nil, nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}

func (s *Service) Links(ctx context.Context, campaignSlug, kind, entitySlug string) ([]service.ResolvedLink, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	names, texts, err := s.fieldTexts(ctx, id, kind, entitySlug)
	if err != nil {
		return nil, err
	}

	var out []service.ResolvedLink
	for i, text := range texts {
		for _, m := range link.Scan(text) {
			rl := service.ResolvedLink{Marker: m, Field: names[i]}
			if m.Kind == link.Resolved {
				switch m.EntityType {
				case link.KindArc:
					target, err := s.store.ArcBySlug(ctx, id, m.Slug)
					switch {
					case err == nil:
						rl.Exists = true
						rl.Title = target.Name
					case !errors.Is(err, store.ErrNotFound):
						// A missing target is a dangling link; anything
						// else is a store failure the caller must see.
						return nil, fmt.Errorf("resolve link target: %w", err)
					}
				case link.KindThing:
					target, err := s.store.ThingBySlug(ctx, id, m.Slug)
					switch {
					case err == nil:
						rl.Exists = true
						rl.Title = target.Name
					case !errors.Is(err, store.ErrNotFound):
						return nil, fmt.Errorf("resolve link target: %w", err)
					}
				}
			}
			out = append(out, rl)
		}
	}
	return out, nil
}

// --- Rename previews ---

func (s *Service) RenamePreview(ctx context.Context, campaignSlug, kind, entitySlug, newName string) ([]diff.Result, error) {
	id, err := s.campaignID(ctx, campaignSlug)
	if err != nil {
		return nil, err
	}
	newSlug := slug.Make(newName)
	if newSlug == entitySlug {
		return nil, nil
	}
	affected, err := s.store.AffectedByRename(ctx, id, kind, entitySlug)
	if err != nil {
		return nil, err
	}

	oldMarker := link.Build(kind, entitySlug)
	newMarker := link.Build(kind, newSlug)
	results := make([]diff.Result, 0, len(affected))
	for _, d := range affected {
		label := fmt.Sprintf("%s/%s#%s", d.Kind, d.Slug, d.Field)
		results = append(results, diff.Replacement(d.Text, oldMarker, newMarker, label))
	}
	return results, nil
}
