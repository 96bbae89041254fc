package campaign_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KeeghanM/arc-aide-sub000/internal/campaign"
	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/document"
	"github.com/KeeghanM/arc-aide-sub000/internal/link"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

// setupService creates a Service over a temporary database.
func setupService(t *testing.T) service.Service {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	svc := campaign.NewWithStore(s, &config.Config{})
	t.Cleanup(func() { svc.Close() })
	return svc
}

// docJSON serializes a single-paragraph editor document.
func docJSON(t *testing.T, text string) string {
	t.Helper()
	blob, err := document.FromPlainText(text).JSON()
	require.NoError(t, err)
	return blob
}

func TestService_CampaignLifecycle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	c, err := svc.CreateCampaign(ctx, "Lost Mine of Phandelver")
	require.NoError(t, err)
	assert.Equal(t, "lost-mine-of-phandelver", c.Slug)

	all, err := svc.Campaigns(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, svc.DeleteCampaign(ctx, c.Slug))
	_, err = svc.Campaign(ctx, c.Slug)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_ArcWithParentSlug(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "Test")
	require.NoError(t, err)
	parent, err := svc.CreateArc(ctx, "test", "Act One", "")
	require.NoError(t, err)
	_, err = svc.CreateArc(ctx, "test", "Ambush", parent.Slug)
	require.NoError(t, err)

	children, err := svc.Arcs(ctx, "test", parent.Slug)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "ambush", children[0].Slug)

	_, err = svc.CreateArc(ctx, "test", "Orphan", "no-such-parent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_UpdateArcFieldFromEditorJSON(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "Test")
	require.NoError(t, err)
	a, err := svc.CreateArc(ctx, "test", "Hideout", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateArcField(ctx, "test", a.Slug, "hook", docJSON(t, "Meet [[thing#klarg]] inside.")))

	got, err := svc.Arc(ctx, "test", a.Slug)
	require.NoError(t, err)
	// The marker survives serialization byte-for-byte in both columns.
	assert.Contains(t, got.Fields["hook"].Doc, "[[thing#klarg]]")
	assert.Equal(t, "Meet [[thing#klarg]] inside.", got.Fields["hook"].Text)

	// An empty document normalizes rather than storing a blank blob.
	require.NoError(t, svc.UpdateArcField(ctx, "test", a.Slug, "hook", ""))
	got, err = svc.Arc(ctx, "test", a.Slug)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Fields["hook"].Doc)
	assert.Empty(t, got.Fields["hook"].Text)
}

func TestService_ThingsByTypeName(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "Test")
	require.NoError(t, err)
	_, err = svc.CreateThingType(ctx, "test", "NPC")
	require.NoError(t, err)
	_, err = svc.CreateThingType(ctx, "test", "Location")
	require.NoError(t, err)

	_, err = svc.CreateThing(ctx, "test", "Klarg", "NPC")
	require.NoError(t, err)
	_, err = svc.CreateThing(ctx, "test", "Cragmaw Castle", "Location")
	require.NoError(t, err)
	_, err = svc.CreateThing(ctx, "test", "Mystery Box", "")
	require.NoError(t, err)

	npcs, err := svc.Things(ctx, "test", "NPC")
	require.NoError(t, err)
	require.Len(t, npcs, 1)
	assert.Equal(t, "Klarg", npcs[0].Name)
	assert.Equal(t, "NPC", npcs[0].TypeName)

	all, err := svc.Things(ctx, "test", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.CreateThing(ctx, "test", "Ghost", "Spirit")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_Links(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "Test")
	require.NoError(t, err)
	_, err = svc.CreateThing(ctx, "test", "Klarg", "")
	require.NoError(t, err)
	a, err := svc.CreateArc(ctx, "test", "Hideout", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateArcField(ctx, "test", a.Slug, "antagonist",
		docJSON(t, "Boss: [[thing#klarg]]. Missing: [[arc#ghost-arc]]. Prompt: [[]]. Junk: [[whatever]].")))

	links, err := svc.Links(ctx, "test", "arc", a.Slug)
	require.NoError(t, err)
	require.Len(t, links, 4)

	assert.Equal(t, link.Resolved, links[0].Marker.Kind)
	assert.True(t, links[0].Exists)
	assert.Equal(t, "Klarg", links[0].Title)
	assert.Equal(t, "antagonist", links[0].Field)

	assert.Equal(t, link.Resolved, links[1].Marker.Kind)
	assert.False(t, links[1].Exists, "dangling link reported, not repaired")

	assert.True(t, links[2].Marker.NeedsSearch())
	assert.True(t, links[3].Marker.NeedsSearch())
}

func TestService_RenamePreview(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "Test")
	require.NoError(t, err)
	_, err = svc.CreateArc(ctx, "test", "Old Arc", "")
	require.NoError(t, err)
	th, err := svc.CreateThing(ctx, "test", "Witness", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateThingDescription(ctx, "test", th.Slug, docJSON(t, "Saw [[arc#old-arc]] happen.")))

	previews, err := svc.RenamePreview(ctx, "test", "arc", "old-arc", "New Arc")
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, "thing/witness#description", previews[0].Old)
	assert.Contains(t, previews[0].Diff, "+ Saw [[arc#new-arc]] happen.")

	// Nothing was written.
	got, err := svc.Thing(ctx, "test", th.Slug)
	require.NoError(t, err)
	assert.Contains(t, got.Description.Text, "[[arc#old-arc]]")

	// A name mapping to the same slug previews nothing.
	previews, err = svc.RenamePreview(ctx, "test", "arc", "old-arc", "OLD ARC")
	require.NoError(t, err)
	assert.Empty(t, previews)
}

func TestService_SearchDefaults(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "Test")
	require.NoError(t, err)
	th, err := svc.CreateThing(ctx, "test", "Klarg", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateThingDescription(ctx, "test", th.Slug, docJSON(t, "Klarg the bugbear.")))

	// Fuzzy defaults on: the misspelling corrects against the vocabulary.
	resp, err := svc.Search(ctx, "test", "klrag", service.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "klarg", resp.CorrectedQuery)
	require.NotEmpty(t, resp.Results)

	// Explicitly disabled, the literal query misses.
	off := false
	resp, err = svc.Search(ctx, "test", "klrag", service.SearchOptions{Fuzzy: &off})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)

	// Empty query is valid and empty.
	resp, err = svc.Search(ctx, "test", "   ", service.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestService_RenamePropagatesThroughService(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "Test")
	require.NoError(t, err)
	_, err = svc.CreateArc(ctx, "test", "Old Arc", "")
	require.NoError(t, err)
	a, err := svc.CreateArc(ctx, "test", "Referrer", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateArcField(ctx, "test", a.Slug, "notes", docJSON(t, "See [[arc#old-arc]].")))

	res, err := svc.RenameArc(ctx, "test", "old-arc", "New Arc")
	require.NoError(t, err)
	assert.Equal(t, "new-arc", res.NewSlug)

	got, err := svc.Arc(ctx, "test", a.Slug)
	require.NoError(t, err)
	assert.True(t, strings.Contains(got.Fields["notes"].Text, "[[arc#new-arc]]"))
}
