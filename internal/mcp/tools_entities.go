// tools_entities.go implements MCP tools for arcs and things.
//
// Content flows in and out as plain text: tool input is converted to the
// normalized editor document before writing, and reads project the plain-text
// shadow. LLMs never see the rich-text JSON tree.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KeeghanM/arc-aide-sub000/internal/document"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

// listEntities handles arcaide_list tool calls.
func (h *handlers) listEntities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind is required"), nil //nolint:nilerr
	}

	switch kind {
	case store.KindArc:
		arcs, err := h.svc.Arcs(ctx, campaign, getString(req, "parent", ""))
		log.Event("mcp:list", "list").Campaign(campaign).Detail("kind", kind).Detail("count", len(arcs)).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result := make([]store.ArcJSON, len(arcs))
		for i := range arcs {
			result[i] = arcs[i].ToJSON(false)
		}
		return jsonResult(result)
	case store.KindThing:
		things, err := h.svc.Things(ctx, campaign, getString(req, "type", ""))
		log.Event("mcp:list", "list").Campaign(campaign).Detail("kind", kind).Detail("count", len(things)).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result := make([]store.ThingJSON, len(things))
		for i := range things {
			result[i] = things[i].ToJSON(false)
		}
		return jsonResult(result)
	default:
		return mcp.NewToolResultError("kind must be 'arc' or 'thing'"), nil
	}
}

// getEntity handles arcaide_get tool calls.
func (h *handlers) getEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind is required"), nil //nolint:nilerr
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil //nolint:nilerr
	}

	switch kind {
	case store.KindArc:
		arc, err := h.svc.Arc(ctx, campaign, slug)
		log.Event("mcp:get", "read").Campaign(campaign).Entity(kind, slug).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(renderArc(arc)), nil
	case store.KindThing:
		th, err := h.svc.Thing(ctx, campaign, slug)
		log.Event("mcp:get", "read").Campaign(campaign).Entity(kind, slug).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(renderThing(th)), nil
	default:
		return mcp.NewToolResultError("kind must be 'arc' or 'thing'"), nil
	}
}

// createArc handles arcaide_arc_create tool calls.
func (h *handlers) createArc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	arc, err := h.svc.CreateArc(ctx, campaign, name, getString(req, "parent", ""))

	log.Event("mcp:arcs", "create").Campaign(campaign).Detail("name", name).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(arc.ToJSON(false))
}

// writeArcField handles arcaide_arc_write tool calls.
func (h *handlers) writeArcField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil //nolint:nilerr
	}
	field, err := req.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("field is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}

	docJSON, err := document.FromPlainText(content).JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	err = h.svc.UpdateArcField(ctx, campaign, slug, field, docJSON)

	log.Event("mcp:arcs", "write").Campaign(campaign).Entity(store.KindArc, slug).Detail("field", field).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("wrote %s of arc %s", field, slug)), nil
}

// createThingType handles arcaide_type_create tool calls.
func (h *handlers) createThingType(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	tt, err := h.svc.CreateThingType(ctx, campaign, name)

	log.Event("mcp:types", "create").Campaign(campaign).Detail("name", name).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created type %s", tt.Name)), nil
}

// createThing handles arcaide_thing_create tool calls.
func (h *handlers) createThing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	th, err := h.svc.CreateThing(ctx, campaign, name, getString(req, "type", ""))

	log.Event("mcp:things", "create").Campaign(campaign).Detail("name", name).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(th.ToJSON(false))
}

// writeThingDescription handles arcaide_thing_write tool calls.
func (h *handlers) writeThingDescription(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}

	docJSON, err := document.FromPlainText(content).JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	err = h.svc.UpdateThingDescription(ctx, campaign, slug, docJSON)

	log.Event("mcp:things", "write").Campaign(campaign).Entity(store.KindThing, slug).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("wrote description of thing %s", slug)), nil
}

// deleteEntity handles arcaide_delete tool calls.
func (h *handlers) deleteEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind is required"), nil //nolint:nilerr
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil //nolint:nilerr
	}

	switch kind {
	case store.KindArc:
		err = h.svc.DeleteArc(ctx, campaign, slug)
	case store.KindThing:
		err = h.svc.DeleteThing(ctx, campaign, slug)
	default:
		return mcp.NewToolResultError("kind must be 'arc' or 'thing'"), nil
	}

	log.Event("mcp:delete", "delete").Campaign(campaign).Entity(kind, slug).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s %s", kind, slug)), nil
}

// renameEntity handles arcaide_rename tool calls.
func (h *handlers) renameEntity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind is required"), nil //nolint:nilerr
	}
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil //nolint:nilerr
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	if getBool(req, "dry_run", false) {
		diffs, err := h.svc.RenamePreview(ctx, campaign, kind, slug, name)
		log.Event("mcp:rename", "preview").Campaign(campaign).Entity(kind, slug).Detail("name", name).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(diffs) == 0 {
			return mcp.NewToolResultText("no documents would change"), nil
		}
		var b strings.Builder
		for i := range diffs {
			b.WriteString(diffs[i].Format(false))
		}
		return mcp.NewToolResultText(b.String()), nil
	}

	var res store.RenameResult
	switch kind {
	case store.KindArc:
		res, err = h.svc.RenameArc(ctx, campaign, slug, name)
	case store.KindThing:
		res, err = h.svc.RenameThing(ctx, campaign, slug, name)
	default:
		return mcp.NewToolResultError("kind must be 'arc' or 'thing'"), nil
	}

	log.Event("mcp:rename", "rename").Campaign(campaign).Entity(kind, slug).Resolved(res.NewSlug).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

// renderArc projects an arc to plain text for LLM consumption. Empty fields
// are skipped to keep the context small.
func renderArc(arc *store.Arc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (arc#%s)\n", arc.Name, arc.Slug)
	for _, name := range store.ArcFieldNames {
		f := arc.Fields[name]
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n%s\n", name, f.Text)
	}
	return b.String()
}

func renderThing(th *store.Thing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (thing#%s)\n", th.Name, th.Slug)
	if th.TypeName != "" {
		fmt.Fprintf(&b, "type: %s\n", th.TypeName)
	}
	if strings.TrimSpace(th.Description.Text) != "" {
		fmt.Fprintf(&b, "\n%s\n", th.Description.Text)
	}
	return b.String()
}
