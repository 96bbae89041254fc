// tools_search.go implements MCP tools for search, link inspection and
// arc/thing attachments.

package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

// searchCampaign handles arcaide_search tool calls.
func (h *handlers) searchCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	opts := service.SearchOptions{
		Kind:  getString(req, "kind", ""),
		Fuzzy: getBoolPtr(req, "fuzzy"),
		Limit: getInt(req, "limit", 0),
	}

	resp, err := h.svc.Search(ctx, campaign, query, opts)

	ev := log.Event("mcp:search", "search").Campaign(campaign).
		Detail("query", query).Detail("count", len(resp.Results))
	if resp.Degraded {
		slog.Warn("spell correction unavailable, query ran uncorrected", "error", resp.DegradedErr)
		ev.Detail("degraded", fmt.Sprint(resp.DegradedErr))
	}
	ev.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp)
}

// listLinks handles arcaide_links tool calls.
func (h *handlers) listLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	links, err := h.svc.Links(ctx, campaign, kind, slug)

	log.Event("mcp:links", "read").Campaign(campaign).Entity(kind, slug).Detail("count", len(links)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(links)
}

// attachThing handles arcaide_attach tool calls.
func (h *handlers) attachThing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	arcSlug, err := req.RequireString("arc")
	if err != nil {
		return mcp.NewToolResultError("arc is required"), nil //nolint:nilerr
	}
	thingSlug, err := req.RequireString("thing")
	if err != nil {
		return mcp.NewToolResultError("thing is required"), nil //nolint:nilerr
	}

	err = h.svc.AttachThing(ctx, campaign, arcSlug, thingSlug)

	log.Event("mcp:attach", "attach").Campaign(campaign).Detail("arc", arcSlug).Detail("thing", thingSlug).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("attached %s to %s", thingSlug, arcSlug)), nil
}

// detachThing handles arcaide_detach tool calls.
func (h *handlers) detachThing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaign, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}
	arcSlug, err := req.RequireString("arc")
	if err != nil {
		return mcp.NewToolResultError("arc is required"), nil //nolint:nilerr
	}
	thingSlug, err := req.RequireString("thing")
	if err != nil {
		return mcp.NewToolResultError("thing is required"), nil //nolint:nilerr
	}

	err = h.svc.DetachThing(ctx, campaign, arcSlug, thingSlug)

	log.Event("mcp:attach", "detach").Campaign(campaign).Detail("arc", arcSlug).Detail("thing", thingSlug).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("detached %s from %s", thingSlug, arcSlug)), nil
}
