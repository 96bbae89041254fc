// tools_campaigns.go implements MCP tools for campaign-level operations.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

// listCampaigns handles arcaide_campaigns tool calls.
func (h *handlers) listCampaigns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	campaigns, err := h.svc.Campaigns(ctx)

	log.Event("mcp:campaigns", "list").Detail("count", len(campaigns)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := make([]store.CampaignJSON, len(campaigns))
	for i := range campaigns {
		result[i] = campaigns[i].ToJSON()
	}
	return jsonResult(result)
}

// createCampaign handles arcaide_campaign_create tool calls.
func (h *handlers) createCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	c, err := h.svc.CreateCampaign(ctx, name)

	log.Event("mcp:campaigns", "create").Detail("name", name).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(c.ToJSON())
}

// deleteCampaign handles arcaide_campaign_delete tool calls.
func (h *handlers) deleteCampaign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("campaign")
	if err != nil {
		return mcp.NewToolResultError("campaign is required"), nil //nolint:nilerr
	}

	err = h.svc.DeleteCampaign(ctx, slug)

	log.Event("mcp:campaigns", "delete").Campaign(slug).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted campaign %s", slug)), nil
}
