// resources.go implements URI-based resource access so MCP clients can read
// campaign material directly, without a tool round-trip.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// parseEntityURI splits arcaide://campaigns/{campaign}/{collection}/{slug}
// into its campaign and slug parts.
func parseEntityURI(uri, collection string) (campaign, slug string, err error) {
	rest, ok := strings.CutPrefix(uri, "arcaide://campaigns/")
	if !ok {
		return "", "", fmt.Errorf("unexpected resource URI %q", uri)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != collection || parts[0] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("unexpected resource URI %q", uri)
	}
	return parts[0], parts[2], nil
}

// readArcResource handles arcaide://campaigns/{campaign}/arcs/{slug} requests.
func (h *handlers) readArcResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	campaign, slug, err := parseEntityURI(req.Params.URI, "arcs")
	if err != nil {
		return nil, err
	}
	arc, err := h.svc.Arc(ctx, campaign, slug)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     renderArc(arc),
		},
	}, nil
}

// readThingResource handles arcaide://campaigns/{campaign}/things/{slug} requests.
func (h *handlers) readThingResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	campaign, slug, err := parseEntityURI(req.Params.URI, "things")
	if err != nil {
		return nil, err
	}
	th, err := h.svc.Thing(ctx, campaign, slug)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     renderThing(th),
		},
	}, nil
}
