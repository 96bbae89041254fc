// Package mcp implements the Model Context Protocol server, exposing campaign
// operations to LLMs. This enables AI assistants to read, write and search
// campaign material through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/KeeghanM/arc-aide-sub000/internal/campaign"
	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio. The database is created on first
// use, so the server always starts against a usable store.
func Serve(cfg *config.Config) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	svc, err := campaign.New(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		return err
	}
	defer svc.Close()

	log.SetDatabase(cfg.DBPath())
	log.SetAuthor("mcp")

	h := &handlers{svc: svc}

	s := server.NewMCPServer(
		"arcaide",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("arcaide MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the campaign service.
type handlers struct {
	svc service.Service
}

// registerResources adds URI-based resource access for direct document reading.
func registerResources(s *server.MCPServer, h *handlers) {
	// Arc content by campaign and slug
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"arcaide://campaigns/{campaign}/arcs/{slug}",
			"Arc",
			mcp.WithTemplateDescription("Read an arc's fields as plain text"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readArcResource,
	)

	// Thing content by campaign and slug
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"arcaide://campaigns/{campaign}/things/{slug}",
			"Thing",
			mcp.WithTemplateDescription("Read a thing's description as plain text"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readThingResource,
	)
}

// registerTools exposes campaign operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Campaigns
	s.AddTool(
		mcp.NewTool("arcaide_campaigns",
			mcp.WithDescription("List all campaigns"),
		),
		h.listCampaigns,
	)
	s.AddTool(
		mcp.NewTool("arcaide_campaign_create",
			mcp.WithDescription("Create a campaign"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Campaign name; the slug is derived")),
		),
		h.createCampaign,
	)
	s.AddTool(
		mcp.NewTool("arcaide_campaign_delete",
			mcp.WithDescription("Delete a campaign and everything in it"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
		),
		h.deleteCampaign,
	)

	// List entities
	s.AddTool(
		mcp.NewTool("arcaide_list",
			mcp.WithDescription("List arcs or things in a campaign"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("kind", mcp.Required(), mcp.Description("'arc' or 'thing'")),
			mcp.WithString("parent", mcp.Description("For arcs: limit to children of this arc slug")),
			mcp.WithString("type", mcp.Description("For things: limit to this type name")),
		),
		h.listEntities,
	)

	// Get entity
	s.AddTool(
		mcp.NewTool("arcaide_get",
			mcp.WithDescription("Get an arc or thing with its content as plain text"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("kind", mcp.Required(), mcp.Description("'arc' or 'thing'")),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Entity slug")),
		),
		h.getEntity,
	)

	// Create arc
	s.AddTool(
		mcp.NewTool("arcaide_arc_create",
			mcp.WithDescription("Create an arc. All fields start empty"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Arc name; the slug is derived")),
			mcp.WithString("parent", mcp.Description("Parent arc slug for nested arcs")),
		),
		h.createArc,
	)

	// Write arc field
	s.AddTool(
		mcp.NewTool("arcaide_arc_write",
			mcp.WithDescription("Write one arc field from plain text. Use [[arc#slug]] or [[thing#slug]] to link entities"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Arc slug")),
			mcp.WithString("field", mcp.Required(), mcp.Description("One of: hook, protagonist, antagonist, problem, key, outcome, notes")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Field content as plain text")),
		),
		h.writeArcField,
	)

	// Create thing type
	s.AddTool(
		mcp.NewTool("arcaide_type_create",
			mcp.WithDescription("Create a thing type (category label such as NPC, Location, Item)"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Type name")),
		),
		h.createThingType,
	)

	// Create thing
	s.AddTool(
		mcp.NewTool("arcaide_thing_create",
			mcp.WithDescription("Create a thing, optionally categorised by type"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Thing name; the slug is derived")),
			mcp.WithString("type", mcp.Description("Type name; must already exist")),
		),
		h.createThing,
	)

	// Write thing description
	s.AddTool(
		mcp.NewTool("arcaide_thing_write",
			mcp.WithDescription("Write a thing's description from plain text. Use [[arc#slug]] or [[thing#slug]] to link entities"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Thing slug")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Description as plain text")),
		),
		h.writeThingDescription,
	)

	// Delete entity
	s.AddTool(
		mcp.NewTool("arcaide_delete",
			mcp.WithDescription("Delete an arc or thing. Links pointing at it are left dangling"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("kind", mcp.Required(), mcp.Description("'arc' or 'thing'")),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Entity slug")),
		),
		h.deleteEntity,
	)

	// Rename
	s.AddTool(
		mcp.NewTool("arcaide_rename",
			mcp.WithDescription("Rename an arc or thing and rewrite every [[kind#slug]] link to it across the campaign"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("kind", mcp.Required(), mcp.Description("'arc' or 'thing'")),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Current entity slug")),
			mcp.WithString("name", mcp.Required(), mcp.Description("New name; the new slug is derived")),
			mcp.WithBoolean("dry_run", mcp.Description("Preview the rewrites as diffs without writing")),
		),
		h.renameEntity,
	)

	// Search
	s.AddTool(
		mcp.NewTool("arcaide_search",
			mcp.WithDescription("Ranked full-text search within a campaign. Misspelled terms are corrected unless fuzzy is false"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
			mcp.WithString("kind", mcp.Description("Limit to 'arc' or 'thing'")),
			mcp.WithBoolean("fuzzy", mcp.Description("Spell-correct query terms (default true)")),
			mcp.WithNumber("limit", mcp.Description("Maximum results to return")),
		),
		h.searchCampaign,
	)

	// Links
	s.AddTool(
		mcp.NewTool("arcaide_links",
			mcp.WithDescription("List the [[kind#slug]] links in an entity's documents, with resolution state"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("kind", mcp.Required(), mcp.Description("'arc' or 'thing'")),
			mcp.WithString("slug", mcp.Required(), mcp.Description("Entity slug")),
		),
		h.listLinks,
	)

	// Attach
	s.AddTool(
		mcp.NewTool("arcaide_attach",
			mcp.WithDescription("Attach a thing to an arc. Idempotent"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("arc", mcp.Required(), mcp.Description("Arc slug")),
			mcp.WithString("thing", mcp.Required(), mcp.Description("Thing slug")),
		),
		h.attachThing,
	)

	// Detach
	s.AddTool(
		mcp.NewTool("arcaide_detach",
			mcp.WithDescription("Detach a thing from an arc"),
			mcp.WithString("campaign", mcp.Required(), mcp.Description("Campaign slug")),
			mcp.WithString("arc", mcp.Required(), mcp.Description("Arc slug")),
			mcp.WithString("thing", mcp.Required(), mcp.Description("Thing slug")),
		),
		h.detachThing,
	)
}
