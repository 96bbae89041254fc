// mcp.go implements the "arcaide mcp" command for MCP server operation.
//
// Like serve, mcp blocks indefinitely and manages its own service lifecycle.
// stdout carries MCP JSON-RPC messages, so nothing else may write to it.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific database:
  arcaide mcp --db ./campaigns.db`,
		RunE: runMCP,
	}
}

func runMCP(_ *cobra.Command, _ []string) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}
	return mcp.Serve(cfg)
}
