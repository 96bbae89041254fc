// Package core provides the core extension for arcaide.
// It registers commands: init, config, serve, mcp, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental arcaide commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	}
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: long-running HTTP server opens and closes its own service.
// mcp: long-running stdio server, same reason.
// version: displays build info, doesn't need a database connection.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "mcp", "version"}
}
