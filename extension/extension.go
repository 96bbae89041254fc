// Package extension provides the plugin architecture for arcaide. Extensions
// encapsulate related functionality and register at init time, enabling
// modular feature development without touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for arcaide extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared context before first use.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require the shared campaign store. Commands returned by
// NoStoreCommands() will not trigger store initialisation in
// PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init, config) that run before a store exists
// 2. Commands that manage their own service lifecycle (serve, mcp)
// 3. Utility commands that don't touch campaign data (version)
type Storeless interface {
	NoStoreCommands() []string
}
