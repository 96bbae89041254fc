// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagDryRun = "dry-run" // Preview without making changes
	FlagFuzzy  = "fuzzy"   // Spell-correct query terms
	FlagLocal  = "local"   // Use local scope config
	FlagRaw    = "raw"     // Raw output without rendering

	// String flags

	FlagFile   = "file"   // Read content from a file instead of arguments
	FlagListen = "listen" // HTTP listen address
	FlagParent = "parent" // Parent arc slug
	FlagType   = "type"   // Thing type name

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
