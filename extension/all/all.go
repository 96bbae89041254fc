// Package all imports all core arcaide extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/KeeghanM/arc-aide-sub000/extension/arc"
	_ "github.com/KeeghanM/arc-aide-sub000/extension/campaign"
	_ "github.com/KeeghanM/arc-aide-sub000/extension/core"
	_ "github.com/KeeghanM/arc-aide-sub000/extension/search"
	_ "github.com/KeeghanM/arc-aide-sub000/extension/thing"
)
