/*
Copyright © 2026 Keeghan McGarry (KeeghanM) <keeghan@arc-aide.com>
*/
package main

import (
	"github.com/KeeghanM/arc-aide-sub000/cmd"

	// Import extensions - each registers itself via init()
	_ "github.com/KeeghanM/arc-aide-sub000/extension/all"
)

func main() {
	cmd.Execute()
}
