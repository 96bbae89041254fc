package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")

	out := env.run("arc", "new", "phandelver", "Goblin Ambush")
	env.contains(out, "created arc Goblin Ambush (goblin-ambush)")

	// Child arcs nest under their parent in the listing
	env.run("arc", "new", "phandelver", "Cragmaw Hideout", "--parent", "goblin-ambush")

	out = env.run("arc", "ls", "phandelver")
	env.contains(out, "goblin-ambush")
	env.contains(out, "  Cragmaw Hideout")

	out = env.run("arc", "rm", "phandelver", "cragmaw-hideout")
	env.contains(out, "deleted arc cragmaw-hideout")
}

func TestArcWrite(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("arc", "new", "phandelver", "Goblin Ambush")

	// Inline content
	out := env.run("arc", "write", "phandelver", "goblin-ambush", "hook",
		"Goblins attack the wagon on the Triboar Trail.")
	env.contains(out, "wrote hook of goblin-ambush")

	// Stdin content
	out = env.runStdin("Sildar Hallwinter is captured.",
		"arc", "write", "phandelver", "goblin-ambush", "problem")
	env.contains(out, "wrote problem of goblin-ambush")

	var arc struct {
		Fields map[string]string `json:"fields"`
	}
	env.runJSON(&arc, "show", "phandelver", "arc", "goblin-ambush")
	env.contains(arc.Fields["hook"], "Triboar Trail")
	env.contains(arc.Fields["problem"], "Sildar Hallwinter")

	// Unknown field names are rejected
	out, err := env.runErr("arc", "write", "phandelver", "goblin-ambush", "sidequest", "nope")
	require.Error(t, err)
	env.contains(out, "sidequest")
}

func TestArcRenamePropagation(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("arc", "new", "phandelver", "Old Arc")
	env.run("thing", "type", "new", "phandelver", "NPC")
	env.run("thing", "new", "phandelver", "Klarg", "--type", "NPC")
	env.run("thing", "write", "phandelver", "klarg", "Klarg guards [[arc#old-arc]] fiercely.")

	// Dry run shows the rewrite without applying it
	out := env.run("arc", "rename", "phandelver", "old-arc", "New Arc", "--dry-run")
	env.contains(out, "--- ")
	env.contains(out, "+++ ")
	env.contains(out, "new-arc")

	var thing struct {
		Description string `json:"description"`
	}
	env.runJSON(&thing, "show", "phandelver", "thing", "klarg")
	env.contains(thing.Description, "[[arc#old-arc]]")

	out = env.run("arc", "rename", "phandelver", "old-arc", "New Arc")
	env.contains(out, "renamed old-arc -> new-arc (0 arcs, 1 things rewritten)")

	env.runJSON(&thing, "show", "phandelver", "thing", "klarg")
	env.contains(thing.Description, "[[arc#new-arc]]")
	assert.NotContains(t, thing.Description, "old-arc")
}

func TestArcRenameNoReferences(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("arc", "new", "phandelver", "Lonely Arc")

	out := env.run("arc", "rename", "phandelver", "lonely-arc", "Still Lonely", "--dry-run")
	env.contains(out, "no documents would change")
}

func TestArcAttachAndThings(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("arc", "new", "phandelver", "Cragmaw Hideout")
	env.run("thing", "type", "new", "phandelver", "NPC")
	env.run("thing", "new", "phandelver", "Klarg", "--type", "NPC")

	out := env.run("arc", "attach", "phandelver", "cragmaw-hideout", "klarg")
	env.contains(out, "attached klarg to cragmaw-hideout")

	out = env.run("arc", "things", "phandelver", "cragmaw-hideout")
	env.contains(out, "klarg")
	env.contains(out, "NPC")

	out = env.run("arc", "detach", "phandelver", "cragmaw-hideout", "klarg")
	env.contains(out, "detached klarg from cragmaw-hideout")

	out = env.run("arc", "things", "phandelver", "cragmaw-hideout")
	assert.NotContains(t, out, "klarg")
}
