package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThingTypes(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")

	out := env.run("thing", "type", "new", "phandelver", "NPC")
	env.contains(out, "created type NPC")
	env.run("thing", "type", "new", "phandelver", "Location")

	out = env.run("thing", "type", "ls", "phandelver")
	env.contains(out, "NPC")
	env.contains(out, "Location")
}

func TestThingLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("thing", "type", "new", "phandelver", "NPC")

	out := env.run("thing", "new", "phandelver", "Sildar Hallwinter", "--type", "NPC")
	env.contains(out, "created thing Sildar Hallwinter (sildar-hallwinter)")

	// Untyped things are allowed
	env.run("thing", "new", "phandelver", "Wave Echo Cave")

	out = env.run("thing", "ls", "phandelver")
	env.contains(out, "sildar-hallwinter")
	env.contains(out, "wave-echo-cave")

	// --type filters the listing
	out = env.run("thing", "ls", "phandelver", "--type", "NPC")
	env.contains(out, "sildar-hallwinter")
	assert.NotContains(t, out, "wave-echo-cave")

	out = env.run("thing", "rm", "phandelver", "wave-echo-cave")
	env.contains(out, "deleted thing wave-echo-cave")
}

func TestThingWriteAndShow(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("thing", "new", "phandelver", "Klarg")

	out := env.run("thing", "write", "phandelver", "klarg",
		"A bugbear who leads the goblins of [[arc#cragmaw-hideout]].")
	env.contains(out, "wrote description of klarg")

	var thing struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	env.runJSON(&thing, "show", "phandelver", "thing", "klarg")
	require.Equal(t, "Klarg", thing.Name)
	env.contains(thing.Description, "bugbear")
	env.contains(thing.Description, "[[arc#cragmaw-hideout]]")
}

func TestThingRenamePropagation(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("thing", "new", "phandelver", "Old Thing")
	env.run("arc", "new", "phandelver", "Goblin Ambush")
	env.run("arc", "write", "phandelver", "goblin-ambush", "key",
		"The party must rescue [[thing#old-thing]].")

	out := env.run("thing", "rename", "phandelver", "old-thing", "New Thing")
	env.contains(out, "renamed old-thing -> new-thing (1 arcs, 0 things rewritten)")

	var arc struct {
		Fields map[string]string `json:"fields"`
	}
	env.runJSON(&arc, "show", "phandelver", "arc", "goblin-ambush")
	env.contains(arc.Fields["key"], "[[thing#new-thing]]")
}

func TestLinksCommand(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("thing", "new", "phandelver", "Klarg")
	env.run("thing", "write", "phandelver", "klarg",
		"Guards [[arc#cragmaw-hideout]] and fears [[thing#the-black-spider]].")

	out := env.run("links", "phandelver", "thing", "klarg")
	env.contains(out, "[[arc#cragmaw-hideout]]")
	env.contains(out, "[[thing#the-black-spider]]")
	env.contains(out, "dangling")
}
