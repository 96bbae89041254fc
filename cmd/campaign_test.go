package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("campaign", "new", "Lost Mine of Phandelver")
	env.contains(out, "lost-mine-of-phandelver")

	out = env.run("campaign", "ls")
	env.contains(out, "Lost Mine of Phandelver")
	env.contains(out, "lost-mine-of-phandelver")

	// Duplicate slugs are rejected
	out, err := env.runErr("campaign", "new", "Lost Mine of Phandelver!")
	require.Error(t, err)
	env.contains(out, "already exists")

	// rm refuses without --force
	out, err = env.runErr("campaign", "rm", "lost-mine-of-phandelver")
	require.Error(t, err)
	env.contains(out, "--force")

	env.run("campaign", "rm", "lost-mine-of-phandelver", "--force")
	out = env.run("campaign", "ls")
	assert.NotContains(t, out, "lost-mine-of-phandelver")
}

func TestCampaignJSONOutput(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Test Campaign")

	var campaigns []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	env.runJSON(&campaigns, "campaign", "ls")

	require.Len(t, campaigns, 1)
	assert.Equal(t, "Test Campaign", campaigns[0].Name)
	assert.Equal(t, "test-campaign", campaigns[0].Slug)
	assert.Len(t, campaigns[0].Key, 8)
}

func TestCampaignExport(t *testing.T) {
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("arc", "new", "phandelver", "Goblin Ambush")
	env.run("arc", "write", "phandelver", "goblin-ambush", "hook", "An overturned wagon.")
	env.run("thing", "new", "phandelver", "Klarg")

	dst := filepath.Join(env.dir, "backup")
	out := env.run("export", "phandelver", dst)
	env.contains(out, "exported 2 documents")

	data, err := os.ReadFile(filepath.Join(dst, "arcs", "goblin-ambush.md"))
	require.NoError(t, err)
	env.contains(string(data), "# Goblin Ambush")
	env.contains(string(data), "An overturned wagon.")

	// Refuses to overwrite without --force
	out, err = env.runErr("export", "phandelver", dst)
	require.Error(t, err)
	env.contains(out, "--force")

	env.run("export", "phandelver", dst, "--force")
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "Platform:")
}
