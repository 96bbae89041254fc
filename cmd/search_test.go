package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSearchEnv builds a small campaign with enough content to search.
func seedSearchEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.run("campaign", "new", "Phandelver")
	env.run("arc", "new", "phandelver", "Cragmaw Hideout")
	env.run("arc", "write", "phandelver", "cragmaw-hideout", "hook",
		"The bugbear Klarg commands the goblins from a cave.")
	env.run("thing", "new", "phandelver", "Klarg")
	env.run("thing", "write", "phandelver", "klarg",
		"A vain bugbear chieftain who serves the Black Spider.")
	return env
}

func TestSearchBasic(t *testing.T) {
	env := seedSearchEnv(t)

	out := env.run("search", "phandelver", "bugbear")
	env.contains(out, "arc#cragmaw-hideout")
	env.contains(out, "thing#klarg")
	env.contains(out, "bugbear")

	out = env.run("search", "phandelver", "tarrasque")
	env.contains(out, "no results")
}

func TestSearchCorrection(t *testing.T) {
	env := seedSearchEnv(t)

	// Misspelled term is corrected against the observed vocabulary
	out := env.run("search", "phandelver", "bugbaer")
	env.contains(out, `showing results for "bugbear" (searched for "bugbaer")`)
	env.contains(out, "thing#klarg")

	// Correction can be disabled
	out = env.run("search", "phandelver", "bugbaer", "--fuzzy=false")
	env.contains(out, "no results")
}

func TestSearchTypeFilter(t *testing.T) {
	env := seedSearchEnv(t)

	out := env.run("search", "phandelver", "bugbear", "--type", "arc")
	env.contains(out, "arc#cragmaw-hideout")
	assert.NotContains(t, out, "thing#klarg")

	out = env.run("search", "phandelver", "bugbear", "--type", "thing")
	env.contains(out, "thing#klarg")
	assert.NotContains(t, out, "arc#cragmaw-hideout")
}

func TestSearchJSON(t *testing.T) {
	env := seedSearchEnv(t)

	var resp struct {
		Results []struct {
			Type      string `json:"type"`
			Slug      string `json:"slug"`
			Title     string `json:"title"`
			Highlight string `json:"highlight"`
		} `json:"results"`
		OriginalQuery  string `json:"originalQuery"`
		CorrectedQuery string `json:"correctedQuery"`
	}
	env.runJSON(&resp, "search", "phandelver", "goblins")

	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "goblins", resp.OriginalQuery)
	assert.Empty(t, resp.CorrectedQuery)
	assert.Equal(t, "cragmaw-hideout", resp.Results[0].Slug)
	env.contains(resp.Results[0].Highlight, "<mark>goblins</mark>")
}

func TestSearchMultiWordQuery(t *testing.T) {
	env := seedSearchEnv(t)

	// Everything after the campaign joins into one query
	out := env.run("search", "phandelver", "Black", "Spider")
	env.contains(out, "thing#klarg")
}
