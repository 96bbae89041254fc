package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"boolean operator excluded", "dragon AND sword", []string{"dragon", "sword"}},
		{"operators excluded case-insensitively", "dragon and sword", []string{"dragon", "sword"}},
		{"all operators excluded", "a OR b NOT c NEAR d", []string{"a", "b", "c", "d"}},
		{"field qualifier excluded", "title:dragon", []string{"dragon"}},
		{"prefix wildcard excluded", "drag*", []string{}},
		{"mixed", "title:hook dragon NEAR lair drag*", []string{"hook", "dragon", "lair"}},
		{"duplicates preserved in order", "klarg klarg goblin", []string{"klarg", "klarg", "goblin"}},
		{"unicode term", "drägon attacks", []string{"drägon", "attacks"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, template := ExtractTerms(tt.query)
			assert.Equal(t, tt.query, template, "template is returned unchanged")
			if len(tt.want) == 0 {
				assert.Empty(t, terms)
				return
			}
			assert.Equal(t, tt.want, terms)
		})
	}
}

func TestApplyCorrections(t *testing.T) {
	t.Run("case-insensitive whole word", func(t *testing.T) {
		got := ApplyCorrections("Dragn attacks", []string{"Dragn"}, map[string]string{"dragn": "dragon"})
		assert.Equal(t, "dragon attacks", got)
	})

	t.Run("partial words untouched", func(t *testing.T) {
		got := ApplyCorrections("Dragn and Dragnfly", []string{"Dragn"}, map[string]string{"dragn": "dragon"})
		assert.Equal(t, "dragon and Dragnfly", got)
	})

	t.Run("all occurrences replaced", func(t *testing.T) {
		got := ApplyCorrections("klark or KLARK", []string{"klark", "KLARK"}, map[string]string{"klark": "klarg"})
		assert.Equal(t, "klarg or klarg", got)
	})

	t.Run("case-only difference skipped", func(t *testing.T) {
		got := ApplyCorrections("Dragon lair", []string{"Dragon"}, map[string]string{"dragon": "dragon"})
		assert.Equal(t, "Dragon lair", got)
	})

	t.Run("no corrections returns equal string", func(t *testing.T) {
		got := ApplyCorrections("dragon lair", []string{"dragon", "lair"}, nil)
		assert.Equal(t, "dragon lair", got)
	})

	t.Run("operator syntax survives", func(t *testing.T) {
		got := ApplyCorrections("klark AND goblin", []string{"klark", "goblin"}, map[string]string{"klark": "klarg"})
		assert.Equal(t, "klarg AND goblin", got)
	})
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`dragon "lair" (cave)`, "dragon lair cave"},
		{"  klarg  ", "klarg"},
		{"title:dragon", "titledragon"},
		{"'; DROP TABLE arcs;--", "DROP TABLE arcs"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), "Sanitize(%q)", tt.in)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"klarg", "leads", "the", "warband"}, Tokenize("Klarg leads the warband!"))
	assert.Nil(t, Tokenize("..."))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"klarg", "klarg", 0},
		{"klark", "klarg", 1},
		{"dragn", "dragon", 1},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"dräg", "drag", 1}, // rune-counted, not byte-counted
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}

// fakeVocab implements Vocabulary over a fixed term list, with optional
// error injection to exercise degraded mode.
type fakeVocab struct {
	terms []Term
	err   error
}

func (f *fakeVocab) TermsNear(_ context.Context, _ string, _ int) ([]Term, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.terms, nil
}

func TestCorrector(t *testing.T) {
	t.Run("nearest term wins", func(t *testing.T) {
		c := NewCorrector(&fakeVocab{terms: []Term{
			{Term: "klarg", Frequency: 3},
			{Term: "klar", Frequency: 10},
		}})
		corr := c.Correct(context.Background(), []string{"klark"})
		require.False(t, corr.Degraded)
		// Both are distance 1; higher frequency breaks the tie.
		assert.Equal(t, "klar", corr.ByTerm["klark"])
	})

	t.Run("lowest distance beats frequency", func(t *testing.T) {
		c := NewCorrector(&fakeVocab{terms: []Term{
			{Term: "dragon", Frequency: 1},
			{Term: "wagon", Frequency: 100},
		}})
		corr := c.Correct(context.Background(), []string{"dragn"})
		assert.Equal(t, "dragon", corr.ByTerm["dragn"])
	})

	t.Run("exact match preferred automatically", func(t *testing.T) {
		c := NewCorrector(&fakeVocab{terms: []Term{
			{Term: "dragon", Frequency: 1},
			{Term: "dragons", Frequency: 50},
		}})
		corr := c.Correct(context.Background(), []string{"dragon"})
		assert.Equal(t, "dragon", corr.ByTerm["dragon"])
	})

	t.Run("out of range maps to itself", func(t *testing.T) {
		c := NewCorrector(&fakeVocab{terms: []Term{{Term: "completely", Frequency: 5}}})
		corr := c.Correct(context.Background(), []string{"klark"})
		assert.Equal(t, "klark", corr.ByTerm["klark"])
	})

	t.Run("backend failure degrades to identity", func(t *testing.T) {
		backendErr := errors.New("no such module: vocabulary")
		c := NewCorrector(&fakeVocab{err: backendErr})
		corr := c.Correct(context.Background(), []string{"dragn", "Klark"})
		assert.True(t, corr.Degraded)
		assert.Equal(t, backendErr, corr.Err)
		assert.Equal(t, "dragn", corr.ByTerm["dragn"])
		assert.Equal(t, "klark", corr.ByTerm["klark"])
	})
}

// fakeIndex records the query it receives and returns canned hits.
type fakeIndex struct {
	got  IndexQuery
	hits []Hit
	err  error
}

func (f *fakeIndex) SearchRank(_ context.Context, q IndexQuery) ([]Hit, error) {
	f.got = q
	return f.hits, f.err
}

func TestEngine_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("empty sanitized query returns empty result without touching index", func(t *testing.T) {
		idx := &fakeIndex{err: errors.New("should not be called")}
		e := NewEngine(idx, NewCorrector(&fakeVocab{}))
		resp, err := e.Search(ctx, Request{CampaignID: 1, Query: "!!!"})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.Equal(t, "!!!", resp.OriginalQuery)
	})

	t.Run("invalid kind defaults to any", func(t *testing.T) {
		idx := &fakeIndex{}
		e := NewEngine(idx, NewCorrector(&fakeVocab{}))
		_, err := e.Search(ctx, Request{CampaignID: 1, Query: "klarg", Kind: "monster"})
		require.NoError(t, err)
		assert.Equal(t, KindAny, idx.got.Kind)
	})

	t.Run("fuzzy correction rewrites the match", func(t *testing.T) {
		idx := &fakeIndex{hits: []Hit{{Slug: "goblin-chief-klarg", Rank: -1.5}}}
		vocab := &fakeVocab{terms: []Term{{Term: "klarg", Frequency: 2}}}
		e := NewEngine(idx, NewCorrector(vocab))

		resp, err := e.Search(ctx, Request{CampaignID: 1, Query: "klark", Fuzzy: true})
		require.NoError(t, err)
		assert.Equal(t, "klarg", idx.got.Match)
		assert.Equal(t, "klark", resp.OriginalQuery)
		assert.Equal(t, "klarg", resp.CorrectedQuery)
		require.Len(t, resp.Results, 1)
	})

	t.Run("identical correction treated as uncorrected", func(t *testing.T) {
		idx := &fakeIndex{}
		vocab := &fakeVocab{terms: []Term{{Term: "klarg", Frequency: 2}}}
		e := NewEngine(idx, NewCorrector(vocab))

		resp, err := e.Search(ctx, Request{CampaignID: 1, Query: "klarg", Fuzzy: true})
		require.NoError(t, err)
		assert.Empty(t, resp.CorrectedQuery)
	})

	t.Run("degraded correction still searches", func(t *testing.T) {
		idx := &fakeIndex{hits: []Hit{}}
		e := NewEngine(idx, NewCorrector(&fakeVocab{err: errors.New("vocabulary missing")}))

		resp, err := e.Search(ctx, Request{CampaignID: 1, Query: "dragn", Fuzzy: true})
		require.NoError(t, err)
		assert.True(t, resp.Degraded)
		assert.ErrorContains(t, resp.DegradedErr, "vocabulary missing")
		assert.Empty(t, resp.CorrectedQuery)
		assert.Equal(t, "dragn", idx.got.Match)
	})

	t.Run("index failure propagates", func(t *testing.T) {
		idx := &fakeIndex{err: errors.New("database is locked")}
		e := NewEngine(idx, NewCorrector(&fakeVocab{}))
		_, err := e.Search(ctx, Request{CampaignID: 1, Query: "klarg"})
		require.Error(t, err)
	})
}
