package link_test

import (
	"testing"

	"github.com/KeeghanM/arc-aide-sub000/internal/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_Classification(t *testing.T) {
	tests := []struct {
		name string
		text string
		want link.Kind
	}{
		{"empty marker", "before [[]] after", link.Empty},
		{"whitespace only", "[[   ]]", link.Empty},
		{"resolved arc", "[[arc#old-arc]]", link.Resolved},
		{"resolved thing", "[[thing#goblin-chief-klarg]]", link.Resolved},
		{"no hash is malformed", "[[just some words]]", link.Malformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers := link.Scan(tt.text)
			require.Len(t, markers, 1)
			assert.Equal(t, tt.want, markers[0].Kind)
		})
	}
}

func TestScan_ResolvedSplitsOnFirstHash(t *testing.T) {
	markers := link.Scan("[[thing#slug#with#hashes]]")
	require.Len(t, markers, 1)
	m := markers[0]
	assert.Equal(t, link.Resolved, m.Kind)
	assert.Equal(t, "thing", m.EntityType)
	assert.Equal(t, "slug#with#hashes", m.Slug)
}

func TestScan_Spans(t *testing.T) {
	text := "go to [[arc#first]] then [[]] done"
	markers := link.Scan(text)
	require.Len(t, markers, 2)

	assert.Equal(t, "[[arc#first]]", text[markers[0].Start:markers[0].End])
	assert.Equal(t, "[[]]", text[markers[1].Start:markers[1].End])

	// Left-to-right, non-overlapping
	assert.Less(t, markers[0].End, markers[1].Start)
}

func TestScan_NoNesting(t *testing.T) {
	// The content group excludes ']', so the first ']]' terminates the match.
	markers := link.Scan("[[arc#a]] trailing ]]")
	require.Len(t, markers, 1)
	assert.Equal(t, "a", markers[0].Slug)
}

func TestScan_NoMarkers(t *testing.T) {
	assert.Nil(t, link.Scan("plain text with [single] brackets"))
}

func TestScan_Restartable(t *testing.T) {
	text := "[[arc#a]] and [[thing#b]]"
	first := link.Scan(text)
	second := link.Scan(text)
	assert.Equal(t, first, second)
}

func TestMarker_NeedsSearch(t *testing.T) {
	markers := link.Scan("[[]] [[oops]] [[arc#fine]]")
	require.Len(t, markers, 3)
	assert.True(t, markers[0].NeedsSearch())
	assert.True(t, markers[1].NeedsSearch(), "malformed is handled identically to empty")
	assert.False(t, markers[2].NeedsSearch())
}

func TestBuild_RoundTrip(t *testing.T) {
	built := link.Build(link.KindArc, "new-arc")
	assert.Equal(t, "[[arc#new-arc]]", built)

	markers := link.Scan(built)
	require.Len(t, markers, 1)
	assert.Equal(t, "arc", markers[0].EntityType)
	assert.Equal(t, "new-arc", markers[0].Slug)
	assert.Equal(t, built, markers[0].String())
}

func TestScanResolved(t *testing.T) {
	markers := link.ScanResolved("[[]] [[arc#a]] [[junk]] [[thing#b]]")
	require.Len(t, markers, 2)
	assert.Equal(t, "a", markers[0].Slug)
	assert.Equal(t, "b", markers[1].Slug)
}
