package slug_test

import (
	"testing"

	"github.com/KeeghanM/arc-aide-sub000/internal/slug"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Goblin Chief Klarg", "goblin-chief-klarg"},
		{"punctuation collapses", "The  Dragon's   Lair!", "the-dragon-s-lair"},
		{"leading and trailing junk", "  ---Cragmaw Castle-- ", "cragmaw-castle"},
		{"digits kept", "Session 12 Notes", "session-12-notes"},
		{"already a slug", "old-arc", "old-arc"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.in))
		})
	}
}

func TestMake_Deterministic(t *testing.T) {
	assert.Equal(t, slug.Make("Goblin Chief Klarg"), slug.Make("Goblin Chief Klarg"))
}
