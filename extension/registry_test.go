package extension

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type fakeExt struct{ name string }

func (f *fakeExt) Name() string               { return f.name }
func (f *fakeExt) Commands() []*cobra.Command { return nil }

func TestRegisterPreservesOrder(t *testing.T) {
	before := len(All())

	Register(&fakeExt{name: "zz-test-first"})
	Register(&fakeExt{name: "aa-test-second"})

	names := Names()
	assert.Equal(t, "zz-test-first", names[before])
	assert.Equal(t, "aa-test-second", names[before+1])
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(&fakeExt{name: "dup-test"})
	assert.Panics(t, func() {
		Register(&fakeExt{name: "dup-test"})
	})
}
