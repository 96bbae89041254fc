// Package thing provides commands for managing campaign things and their
// types. Registers the "thing" command group, including the nested
// "thing type" subgroup.
package thing

import (
	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the thing extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "thing" - this extension manages the campaign catalog.
func (e *Extension) Name() string { return "thing" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the thing command group with the type subgroup nested
// under it.
func (e *Extension) Commands() []*cobra.Command {
	thing := &cobra.Command{
		Use:   "thing",
		Short: "Manage campaign things",
		Long: `Manage a campaign's things: characters, locations, items and whatever
else the table needs, each with one rich-text description.

  arcaide thing new lost-mine "Klarg" --type NPC
  arcaide thing ls lost-mine --type NPC
  arcaide thing write lost-mine klarg "Klarg leads the [[arc#cragmaw-hideout]] goblins."
  arcaide thing rename lost-mine klarg "King Klarg"`,
	}
	thing.AddCommand(
		e.newNewCmd(),
		e.newLsCmd(),
		e.newWriteCmd(),
		e.newRenameCmd(),
		e.newRmCmd(),
	)

	typ := &cobra.Command{
		Use:   "type",
		Short: "Manage thing types",
		Long: `Manage the per-campaign category labels for things.

  arcaide thing type new lost-mine NPC
  arcaide thing type ls lost-mine`,
	}
	typ.AddCommand(e.newTypeNewCmd(), e.newTypeLsCmd())
	thing.AddCommand(typ)

	return []*cobra.Command{thing}
}
