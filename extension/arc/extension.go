// Package arc provides commands for managing narrative arcs.
// Registers the "arc" command group: new, ls, write, rename, rm, attach,
// detach, things.
package arc

import (
	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the arc extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "arc" - this extension manages narrative arcs.
func (e *Extension) Name() string { return "arc" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the arc command group.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "arc",
		Short: "Manage narrative arcs",
		Long: `Manage a campaign's narrative arcs and their rich-text fields.

  arcaide arc new lost-mine "Goblin Ambush"
  arcaide arc ls lost-mine
  arcaide arc write lost-mine goblin-ambush hook "An ambush on the Triboar Trail."
  arcaide arc rename lost-mine goblin-ambush "Cragmaw Ambush" --dry-run
  arcaide arc rm lost-mine goblin-ambush`,
	}
	c.AddCommand(
		e.newNewCmd(),
		e.newLsCmd(),
		e.newWriteCmd(),
		e.newRenameCmd(),
		e.newRmCmd(),
		e.newAttachCmd(),
		e.newDetachCmd(),
		e.newThingsCmd(),
	)
	return []*cobra.Command{c}
}
