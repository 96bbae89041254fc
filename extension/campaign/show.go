// show.go implements the "arcaide show" command for reading entities.
//
// Terminal output gets glamour markdown rendering; pipe/redirect gets raw
// markdown, matching how Unix tools adapt to TTY vs pipe.

package campaign

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/format"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <campaign> <kind> <slug>",
		Short: "Read an arc or thing",
		Long: `Output an entity's content as markdown.

  arcaide show lost-mine arc goblin-ambush
  arcaide show lost-mine thing klarg --raw`,
		Args: cobra.ExactArgs(3),
		RunE: e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, kind, slug := args[0], args[1], args[2]
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	var md string
	var jsonOut any
	var err error

	switch kind {
	case store.KindArc:
		var arc *store.Arc
		arc, err = e.svc.Arc(ctx, campaign, slug)
		if err == nil {
			md = format.ArcMarkdown(arc)
			jsonOut = arc.ToJSON(true)
		}
	case store.KindThing:
		var th *store.Thing
		th, err = e.svc.Thing(ctx, campaign, slug)
		if err == nil {
			md = format.ThingMarkdown(th)
			jsonOut = th.ToJSON(true)
		}
	default:
		err = fmt.Errorf("unknown kind %q (want arc or thing)", kind)
	}

	log.Event("campaign:show", "read").Campaign(campaign).Entity(kind, slug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %s %q: %w", kind, slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(jsonOut)
	}

	// Render with glamour if TTY and not --raw
	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, renderErr := glamour.Render(md, "dark")
		if renderErr == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}

	fmt.Fprint(cmd.Out(), md)
	return nil
}
