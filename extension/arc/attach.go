// attach.go implements the arc attach, detach and things subcommands for
// managing arc-thing associations.

package arc

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/format"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

func (e *Extension) newAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <campaign> <arc-slug> <thing-slug>",
		Short: "Attach a thing to an arc",
		Long:  `Attach a thing to an arc. Attaching the same pair twice is a no-op.`,
		Args:  cobra.ExactArgs(3),
		RunE:  e.runAttach,
	}
}

func (e *Extension) runAttach(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, arcSlug, thingSlug := args[0], args[1], args[2]

	err := e.svc.AttachThing(ctx, campaign, arcSlug, thingSlug)

	log.Event("arc:attach", "attach").Campaign(campaign).Entity(store.KindArc, arcSlug).Detail("thing", thingSlug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("attach %q to %q: %w", thingSlug, arcSlug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"arc": arcSlug, "thing": thingSlug})
	}
	fmt.Fprintf(cmd.Out(), "attached %s to %s\n", thingSlug, arcSlug)
	return nil
}

func (e *Extension) newDetachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detach <campaign> <arc-slug> <thing-slug>",
		Short: "Detach a thing from an arc",
		Args:  cobra.ExactArgs(3),
		RunE:  e.runDetach,
	}
}

func (e *Extension) runDetach(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, arcSlug, thingSlug := args[0], args[1], args[2]

	err := e.svc.DetachThing(ctx, campaign, arcSlug, thingSlug)

	log.Event("arc:attach", "detach").Campaign(campaign).Entity(store.KindArc, arcSlug).Detail("thing", thingSlug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("detach %q from %q: %w", thingSlug, arcSlug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"arc": arcSlug, "thing": thingSlug})
	}
	fmt.Fprintf(cmd.Out(), "detached %s from %s\n", thingSlug, arcSlug)
	return nil
}

func (e *Extension) newThingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "things <campaign> <arc-slug>",
		Short: "List the things attached to an arc",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runThings,
	}
}

func (e *Extension) runThings(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, arcSlug := args[0], args[1]

	things, err := e.svc.ThingsForArc(ctx, campaign, arcSlug)

	log.Event("arc:things", "list").Campaign(campaign).Entity(store.KindArc, arcSlug).Detail("count", len(things)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list things of arc %q: %w", arcSlug, err))
	}

	if cmd.JSON() {
		items := make([]store.ThingJSON, len(things))
		for i := range things {
			items[i] = things[i].ToJSON(false)
		}
		return cmd.PrintJSON(items)
	}
	format.Things(cmd.Out(), things)
	return nil
}
