// links.go implements the "arcaide links" command for inspecting an
// entity's [[kind#slug]] markers and their resolution state.

package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
)

func (e *Extension) newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links <campaign> <kind> <slug>",
		Short: "List an entity's links",
		Long: `List the [[kind#slug]] links in an entity's documents.

Dangling links (targets that don't exist) are reported, not repaired: the
target may be created later under the same slug.

  arcaide links lost-mine arc cragmaw-hideout`,
		Args: cobra.ExactArgs(3),
		RunE: e.runLinks,
	}
}

func (e *Extension) runLinks(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, kind, slug := args[0], args[1], args[2]

	links, err := e.svc.Links(ctx, campaign, kind, slug)

	log.Event("search:links", "read").Campaign(campaign).Entity(kind, slug).Detail("count", len(links)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("links of %s %q: %w", kind, slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(links)
	}

	for _, l := range links {
		state := "ok"
		if !l.Exists {
			state = "dangling"
		}
		fmt.Fprintf(cmd.Out(), "%-10s %s  (in %s)\n", state, l.Marker.String(), l.Field)
	}
	if len(links) == 0 {
		fmt.Fprintln(cmd.Out(), "no links")
	}
	return nil
}
