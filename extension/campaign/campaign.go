// campaign.go implements the "arcaide campaign" command group: new, ls, rm.
//
// Deleting a campaign cascades through every arc, thing and index row it
// owns, so rm refuses to run without --force.

package campaign

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/format"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

func (e *Extension) newCampaignCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
		Long: `Manage campaigns, the top-level containers for arcs and things.

  arcaide campaign new "Lost Mine of Phandelver"
  arcaide campaign ls
  arcaide campaign rm lost-mine-of-phandelver --force`,
	}
	c.AddCommand(e.newNewCmd(), e.newLsCmd(), e.newRmCmd())
	return c
}

func (e *Extension) newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a campaign",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runNew,
	}
}

func (e *Extension) runNew(c *cobra.Command, args []string) error {
	ctx := c.Context()
	name := args[0]

	campaign, err := e.svc.CreateCampaign(ctx, name)

	log.Event("campaign:new", "create").Detail("name", name).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("create campaign %q: %w", name, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(campaign.ToJSON())
	}
	fmt.Fprintf(cmd.Out(), "created campaign %s (%s)\n", campaign.Name, campaign.Slug)
	return nil
}

func (e *Extension) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List campaigns",
		Args:  cobra.NoArgs,
		RunE:  e.runLs,
	}
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	campaigns, err := e.svc.Campaigns(ctx)

	log.Event("campaign:ls", "list").Detail("count", len(campaigns)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list campaigns: %w", err))
	}

	if cmd.JSON() {
		items := make([]store.CampaignJSON, len(campaigns))
		for i := range campaigns {
			items[i] = campaigns[i].ToJSON()
		}
		return cmd.PrintJSON(items)
	}
	format.Campaigns(cmd.Out(), campaigns)
	return nil
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <slug>",
		Short: "Delete a campaign and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	slug := args[0]

	if !cmd.Force() {
		return cmd.PrintJSONError(fmt.Errorf("deleting campaign %q removes all of its arcs and things; re-run with --force", slug))
	}

	err := e.svc.DeleteCampaign(ctx, slug)

	log.Event("campaign:rm", "delete").Campaign(slug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("delete campaign %q: %w", slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"deleted": slug})
	}
	fmt.Fprintf(cmd.Out(), "deleted campaign %s\n", slug)
	return nil
}
