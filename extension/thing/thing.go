// thing.go implements the thing subcommands: new, ls, write, rename, rm.

package thing

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/document"
	"github.com/KeeghanM/arc-aide-sub000/internal/format"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/store"
)

func (e *Extension) newNewCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "new <campaign> <name>",
		Short: "Create a thing",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runNew,
	}
	c.Flags().StringP(extension.FlagType, "t", "", "Type name (must already exist)")
	return c
}

func (e *Extension) runNew(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, name := args[0], args[1]
	typeName, _ := c.Flags().GetString(extension.FlagType)

	th, err := e.svc.CreateThing(ctx, campaign, name, typeName)

	log.Event("thing:new", "create").Campaign(campaign).Detail("name", name).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("create thing %q: %w", name, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(th.ToJSON(false))
	}
	fmt.Fprintf(cmd.Out(), "created thing %s (%s)\n", th.Name, th.Slug)
	return nil
}

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls <campaign>",
		Short: "List a campaign's things",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runLs,
	}
	c.Flags().StringP(extension.FlagType, "t", "", "List only things of this type")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign := args[0]
	typeName, _ := c.Flags().GetString(extension.FlagType)

	things, err := e.svc.Things(ctx, campaign, typeName)

	log.Event("thing:ls", "list").Campaign(campaign).Detail("count", len(things)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list things: %w", err))
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

func (e *Extension) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <campaign> <slug> [content]",
		Short: "Write a thing's description",
		Long: `Write a thing's description from plain text.

Content comes from the argument, --file, or stdin. Use [[arc#slug]] and
[[thing#slug]] to link other entities; links survive renames.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: e.runWrite,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read content from a file")
	return c
}

func (e *Extension) runWrite(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, slug := args[0], args[1]
	inline := ""
	if len(args) > 2 {
		inline = args[2]
	}
	file, _ := c.Flags().GetString(extension.FlagFile)

	content, err := cmd.ReadContent(inline, file)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	docJSON, err := document.FromPlainText(content).JSON()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write description: %w", err))
	}
	err = e.svc.UpdateThingDescription(ctx, campaign, slug, docJSON)

	log.Event("thing:write", "write").Campaign(campaign).Entity(store.KindThing, slug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write description of thing %q: %w", slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"slug": slug})
	}
	fmt.Fprintf(cmd.Out(), "wrote description of %s\n", slug)
	return nil
}

func (e *Extension) newRenameCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rename <campaign> <slug> <new-name>",
		Short: "Rename a thing and rewrite links to it",
		Long: `Rename a thing. Every [[thing#slug]] link to it across the campaign is
rewritten to the new slug in the same transaction.

Use --dry-run to preview the rewrites as diffs without changing anything.`,
		Args: cobra.ExactArgs(3),
		RunE: e.runRename,
	}
	c.Flags().Bool(extension.FlagDryRun, false, "Preview link rewrites without writing")
	return c
}

func (e *Extension) runRename(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, slug, newName := args[0], args[1], args[2]
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	if dryRun {
		diffs, err := e.svc.RenamePreview(ctx, campaign, store.KindThing, slug, newName)
		log.Event("thing:rename", "preview").Campaign(campaign).Entity(store.KindThing, slug).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("rename preview %q: %w", slug, err))
		}
		return cmd.PrintDiffs(diffs)
	}

	res, err := e.svc.RenameThing(ctx, campaign, slug, newName)

	log.Event("thing:rename", "rename").Campaign(campaign).Entity(store.KindThing, slug).Resolved(res.NewSlug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rename thing %q: %w", slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	fmt.Fprintf(cmd.Out(), "renamed %s -> %s (%d arcs, %d things rewritten)\n",
		res.OldSlug, res.NewSlug, res.ArcsRewritten, res.ThingsRewritten)
	return nil
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <campaign> <slug>",
		Short: "Delete a thing",
		Long: `Delete a thing and its arc attachments. Links to the thing are left
dangling.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, slug := args[0], args[1]

	err := e.svc.DeleteThing(ctx, campaign, slug)

	log.Event("thing:rm", "delete").Campaign(campaign).Entity(store.KindThing, slug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("delete thing %q: %w", slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"deleted": slug})
	}
	fmt.Fprintf(cmd.Out(), "deleted thing %s\n", slug)
	return nil
}
