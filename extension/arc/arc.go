// arc.go implements the arc subcommands: new, ls, write, rename, rm.
//
// Write accepts plain text and converts it to the normalized editor document
// before storing, so CLI edits and editor edits produce identical rows.

package arc

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
		Short: "Create an arc",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runNew,
	}
	c.Flags().StringP(extension.FlagParent, "p", "", "Parent arc slug for a nested arc")
	return c
}

func (e *Extension) runNew(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, name := args[0], args[1]
	parent, _ := c.Flags().GetString(extension.FlagParent)

	arc, err := e.svc.CreateArc(ctx, campaign, name, parent)

	log.Event("arc:new", "create").Campaign(campaign).Detail("name", name).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("create arc %q: %w", name, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(arc.ToJSON(false))
	}
	fmt.Fprintf(cmd.Out(), "created arc %s (%s)\n", arc.Name, arc.Slug)
	return nil
}

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls <campaign>",
		Short: "List a campaign's arcs as a tree",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runLs,
	}
	c.Flags().StringP(extension.FlagParent, "p", "", "List only children of this arc")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign := args[0]
	parent, _ := c.Flags().GetString(extension.FlagParent)

	arcs, err := e.svc.Arcs(ctx, campaign, parent)

	log.Event("arc:ls", "list").Campaign(campaign).Detail("count", len(arcs)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list arcs: %w", err))
	}

	if cmd.JSON() {
		items := make([]store.ArcJSON, len(arcs))
		for i := range arcs {
			items[i] = arcs[i].ToJSON(false)
		}
		return cmd.PrintJSON(items)
	}
	format.Arcs(cmd.Out(), arcs)
	return nil
}

func (e *Extension) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <campaign> <slug> <field> [content]",
		Short: "Write one arc field",
		Long: `Write one of an arc's rich-text fields from plain text.

Fields: hook, protagonist, antagonist, problem, key, outcome, notes.
Content comes from the argument, --file, or stdin. Use [[arc#slug]] and
[[thing#slug]] to link other entities; links survive renames.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: e.runWrite,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read content from a file")
	return c
}

func (e *Extension) runWrite(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, slug, field := args[0], args[1], args[2]
	inline := ""
	if len(args) > 3 {
		inline = args[3]
	}
	file, _ := c.Flags().GetString(extension.FlagFile)

	content, err := cmd.ReadContent(inline, file)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	docJSON, err := document.FromPlainText(content).JSON()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write %s: %w", field, err))
	}
	err = e.svc.UpdateArcField(ctx, campaign, slug, field, docJSON)

	log.Event("arc:write", "write").Campaign(campaign).Entity(store.KindArc, slug).Detail("field", field).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write %s of arc %q: %w", field, slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"slug": slug, "field": field})
	}
	fmt.Fprintf(cmd.Out(), "wrote %s of %s\n", field, slug)
	return nil
}

func (e *Extension) newRenameCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rename <campaign> <slug> <new-name>",
		Short: "Rename an arc and rewrite links to it",
		Long: `Rename an arc. Every [[arc#slug]] link to it across the campaign is
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
		diffs, err := e.svc.RenamePreview(ctx, campaign, store.KindArc, slug, newName)
		log.Event("arc:rename", "preview").Campaign(campaign).Entity(store.KindArc, slug).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("rename preview %q: %w", slug, err))
		}
		return cmd.PrintDiffs(diffs)
	}

	res, err := e.svc.RenameArc(ctx, campaign, slug, newName)

	log.Event("arc:rename", "rename").Campaign(campaign).Entity(store.KindArc, slug).Resolved(res.NewSlug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rename arc %q: %w", slug, err))
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
		Short: "Delete an arc",
		Long: `Delete an arc. Child arcs move to the top level; links to the arc
are left dangling.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, slug := args[0], args[1]

	err := e.svc.DeleteArc(ctx, campaign, slug)

	log.Event("arc:rm", "delete").Campaign(campaign).Entity(store.KindArc, slug).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("delete arc %q: %w", slug, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"deleted": slug})
	}
	fmt.Fprintf(cmd.Out(), "deleted arc %s\n", slug)
	return nil
}
