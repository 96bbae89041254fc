// export.go implements the "arcaide export" command for writing a campaign
// out as markdown files.

package campaign

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/exporter"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
)

func (e *Extension) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <campaign> <directory>",
		Short: "Export a campaign to markdown files",
		Long: `Export every arc and thing in a campaign as markdown files.

Arcs are written under <directory>/arcs/ and things under <directory>/things/,
one file per entity, named by slug. Existing files are only overwritten with
--force.

  arcaide export lost-mine ./backup
  arcaide export lost-mine ./backup --force`,
		Args: cobra.ExactArgs(2),
		RunE: e.runExport,
	}
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, dst := args[0], args[1]

	res, err := exporter.Run(ctx, cmd.Out(), e.svc, campaign, dst, exporter.Options{
		Force: cmd.Force(),
	})

	log.Event("campaign:export", "read").Campaign(campaign).Detail("exported", res.Exported).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export %q: %w", campaign, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"exported": res.Exported,
			"paths":    res.Paths,
		})
	}
	fmt.Fprintf(cmd.Out(), "exported %d documents to %s\n", res.Exported, dst)
	return nil
}
