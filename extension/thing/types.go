// types.go implements the type subcommands: new, ls.

package thing

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
)

func (e *Extension) newTypeNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <campaign> <name>",
		Short: "Create a thing type",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runTypeNew,
	}
}

func (e *Extension) runTypeNew(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign, name := args[0], args[1]

	tt, err := e.svc.CreateThingType(ctx, campaign, name)

	log.Event("thing:type", "create").Campaign(campaign).Detail("name", name).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("create type %q: %w", name, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"name": tt.Name})
	}
	fmt.Fprintf(cmd.Out(), "created type %s\n", tt.Name)
	return nil
}

func (e *Extension) newTypeLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <campaign>",
		Short: "List a campaign's thing types",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTypeLs,
	}
}

func (e *Extension) runTypeLs(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign := args[0]

	types, err := e.svc.ThingTypes(ctx, campaign)

	log.Event("thing:type", "list").Campaign(campaign).Detail("count", len(types)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list types: %w", err))
	}

	if cmd.JSON() {
		names := make([]string, len(types))
		for i := range types {
			names[i] = types[i].Name
		}
		return cmd.PrintJSON(names)
	}
	for _, tt := range types {
		fmt.Fprintln(cmd.Out(), tt.Name)
	}
	return nil
}
