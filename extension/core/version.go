// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/version"
)

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the build tag, commit, build time, Go version and platform.`,
		Run: func(c *cobra.Command, _ []string) {
			info := version.Get()
			if cmd.JSON() {
				_ = cmd.PrintJSON(info)
				return
			}
			if short, _ := c.Flags().GetBool("short"); short {
				fmt.Fprintln(cmd.Out(), version.Short())
				return
			}
			fmt.Fprint(cmd.Out(), info.String())
		},
	}
	c.Flags().Bool("short", false, "Print just the version")
	return c
}
