// init.go implements the "arcaide init" command for database initialisation.
//
// Init is special because it runs before a store exists and creates the
// initial database. Day-to-day commands also create the database lazily;
// init exists so setup failures surface immediately with a clear message
// instead of on the first real command.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/internal/campaign"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialise the arcaide database",
		Long: `Creates the campaign database and schema.

By default the database lives at ~/.arcaide/campaigns.db. Use --db or set
database.path in the config to choose a different location:
  arcaide init --db ./campaigns.db

Note: init does not create config. Use "arcaide config" to set up configuration.`,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	svc, err := campaign.New(cfg)

	log.Event("core:init", "init").Detail("db", cfg.DBPath()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}
	defer svc.Close()

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"database": cfg.DBPath()})
	}
	fmt.Fprintf(cmd.Out(), "Initialised arcaide database in %s\n", cfg.DBPath())
	return nil
}
