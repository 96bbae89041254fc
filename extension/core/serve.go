// serve.go implements the "arcaide serve" command for the HTTP JSON API.
//
// Unlike other commands that run and exit, serve blocks indefinitely
// handling HTTP requests. It is a NoStoreCommand: it opens and closes its
// own service so the connection lifetime matches the server lifetime rather
// than the CLI framework's.

package core

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/campaign"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/web"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP JSON API server",
		Long: `Start the HTTP JSON API server for campaign management.

The listen address comes from server.listen in the config
(default 127.0.0.1:8787) and can be overridden with --listen.`,
		RunE: runServe,
	}
	c.Flags().String(extension.FlagListen, "", "Listen address (overrides config)")
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	listen, _ := c.Flags().GetString(extension.FlagListen)
	if listen == "" {
		listen = cfg.Listen()
	}

	svc, err := campaign.New(cfg)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer svc.Close()

	log.SetDatabase(cfg.DBPath())
	log.SetAuthor("web")
	log.Event("core:serve", "serve").Detail("listen", listen).Write(nil)
	fmt.Fprintf(cmd.Out(), "arcaide listening on http://%s\n", listen)

	return http.ListenAndServe(listen, web.NewServer(svc).Handler())
}
