// Package campaign provides campaign container commands and entity display.
// Registers commands: campaign, show, export.
package campaign

import (
	"github.com/spf13/cobra"

	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the campaign extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "campaign" - this extension manages campaign containers.
func (e *Extension) Name() string { return "campaign" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the campaign command group plus show and export.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newCampaignCmd(),
		e.newShowCmd(),
		e.newExportCmd(),
	}
}
