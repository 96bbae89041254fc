// search.go implements the "arcaide search" command for ranked full-text
// search within one campaign.
//
// Fuzzy correction is on by default (subject to search.fuzzy in the config);
// --fuzzy=false turns it off for a single query.

package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/KeeghanM/arc-aide-sub000/cmd"
	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/format"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <campaign> <query>...",
		Short: "Full-text search within a campaign",
		Long: `Ranked full-text search across a campaign's arcs and things.

Misspelled terms are corrected against the campaign's vocabulary unless
--fuzzy=false. Results are ranked by relevance with matching terms
highlighted.

  arcaide search lost-mine klarg
  arcaide search lost-mine "goblin ambush" --type arc
  arcaide search lost-mine klrag --fuzzy=false`,
		Args: cobra.MinimumNArgs(2),
		RunE: e.runSearch,
	}
	c.Flags().StringP(extension.FlagType, "t", "", "Limit results to 'arc' or 'thing'")
	c.Flags().Bool(extension.FlagFuzzy, true, "Spell-correct query terms")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum results (0 = configured default)")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	campaign := args[0]
	query := strings.Join(args[1:], " ")

	kind, _ := c.Flags().GetString(extension.FlagType)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	opts := service.SearchOptions{Kind: kind, Limit: limit}
	if c.Flags().Changed(extension.FlagFuzzy) {
		fuzzy, _ := c.Flags().GetBool(extension.FlagFuzzy)
		opts.Fuzzy = &fuzzy
	}

	resp, err := e.svc.Search(ctx, campaign, query, opts)

	ev := log.Event("search:search", "search").Campaign(campaign).
		Detail("query", query).Detail("count", len(resp.Results))
	if resp.Degraded {
		ev.Detail("degraded", fmt.Sprint(resp.DegradedErr))
	}
	ev.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", query, err))
	}

	if resp.Degraded {
		fmt.Fprintf(os.Stderr, "warning: spell correction unavailable, query ran uncorrected: %v\n", resp.DegradedErr)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(resp)
	}

	colour := term.IsTerminal(int(os.Stdout.Fd()))
	format.SearchResults(cmd.Out(), resp, colour)
	return nil
}
