package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

var marketProposalsFromCache bool

func init() {
	MarketProposalsCmd.Flags().BoolVar(&marketProposalsFromCache, "from-cache", false,
		"answer from the local cache without asking the federation")
}

// MarketProposalsCmd shows the payout vectors currently proposed for a
// market, keyed by payout-control identity.
var MarketProposalsCmd = &cobra.Command{
	Use:   "market_proposals [market]",
	Short: "Show payout proposals for a market",
	Args:  cobra.ExactArgs(1),
	RunE:  marketProposals,
}

func marketProposals(cmd *cobra.Command, args []string) error {
	ref, err := types.ParseOutPoint(args[0])
	if err != nil {
		return err
	}

	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	proposals, err := c.MarketPayoutControlProposals(ctx, ref, marketProposalsFromCache)
	if err != nil {
		return err
	}
	return printJSON(proposals)
}
