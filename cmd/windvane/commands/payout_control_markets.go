package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

var (
	payoutControlMarketsFromCache bool
	payoutControlMarketsSince     int64
)

func init() {
	PayoutControlMarketsCmd.Flags().BoolVar(&payoutControlMarketsFromCache, "from-cache", false,
		"answer from the local cache without asking the federation")
	PayoutControlMarketsCmd.Flags().Int64Var(&payoutControlMarketsSince, "since", 0,
		"only list markets created at or after this unix timestamp")
}

// PayoutControlMarketsCmd lists the markets this wallet's payout control
// governs, newest first.
var PayoutControlMarketsCmd = &cobra.Command{
	Use:   "payout_control_markets",
	Short: "List markets governed by this wallet's payout control",
	Args:  cobra.NoArgs,
	RunE:  payoutControlMarkets,
}

func payoutControlMarkets(cmd *cobra.Command, args []string) error {
	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	markets, err := c.PayoutControlMarkets(ctx, payoutControlMarketsFromCache,
		types.UnixTimestamp(payoutControlMarketsSince))
	if err != nil {
		return err
	}
	return printJSON(markets)
}
