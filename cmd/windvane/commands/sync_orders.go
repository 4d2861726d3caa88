package commands

import (
	"github.com/spf13/cobra"
)

var (
	syncOrdersPayoutCandidates bool
	syncOrdersMarket           string
	syncOrdersOutcome          string
)

func init() {
	SyncOrdersCmd.Flags().BoolVar(&syncOrdersPayoutCandidates, "include-payout-candidates", false,
		"also refresh zero-balance orders on markets awaiting payout")
	SyncOrdersCmd.Flags().StringVar(&syncOrdersMarket, "market", "",
		"only sync orders on this market outpoint")
	SyncOrdersCmd.Flags().StringVar(&syncOrdersOutcome, "outcome", "",
		"only sync orders on this outcome index")
}

// SyncOrdersCmd refreshes the cached orders from the federation and prints
// the ones that changed.
var SyncOrdersCmd = &cobra.Command{
	Use:   "sync_orders",
	Short: "Refresh cached orders from the federation",
	Args:  cobra.NoArgs,
	RunE:  syncOrders,
}

func syncOrders(cmd *cobra.Command, args []string) error {
	market, outcome, err := parseOrderFilter(syncOrdersMarket, syncOrdersOutcome)
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

	changed, err := c.SyncOrders(ctx, syncOrdersPayoutCandidates, market, outcome)
	if err != nil {
		return err
	}
	return printJSON(changed)
}
