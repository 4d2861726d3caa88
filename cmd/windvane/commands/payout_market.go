package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

// PayoutMarketCmd aggregates attestations for a market and, once the
// required weight agrees, submits the payout to the federation.
var PayoutMarketCmd = &cobra.Command{
	Use:   "payout_market [market]",
	Short: "Settle a market from collected attestations",
	Long: `Collect payout attestations for the market from the configured
attestation source and submit the agreed payout once attesters holding the
required weight have signed the same vector. Without a quorum the command
reports that and changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: payoutMarket,
}

func payoutMarket(cmd *cobra.Command, args []string) error {
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

	decision, err := c.PayoutMarket(ctx, ref)
	if err != nil {
		return err
	}
	if decision == nil {
		fmt.Println("no payout quorum yet")
		return nil
	}
	return printJSON(decision)
}
