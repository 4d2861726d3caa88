package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

// ProposePayoutCmd publishes this wallet's proposed payout vector for a
// market its payout control governs.
var ProposePayoutCmd = &cobra.Command{
	Use:   "propose_payout [market] [payout per outcome...]",
	Short: "Propose a payout vector for a market",
	Long: `Propose how a market should pay out, one amount per outcome in outcome
order. The proposal is advisory until enough payout-control weight attests to
the same vector.`,
	Args: cobra.MinimumNArgs(2),
	RunE: proposePayout,
}

func proposePayout(cmd *cobra.Command, args []string) error {
	ref, err := types.ParseOutPoint(args[0])
	if err != nil {
		return err
	}

	payouts := make([]types.Amount, 0, len(args)-1)
	for _, arg := range args[1:] {
		amount, err := types.ParseAmount(arg)
		if err != nil {
			return err
		}
		payouts = append(payouts, amount)
	}

	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	return c.ProposePayout(ctx, ref, payouts)
}
