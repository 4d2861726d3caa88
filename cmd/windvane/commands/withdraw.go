package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

// WithdrawOrdersCmd sweeps the bitcoin balances of all funded orders in one
// transaction and prints the total.
var WithdrawOrdersCmd = &cobra.Command{
	Use:   "withdraw_orders",
	Short: "Withdraw all order balances",
	Args:  cobra.NoArgs,
	RunE:  withdrawOrders,
}

// WithdrawPayoutControlCmd withdraws the fees earned by this wallet's payout
// control and prints the amount.
var WithdrawPayoutControlCmd = &cobra.Command{
	Use:   "withdraw_payout_control",
	Short: "Withdraw the payout control balance",
	Args:  cobra.NoArgs,
	RunE:  withdrawPayoutControl,
}

func withdrawOrders(cmd *cobra.Command, args []string) error {
	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	total, err := c.WithdrawOrderBalances(ctx)
	if err != nil {
		return err
	}
	return printJSON(struct {
		Withdrawn types.Amount `json:"withdrawn"`
	}{Withdrawn: total})
}

func withdrawPayoutControl(cmd *cobra.Command, args []string) error {
	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	total, err := c.WithdrawPayoutControlBalance(ctx)
	if err != nil {
		return err
	}
	return printJSON(struct {
		Withdrawn types.Amount `json:"withdrawn"`
	}{Withdrawn: total})
}
