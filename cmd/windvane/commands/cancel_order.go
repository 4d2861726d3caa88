package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

// CancelOrderCmd cancels the resting part of an order. Contracts already
// matched and balances already earned stay with the order until withdrawn.
var CancelOrderCmd = &cobra.Command{
	Use:   "cancel_order [id]",
	Short: "Cancel an order's resting quantity",
	Args:  cobra.ExactArgs(1),
	RunE:  cancelOrder,
}

func cancelOrder(cmd *cobra.Command, args []string) error {
	id, err := types.ParseOrderID(args[0])
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

	return c.CancelOrder(ctx, id)
}
