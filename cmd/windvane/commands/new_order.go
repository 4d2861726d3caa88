package commands

import (
	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

// NewOrderCmd places a limit order on a market outcome.
var NewOrderCmd = &cobra.Command{
	Use:   "new_order [market] [outcome] [buy|sell] [price] [quantity]",
	Short: "Place a limit order",
	Long: `Place a limit order for contracts of one market outcome. Price is per
contract in millisatoshis, quantity is the number of contracts. The printed
order id is how every later command refers to the order.`,
	Args: cobra.ExactArgs(5),
	RunE: newOrder,
}

func newOrder(cmd *cobra.Command, args []string) error {
	ref, err := types.ParseOutPoint(args[0])
	if err != nil {
		return err
	}
	outcome, err := types.ParseOutcome(args[1])
	if err != nil {
		return err
	}
	side, err := types.ParseSide(args[2])
	if err != nil {
		return err
	}
	price, err := types.ParseAmount(args[3])
	if err != nil {
		return err
	}
	quantity, err := types.ParseContractAmount(args[4])
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

	id, err := c.NewOrder(ctx, ref, outcome, side, price, quantity)
	if err != nil {
		return err
	}

	return printJSON(struct {
		ID types.OrderID `json:"id"`
	}{ID: id})
}
