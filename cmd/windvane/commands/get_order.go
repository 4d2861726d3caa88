package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

var getOrderFromCache bool

func init() {
	GetOrderCmd.Flags().BoolVar(&getOrderFromCache, "from-cache", false,
		"answer from the local cache without asking the federation")
}

// GetOrderCmd looks up one of this wallet's orders by id.
var GetOrderCmd = &cobra.Command{
	Use:   "get_order [id]",
	Short: "Show an order",
	Args:  cobra.ExactArgs(1),
	RunE:  getOrder,
}

func getOrder(cmd *cobra.Command, args []string) error {
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

	order, err := c.GetOrder(ctx, id, getOrderFromCache)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order %s not found", id)
	}
	return printJSON(order)
}
