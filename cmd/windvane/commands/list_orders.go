package commands

import (
	"github.com/spf13/cobra"
)

var (
	listOrdersMarket  string
	listOrdersOutcome string
)

func init() {
	ListOrdersCmd.Flags().StringVar(&listOrdersMarket, "market", "",
		"only orders on this market outpoint")
	ListOrdersCmd.Flags().StringVar(&listOrdersOutcome, "outcome", "",
		"only orders on this outcome index")
}

// ListOrdersCmd lists this wallet's cached orders, optionally narrowed to a
// market or a single outcome.
var ListOrdersCmd = &cobra.Command{
	Use:   "list_orders",
	Short: "List cached orders",
	Args:  cobra.NoArgs,
	RunE:  listOrders,
}

func listOrders(cmd *cobra.Command, args []string) error {
	market, outcome, err := parseOrderFilter(listOrdersMarket, listOrdersOutcome)
	if err != nil {
		return err
	}

	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	records, err := c.Orders(market, outcome)
	if err != nil {
		return err
	}
	return printJSON(records)
}
