package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

var getMarketFromCache bool

func init() {
	GetMarketCmd.Flags().BoolVar(&getMarketFromCache, "from-cache", false,
		"answer from the local cache without asking the federation")
}

// GetMarketCmd looks up one market by its outpoint.
var GetMarketCmd = &cobra.Command{
	Use:   "get_market [market]",
	Short: "Show a market",
	Args:  cobra.ExactArgs(1),
	RunE:  getMarket,
}

func getMarket(cmd *cobra.Command, args []string) error {
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

	market, err := c.GetMarket(ctx, ref, getMarketFromCache)
	if err != nil {
		return err
	}
	if market == nil {
		return fmt.Errorf("market %s not found", ref)
	}
	return printJSON(market)
}
