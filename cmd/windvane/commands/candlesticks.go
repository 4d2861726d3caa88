package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

var candlesticksMinTimestamp int64

func init() {
	CandlesticksCmd.Flags().Int64Var(&candlesticksMinTimestamp, "min-timestamp", 0,
		"only entries at or after this unix timestamp")
}

// CandlesticksCmd fetches price history for one market outcome.
var CandlesticksCmd = &cobra.Command{
	Use:   "candlesticks [market] [outcome] [interval]",
	Short: "Show price history for a market outcome",
	Long: `Show the price history of one market outcome as candlesticks of the
given interval in seconds. The federation decides which intervals it keeps;
common ones are 60, 3600 and 86400.`,
	Args: cobra.ExactArgs(3),
	RunE: candlesticks,
}

func candlesticks(cmd *cobra.Command, args []string) error {
	ref, err := types.ParseOutPoint(args[0])
	if err != nil {
		return err
	}
	outcome, err := types.ParseOutcome(args[1])
	if err != nil {
		return err
	}
	interval, err := strconv.ParseInt(args[2], 10, 64)
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

	entries, err := c.Candlesticks(ctx, ref, outcome, types.Seconds(interval),
		types.UnixTimestamp(candlesticksMinTimestamp))
	if err != nil {
		return err
	}
	return printJSON(entries)
}
