package client

import (
	"context"
	"fmt"

	"github.com/windvane/windvane/types"
)

// Candlesticks returns the match-price series of one market outcome, oldest
// first, covering intervals starting at or after minTimestamp. The series is
// read straight from the federation; nothing is cached.
func (c *Client) Candlesticks(ctx context.Context, ref types.OutPoint, outcome types.Outcome, interval types.Seconds, minTimestamp types.UnixTimestamp) ([]types.CandlestickEntry, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("candlestick interval must be positive, got %d", interval)
	}
	entries, err := c.fed.MarketOutcomeCandlesticks(ctx, ref, outcome, interval, minTimestamp)
	if err != nil {
		return nil, fmt.Errorf("fetch candlesticks for %s outcome %d: %w", ref, outcome, err)
	}
	return entries, nil
}
