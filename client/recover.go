package client

import (
	"context"

	"github.com/windvane/windvane/types"
)

// DefaultRecoveryGap is how many consecutive unknown ids RecoverOrders takes
// as proof that no further orders exist.
const DefaultRecoveryGap = 25

// RecoverOrders rebuilds the order cache after a restore from seed. Ids are
// allocated densely from 0, so it derives each identity in turn and asks the
// federation about it: every hit is persisted and resets the miss counter,
// and a run of gap consecutive misses ends the scan. gap <= 0 selects
// DefaultRecoveryGap.
//
// A transport failure aborts the scan; it must not be mistaken for a run of
// missing orders.
func (c *Client) RecoverOrders(ctx context.Context, gap int) (int, error) {
	if gap <= 0 {
		gap = DefaultRecoveryGap
	}

	var recovered, misses int
	for id := types.OrderID(0); ; id++ {
		order, err := c.GetOrder(ctx, id, false)
		if err != nil {
			return recovered, err
		}
		if order == nil {
			misses++
			if misses == gap {
				break
			}
			continue
		}
		misses = 0
		recovered++
		c.metrics.OrdersRecovered.Add(1)
	}

	c.logger.Info("recovered orders", "orders", recovered, "gap", gap)
	return recovered, nil
}
