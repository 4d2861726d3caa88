package client

import (
	"context"
	"sync"
	"time"

	"github.com/creachadair/taskgroup"

	"github.com/windvane/windvane/types"
)

// SyncOrders reconciles cached orders against the federation and returns the
// orders that changed, keyed by id. Matching happens entirely inside the
// federation, so this is how fills, cancels and payouts become visible
// locally.
//
// Candidates are the dirty set plus every non-zero order with quantity still
// waiting to match; includePayoutCandidates widens that to orders holding
// settled contracts, which a market payout can convert to bitcoin. market and
// outcome narrow the scan, and are applied to the authoritative record when
// deciding what to return.
//
// Fetches fan out concurrently. Every authoritative hit is persisted, even
// when unchanged, which also clears the order's dirty mark. Any fetch or
// store failure fails the whole sync.
func (c *Client) SyncOrders(ctx context.Context, includePayoutCandidates bool, market *types.OutPoint, outcome *types.Outcome) (map[types.OrderID]*types.Order, error) {
	defer func(begin time.Time) {
		c.metrics.SyncSeconds.Observe(time.Since(begin).Seconds())
	}(time.Now())

	candidates := make(map[types.OrderID]struct{})

	nonZero, err := c.store.NonZeroOrderIDs(market, outcome)
	if err != nil {
		return nil, err
	}
	for _, id := range nonZero {
		order, err := c.store.Order(id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			continue
		}
		if order.QuantityWaitingForMatch == 0 &&
			(!includePayoutCandidates || order.ContractOfOutcomeBalance == 0) {
			continue
		}
		candidates[id] = struct{}{}
	}

	// Dirty orders are synced regardless of the filters: a stale record is
	// stale no matter which market the caller asked about.
	dirty, err := c.store.DirtyOrders()
	if err != nil {
		return nil, err
	}
	for _, id := range dirty {
		candidates[id] = struct{}{}
	}

	changed := make(map[types.OrderID]*types.Order, len(candidates))
	if len(candidates) == 0 {
		return changed, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mtx   sync.Mutex
		g     = taskgroup.New(taskgroup.Trigger(cancel))
		start = g.Limit(c.syncConcurrency)
	)
	for id := range candidates {
		id := id
		start(func() error {
			cached, err := c.store.Order(id)
			if err != nil {
				return err
			}
			fetched, err := c.GetOrder(ctx, id, false)
			if err != nil {
				return err
			}
			if fetched == nil {
				// The federation has no record yet; keep the candidate as it
				// is and let a later sync settle it.
				return nil
			}
			if cached != nil && *cached == *fetched {
				return nil
			}
			if market != nil && fetched.Market != *market {
				return nil
			}
			if outcome != nil && fetched.Outcome != *outcome {
				return nil
			}
			mtx.Lock()
			changed[id] = fetched
			mtx.Unlock()
			c.metrics.OrdersSynced.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("synced orders", "candidates", len(candidates), "changed", len(changed))
	return changed, nil
}
