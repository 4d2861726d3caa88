package client

import (
	"github.com/btcsuite/btcd/btcec"

	"github.com/windvane/windvane/types"
)

// sourcedLiquidity describes where a sell order's contracts come from.
type sourcedLiquidity struct {
	// sources maps each source order's owner to the amount taken from it.
	sources map[types.PublicKey]types.ContractAmount
	// orderIDs are the source orders, ascending.
	orderIDs []types.OrderID
	// keys authorize spending from each source order.
	keys []*btcec.PrivateKey
}

// sourceContracts gathers quantity contracts of one market outcome from the
// client's settled balances: candidates come from the non-zero index in
// ascending id order, and each contributes min(remaining, balance) until the
// request is covered. Settled contracts of one outcome are fungible, so
// first-fit is as good as any split.
//
// The scan reads only the cache and mutates nothing; on insufficient
// balance it fails with InsufficientLiquidityError and the caller has
// nothing to undo. Callers hold the allocator mutex, keeping the view
// stable against concurrent sells.
func (c *Client) sourceContracts(market types.OutPoint, outcome types.Outcome, quantity types.ContractAmount) (*sourcedLiquidity, error) {
	ids, err := c.store.NonZeroOrderIDs(&market, &outcome)
	if err != nil {
		return nil, err
	}

	sourced := &sourcedLiquidity{
		sources: make(map[types.PublicKey]types.ContractAmount),
	}
	remaining := quantity
	for _, id := range ids {
		if remaining == 0 {
			break
		}
		order, err := c.store.Order(id)
		if err != nil {
			return nil, err
		}
		if order == nil || order.ContractOfOutcomeBalance == 0 {
			continue
		}

		take := order.ContractOfOutcomeBalance
		if take > remaining {
			take = remaining
		}
		sourced.sources[order.Owner] = take
		sourced.orderIDs = append(sourced.orderIDs, id)
		sourced.keys = append(sourced.keys, c.keys.OrderKeyPair(id).PrivateKey())
		remaining -= take
	}

	if remaining > 0 {
		return nil, &InsufficientLiquidityError{
			Requested: quantity,
			Available: quantity - remaining,
		}
	}
	return sourced, nil
}
