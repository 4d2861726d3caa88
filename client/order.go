package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec"

	"github.com/windvane/windvane/types"
)

// NewOrder places an order on a market and returns its client-local id. The
// id is reserved before submission so no concurrent operation can allocate
// it twice; if the federation rejects the transaction the reservation is
// released and the id becomes allocatable again.
//
// Sell orders source their contracts from the client's settled balances
// before anything is written: a sourcing failure mutates nothing.
func (c *Client) NewOrder(ctx context.Context, market types.OutPoint, outcome types.Outcome, side types.Side, price types.Amount, quantity types.ContractAmount) (types.OrderID, error) {
	if quantity == 0 {
		return 0, errors.New("quantity must be positive")
	}
	m, err := c.GetMarket(ctx, market, false)
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 0, &MarketNotFoundError{Market: market}
	}
	if m.Finished() {
		return 0, fmt.Errorf("market %s is already paid out", market)
	}
	if outcome >= m.Outcomes {
		return 0, fmt.Errorf("market %s has no outcome %d", market, outcome)
	}
	if price == 0 || price >= m.ContractPrice {
		return 0, fmt.Errorf("price must be above 0 and below the contract price %s", m.ContractPrice)
	}

	c.allocMtx.Lock()
	id, err := c.store.NextOrderID()
	if err != nil {
		c.allocMtx.Unlock()
		return 0, err
	}
	var sourced *sourcedLiquidity
	if side == types.Sell {
		sourced, err = c.sourceContracts(market, outcome, quantity)
		if err != nil {
			c.allocMtx.Unlock()
			return 0, err
		}
	}
	if err := c.store.ReserveOrderSlot(id); err != nil {
		c.allocMtx.Unlock()
		return 0, err
	}
	c.allocMtx.Unlock()

	owner := c.keys.OrderOwner(id)
	var (
		tx       *types.Transaction
		affected []types.OrderID
	)
	if side == types.Buy {
		tx = &types.Transaction{Outputs: []types.Output{{
			Payload: types.NewBuyOrderOutput{
				Owner:    owner,
				Market:   market,
				Outcome:  outcome,
				Price:    price,
				Quantity: quantity,
			},
		}}}
	} else {
		keys := append([]*btcec.PrivateKey{c.keys.OrderKeyPair(id).PrivateKey()}, sourced.keys...)
		tx = &types.Transaction{Inputs: []types.Input{{
			Payload: types.NewSellOrderInput{
				Owner:   owner,
				Market:  market,
				Outcome: outcome,
				Price:   price,
				Sources: sourced.sources,
			},
			Keys: keys,
		}}}
		affected = sourced.orderIDs
	}

	state, err := c.submitOperation(ctx, &OperationState{
		Kind:           OpNewOrder,
		TargetOrder:    &id,
		AffectedOrders: affected,
	}, tx)
	if err != nil {
		// No outcome to track; free the id. Should the transaction have
		// landed regardless, a recovery scan restores the order.
		if relErr := c.store.ReleaseOrderSlot(id); relErr != nil {
			c.logger.Error("release order slot", "order", id, "err", relErr)
		}
		return 0, err
	}
	if err := state.Wait(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// GetOrder returns one order, from the cache or authoritatively. An
// authoritative hit is persisted; an authoritative miss means the
// federation has never seen the order's identity.
func (c *Client) GetOrder(ctx context.Context, id types.OrderID, fromCache bool) (*types.Order, error) {
	if fromCache {
		return c.store.Order(id)
	}
	fetched, err := c.fed.Order(ctx, c.keys.OrderOwner(id))
	if err != nil {
		return nil, fmt.Errorf("fetch order %d: %w", id, err)
	}
	if fetched == nil {
		return nil, nil
	}
	if err := c.store.SaveOrder(id, fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// CancelOrder cancels the unmatched remainder of an order.
func (c *Client) CancelOrder(ctx context.Context, id types.OrderID) error {
	order, err := c.store.Order(id)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("no cached order %d", id)
	}
	if order.QuantityWaitingForMatch == 0 {
		return fmt.Errorf("order %d has nothing waiting to cancel", id)
	}

	tx := &types.Transaction{Inputs: []types.Input{{
		Payload: types.CancelOrderInput{Order: order.Owner},
		Keys:    []*btcec.PrivateKey{c.keys.OrderKeyPair(id).PrivateKey()},
	}}}
	state, err := c.submitOperation(ctx, &OperationState{
		Kind:        OpCancelOrder,
		TargetOrder: &id,
	}, tx)
	if err != nil {
		return err
	}
	return state.Wait(ctx)
}

// OrderRecord pairs an order with its client-local id.
type OrderRecord struct {
	ID    types.OrderID `json:"id"`
	Order types.Order   `json:"order"`
}

// Orders lists cached orders in ascending id order, optionally narrowed to
// one market or one market outcome. Reserved-but-unconfirmed slots are
// skipped.
func (c *Client) Orders(market *types.OutPoint, outcome *types.Outcome) ([]OrderRecord, error) {
	ids, err := c.store.OrderIDs(market, outcome)
	if err != nil {
		return nil, err
	}

	records := make([]OrderRecord, 0, len(ids))
	for _, id := range ids {
		order, err := c.store.Order(id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			continue
		}
		records = append(records, OrderRecord{ID: id, Order: *order})
	}
	return records, nil
}

// WithdrawOrderBalances consumes the bitcoin balance of every funded order
// in a single transaction, one input per order, and returns the total. With
// no funded orders it returns 0 and submits nothing.
func (c *Client) WithdrawOrderBalances(ctx context.Context) (types.Amount, error) {
	ids, err := c.store.NonZeroOrderIDs(nil, nil)
	if err != nil {
		return 0, err
	}

	var (
		inputs   []types.Input
		consumed []types.OrderID
		total    types.Amount
	)
	for _, id := range ids {
		order, err := c.store.Order(id)
		if err != nil {
			return 0, err
		}
		if order == nil || order.BitcoinBalance == 0 {
			continue
		}
		inputs = append(inputs, types.Input{
			Payload: types.ConsumeOrderBitcoinBalanceInput{
				Order:  order.Owner,
				Amount: order.BitcoinBalance,
			},
			Keys: []*btcec.PrivateKey{c.keys.OrderKeyPair(id).PrivateKey()},
		})
		consumed = append(consumed, id)
		total += order.BitcoinBalance
	}
	if len(inputs) == 0 {
		return 0, nil
	}

	state, err := c.submitOperation(ctx, &OperationState{
		Kind:           OpConsumeOrderBalance,
		AffectedOrders: consumed,
	}, &types.Transaction{Inputs: inputs})
	if err != nil {
		return 0, err
	}
	if err := state.Wait(ctx); err != nil {
		return 0, err
	}
	return total, nil
}

// WithdrawPayoutControlBalance consumes the client's payout-control balance,
// fetched on demand. It returns 0 and submits nothing when the balance is
// empty.
func (c *Client) WithdrawPayoutControlBalance(ctx context.Context) (types.Amount, error) {
	control := c.PayoutControl()
	balance, err := c.fed.PayoutControlBalance(ctx, control)
	if err != nil {
		return 0, err
	}
	if balance == 0 {
		return 0, nil
	}

	tx := &types.Transaction{Inputs: []types.Input{{
		Payload: types.ConsumePayoutControlBitcoinBalanceInput{
			PayoutControl: control,
			Amount:        balance,
		},
		Keys: []*btcec.PrivateKey{c.keys.PayoutControlKeyPair().PrivateKey()},
	}}}
	state, err := c.submitOperation(ctx, &OperationState{Kind: OpConsumePayoutControlBalance}, tx)
	if err != nil {
		return 0, err
	}
	if err := state.Wait(ctx); err != nil {
		return 0, err
	}
	return balance, nil
}
