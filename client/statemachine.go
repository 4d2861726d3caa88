package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/windvane/windvane/federation"
	"github.com/windvane/windvane/types"
)

// OperationKind names the transaction flavor an operation submitted.
type OperationKind string

const (
	OpNewMarket                   OperationKind = "new_market"
	OpProposePayout               OperationKind = "propose_payout"
	OpNewOrder                    OperationKind = "new_order"
	OpCancelOrder                 OperationKind = "cancel_order"
	OpConsumeOrderBalance         OperationKind = "consume_order_bitcoin_balance"
	OpConsumePayoutControlBalance OperationKind = "consume_payout_control_bitcoin_balance"
)

// OperationStatus is the lifecycle position of one operation.
type OperationStatus int8

const (
	// StatusSubmitted means the transaction reached the federation and its
	// consensus outcome is not known yet.
	StatusSubmitted OperationStatus = iota
	// StatusAccepted and StatusFailed are terminal.
	StatusAccepted
	StatusFailed
)

func (s OperationStatus) String() string {
	switch s {
	case StatusSubmitted:
		return "submitted"
	case StatusAccepted:
		return "accepted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OperationState tracks one submitted transaction from submission to its
// terminal consensus outcome. States live in memory: the durable parts of
// an operation are the reserved order slot and the needs-update marks, which
// is all a restarted client needs to reconverge.
type OperationState struct {
	OperationID uuid.UUID
	TxID        types.TxID
	Kind        OperationKind

	// TargetOrder is the order the transaction creates or cancels, when the
	// kind has one.
	TargetOrder *types.OrderID

	// AffectedOrders are further orders whose balances the transaction
	// spends: sell sources for a new order, consumed orders for a
	// withdrawal.
	AffectedOrders []types.OrderID

	mtx    sync.Mutex
	status OperationStatus
	err    error
	done   chan struct{}
}

// Status returns the operation's current lifecycle position.
func (s *OperationState) Status() OperationStatus {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.status
}

// Err returns the terminal error: nil while pending or accepted, the
// rejection after a failure, or the transport error that left the outcome
// unknown.
func (s *OperationState) Err() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.err
}

// Wait blocks until the operation resolves or ctx expires. A caller that
// stops waiting does not cancel the operation: the tracker keeps driving it
// with the client's root context.
func (s *OperationState) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return s.Err()
	}
}

func (s *OperationState) finish(status OperationStatus, err error) {
	s.mtx.Lock()
	s.status = status
	s.err = err
	s.mtx.Unlock()
	close(s.done)
}

// submitOperation sends tx and registers state under the resulting tx id,
// spawning a tracker that applies the operation's cache effects when the
// outcome arrives. Submitting a transaction whose id is already tracked
// returns the existing state: outcomes resolve exactly once per
// transaction, replays are no-ops.
func (c *Client) submitOperation(ctx context.Context, state *OperationState, tx *types.Transaction) (*OperationState, error) {
	operationID := uuid.New()
	txID, fin, err := c.fed.Submit(ctx, operationID, tx)
	if err != nil {
		return nil, err
	}
	c.metrics.TransactionsSubmitted.Add(1)

	c.opsMtx.Lock()
	if existing, ok := c.ops[txID]; ok {
		c.opsMtx.Unlock()
		return existing, nil
	}
	state.OperationID = operationID
	state.TxID = txID
	state.done = make(chan struct{})
	c.ops[txID] = state
	c.trackers.Add(1)
	c.opsMtx.Unlock()

	c.logger.Debug("transaction submitted", "tx", txID, "kind", state.Kind, "operation", operationID)
	go c.track(state, fin)
	return state, nil
}

// track drives one operation to resolution.
func (c *Client) track(state *OperationState, fin federation.Finality) {
	defer c.trackers.Done()

	err := fin.Wait(c.rootCtx)
	switch {
	case err == nil:
		c.applyAccepted(state)
		state.finish(StatusAccepted, nil)
		c.metrics.TransactionsAccepted.Add(1)
		c.logger.Info("transaction accepted", "tx", state.TxID, "kind", state.Kind)

	default:
		if rejection, ok := federation.IsRejection(err); ok {
			c.applyFailed(state)
			state.finish(StatusFailed, rejection)
			c.metrics.TransactionsRejected.Add(1)
			c.logger.Info("transaction rejected",
				"tx", state.TxID, "kind", state.Kind, "reason", rejection.Reason)
			return
		}
		// The outcome is unknown: no effect applies and the status stays
		// submitted. A reserved order slot stays reserved, so the id cannot
		// be reused; a later sync or recovery scan settles the cache.
		state.finish(StatusSubmitted, err)
		c.logger.Error("transaction outcome unknown",
			"tx", state.TxID, "kind", state.Kind, "err", err)
	}
}

// applyAccepted marks every order the accepted transaction touched as
// needing a refresh.
func (c *Client) applyAccepted(state *OperationState) {
	var dirty []types.OrderID
	switch state.Kind {
	case OpNewOrder:
		dirty = append(dirty, *state.TargetOrder)
		dirty = append(dirty, state.AffectedOrders...)
	case OpCancelOrder:
		dirty = append(dirty, *state.TargetOrder)
	case OpConsumeOrderBalance:
		dirty = append(dirty, state.AffectedOrders...)
	}
	if len(dirty) == 0 {
		return
	}
	if err := c.store.MarkOrdersDirty(dirty...); err != nil {
		c.logger.Error("mark orders dirty", "tx", state.TxID, "err", err)
	}
}

// applyFailed rolls back the one piece of optimistic cache state a rejected
// transaction leaves behind: a new order's reserved slot.
func (c *Client) applyFailed(state *OperationState) {
	if state.Kind != OpNewOrder {
		return
	}
	if err := c.store.ReleaseOrderSlot(*state.TargetOrder); err != nil {
		c.logger.Error("release order slot",
			"tx", state.TxID, "order", *state.TargetOrder, "err", err)
	}
}
