package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec"

	"github.com/windvane/windvane/attestation"
	"github.com/windvane/windvane/types"
)

// ProposePayout records this client's payout-control vote for a market's
// payout vector. The federation only accepts the proposal if the client's
// identity carries weight in the market; proposing again replaces the
// earlier vote.
func (c *Client) ProposePayout(ctx context.Context, ref types.OutPoint, outcomePayouts []types.Amount) error {
	market, err := c.GetMarket(ctx, ref, false)
	if err != nil {
		return err
	}
	if market == nil {
		return &MarketNotFoundError{Market: ref}
	}
	if market.Finished() {
		return fmt.Errorf("market %s is already paid out", ref)
	}
	if len(outcomePayouts) != int(market.Outcomes) {
		return fmt.Errorf("expected %d outcome payouts, got %d", market.Outcomes, len(outcomePayouts))
	}

	tx := &types.Transaction{Inputs: []types.Input{{
		Payload: types.PayoutProposalInput{
			Market:         ref,
			PayoutControl:  c.PayoutControl(),
			OutcomePayouts: outcomePayouts,
		},
		Keys: []*btcec.PrivateKey{c.keys.PayoutControlKeyPair().PrivateKey()},
	}}}
	state, err := c.submitOperation(ctx, &OperationState{Kind: OpProposePayout}, tx)
	if err != nil {
		return err
	}
	return state.Wait(ctx)
}

// PayoutMarket tries to finalize a market's payout from attestations. It
// queries the attestation source for events addressed to the market by its
// payout controls, aggregates them, and when some vector has reached the
// required weight submits a payout transaction carrying the raw events as
// evidence. The federation re-verifies the evidence; this client only
// forwards it.
//
// Returns the decision behind the submitted payout, or nil when no vector
// has enough weight yet.
func (c *Client) PayoutMarket(ctx context.Context, ref types.OutPoint) (*attestation.Decision, error) {
	if c.source == nil {
		return nil, errors.New("no attestation source configured")
	}

	market, err := c.GetMarket(ctx, ref, false)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, &MarketNotFoundError{Market: ref}
	}
	if market.Finished() {
		return nil, fmt.Errorf("market %s is already paid out", ref)
	}

	events, err := c.source.Query(ctx, attestation.Filter{
		Topic:   ref.String(),
		Authors: sortedIdentities(market),
	})
	if err != nil {
		return nil, fmt.Errorf("query attestations for %s: %w", ref, err)
	}

	decision := attestation.Aggregate(market, events)
	if decision == nil {
		c.logger.Info("no payout determined yet", "market", ref, "events", len(events))
		return nil, nil
	}

	evidence := make([]json.RawMessage, len(decision.Evidence))
	for i, event := range decision.Evidence {
		raw, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("encode attestation event: %w", err)
		}
		evidence[i] = raw
	}

	tx := &types.Transaction{Inputs: []types.Input{{
		Payload: types.MarketPayoutInput{
			Market:       ref,
			Attestations: evidence,
		},
		Keys: []*btcec.PrivateKey{c.keys.PayoutControlKeyPair().PrivateKey()},
	}}}
	// A payout finalization is tracked as a payout-control operation: like a
	// proposal it signs with the payout-control key and drives no cache
	// effects on resolution.
	state, err := c.submitOperation(ctx, &OperationState{Kind: OpProposePayout}, tx)
	if err != nil {
		return nil, err
	}
	if err := state.Wait(ctx); err != nil {
		return nil, err
	}
	return decision, nil
}
