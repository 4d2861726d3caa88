// Package attestation handles payout attestations: signed notes published by
// payout controls claiming the payout vector of a finished market. Events
// are untrusted input; this package parses and weighs them, the federation
// re-verifies the evidence carried by a payout submission.
package attestation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nbd-wtf/go-nostr"

	"github.com/windvane/windvane/types"
)

// EventKind is the event kind payout attestations are published under.
const EventKind = 1081

// Filter narrows a source query: Topic is the market outpoint string
// attestations are addressed to, Authors the x-only identities worth
// fetching (the market's weight-map keys).
type Filter struct {
	Topic   string
	Authors []string
}

// Source fetches attestation events. Results are best-effort: unordered,
// possibly duplicated, possibly stale. Implementations must apply the
// filter themselves.
type Source interface {
	Query(ctx context.Context, filter Filter) ([]nostr.Event, error)
}

// Attestation is the parsed view of one attestation event.
type Attestation struct {
	// Identity is the attesting x-only public key.
	Identity string

	// OutcomePayouts is the claimed payout vector.
	OutcomePayouts []types.Amount

	// Event is the raw signed event, retained as evidence.
	Event nostr.Event
}

// payload is the JSON content of an attestation event.
type payload struct {
	OutcomePayouts []types.Amount `json:"outcome_payouts"`
}

// Parse extracts the attestation claim from an event. It does not verify
// the signature and does not check the event against any market.
func Parse(event nostr.Event) (*Attestation, error) {
	if event.Kind != EventKind {
		return nil, fmt.Errorf("event kind %d is not an attestation", event.Kind)
	}
	var p payload
	if err := json.Unmarshal([]byte(event.Content), &p); err != nil {
		return nil, fmt.Errorf("malformed attestation payload: %w", err)
	}
	if p.OutcomePayouts == nil {
		return nil, fmt.Errorf("attestation payload carries no payout vector")
	}
	return &Attestation{
		Identity:       event.PubKey,
		OutcomePayouts: p.OutcomePayouts,
		Event:          event,
	}, nil
}

// NewEvent builds and signs an attestation for the given topic with the
// x-only secret key in hex.
func NewEvent(secretKey, topic string, outcomePayouts []types.Amount) (nostr.Event, error) {
	content, err := json.Marshal(payload{OutcomePayouts: outcomePayouts})
	if err != nil {
		return nostr.Event{}, fmt.Errorf("encode attestation payload: %w", err)
	}

	event := nostr.Event{
		CreatedAt: nostr.Now(),
		Kind:      EventKind,
		Tags:      nostr.Tags{nostr.Tag{"t", topic}},
		Content:   string(content),
	}
	if err := event.Sign(secretKey); err != nil {
		return nostr.Event{}, fmt.Errorf("sign attestation: %w", err)
	}
	return event, nil
}

// Decision is an aggregated payout backed by enough attestation weight.
type Decision struct {
	// OutcomePayouts is the agreed payout vector.
	OutcomePayouts []types.Amount

	// TotalWeight is the summed weight of the agreeing identities.
	TotalWeight types.Weight

	// Evidence holds the raw events of the agreeing identities.
	Evidence []nostr.Event
}

// Aggregate weighs fetched events against a market's payout controls and
// returns a payout decision, or nil while no claimed vector has reached the
// required weight.
//
// Each identity counts once: later events by an already-seen identity are
// dropped. Identities outside the weight map, events whose signature does not
// verify, payloads that do not parse and vectors whose length mismatches the
// market's outcome count are skipped. When several vectors qualify at once
// the returned one is unspecified.
func Aggregate(market *types.Market, events []nostr.Event) *Decision {
	type group struct {
		payouts  []types.Amount
		weight   types.Weight
		evidence []nostr.Event
	}

	seen := make(map[string]bool)
	groups := make(map[string]*group)

	for _, event := range events {
		weight, ok := market.PayoutControlWeights[event.PubKey]
		if !ok || seen[event.PubKey] {
			continue
		}
		if ok, err := event.CheckSignature(); err != nil || !ok {
			continue
		}
		att, err := Parse(event)
		if err != nil {
			continue
		}
		if len(att.OutcomePayouts) != int(market.Outcomes) {
			continue
		}
		seen[event.PubKey] = true

		key, err := json.Marshal(att.OutcomePayouts)
		if err != nil {
			continue
		}
		g, ok := groups[string(key)]
		if !ok {
			g = &group{payouts: att.OutcomePayouts}
			groups[string(key)] = g
		}
		g.weight += weight
		g.evidence = append(g.evidence, event)
	}

	for _, g := range groups {
		if g.weight >= market.WeightRequiredForPayout {
			return &Decision{
				OutcomePayouts: g.payouts,
				TotalWeight:    g.weight,
				Evidence:       g.evidence,
			}
		}
	}
	return nil
}
