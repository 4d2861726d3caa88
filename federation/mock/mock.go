// Package mock provides an in-memory federation for tests: reads are served
// from seeded state, submissions are held until the test resolves them (or
// auto-accepted), and accepted transactions are applied with simplified
// consensus semantics. No matching is performed.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/windvane/windvane/federation"
	"github.com/windvane/windvane/types"
)

type candleKey struct {
	market   types.OutPoint
	outcome  types.Outcome
	interval types.Seconds
}

type pendingTx struct {
	tx       *types.Transaction
	fin      *finality
	resolved bool
}

// Federation is an in-memory federation.
type Federation struct {
	mtx sync.Mutex

	markets   map[types.OutPoint]*types.Market
	orders    map[types.PublicKey]*types.Order
	proposals map[types.OutPoint]map[string][]types.Amount
	balances  map[types.PublicKey]types.Amount
	candles   map[candleKey][]types.CandlestickEntry

	pending    map[types.TxID]*pendingTx
	autoAccept bool
	clock      types.UnixTimestamp

	orderErr      error
	nextSubmitErr error
	orderQueries  int
}

var _ federation.Client = (*Federation)(nil)

// New returns an empty federation.
func New() *Federation {
	return &Federation{
		markets:   make(map[types.OutPoint]*types.Market),
		orders:    make(map[types.PublicKey]*types.Order),
		proposals: make(map[types.OutPoint]map[string][]types.Amount),
		balances:  make(map[types.PublicKey]types.Amount),
		candles:   make(map[candleKey][]types.CandlestickEntry),
		pending:   make(map[types.TxID]*pendingTx),
		clock:     1000,
	}
}

//---------------------------------- SEEDING ---------------------------------

// SetMarket seeds or overwrites a market. A nil market deletes it.
func (f *Federation) SetMarket(ref types.OutPoint, market *types.Market) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if market == nil {
		delete(f.markets, ref)
		return
	}
	f.markets[ref] = copyMarket(market)
}

// SetOrder seeds or overwrites an order, e.g. to simulate a match settling
// balances.
func (f *Federation) SetOrder(owner types.PublicKey, order *types.Order) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if order == nil {
		delete(f.orders, owner)
		return
	}
	cp := *order
	f.orders[owner] = &cp
}

// SetPayoutControlBalance seeds a payout-control balance.
func (f *Federation) SetPayoutControlBalance(control types.PublicKey, balance types.Amount) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.balances[control] = balance
}

// SetProposal seeds one payout proposal. A nil payout vector withdraws the
// control's proposal.
func (f *Federation) SetProposal(ref types.OutPoint, control string, payouts []types.Amount) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if payouts == nil {
		delete(f.proposals[ref], control)
		return
	}
	if f.proposals[ref] == nil {
		f.proposals[ref] = make(map[string][]types.Amount)
	}
	f.proposals[ref][control] = append([]types.Amount(nil), payouts...)
}

// SetCandlesticks seeds the series of one market outcome at one interval.
func (f *Federation) SetCandlesticks(ref types.OutPoint, outcome types.Outcome, interval types.Seconds, entries []types.CandlestickEntry) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.candles[candleKey{ref, outcome, interval}] = append([]types.CandlestickEntry(nil), entries...)
}

// SetOrderError makes every Order call fail with err until cleared with nil.
func (f *Federation) SetOrderError(err error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.orderErr = err
}

// FailNextSubmit makes the next Submit fail with err before anything is
// recorded, simulating a transport failure.
func (f *Federation) FailNextSubmit(err error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.nextSubmitErr = err
}

// AutoAccept makes Submit apply and accept transactions immediately instead
// of waiting for a manual Accept or Reject.
func (f *Federation) AutoAccept(on bool) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.autoAccept = on
}

// OrderQueries reports how many Order calls have been served, failing ones
// included.
func (f *Federation) OrderQueries() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.orderQueries
}

//---------------------------------- READ API --------------------------------

func (f *Federation) Market(ctx context.Context, ref types.OutPoint) (*types.Market, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	market, ok := f.markets[ref]
	if !ok {
		return nil, nil
	}
	return copyMarket(market), nil
}

func (f *Federation) Order(ctx context.Context, owner types.PublicKey) (*types.Order, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.orderQueries++
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	order, ok := f.orders[owner]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (f *Federation) MarketPayoutControlProposals(ctx context.Context, ref types.OutPoint) (map[string][]types.Amount, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	proposals := make(map[string][]types.Amount, len(f.proposals[ref]))
	for control, payouts := range f.proposals[ref] {
		proposals[control] = append([]types.Amount(nil), payouts...)
	}
	return proposals, nil
}

func (f *Federation) PayoutControlMarkets(ctx context.Context, control types.PublicKey, since types.UnixTimestamp) ([]types.OutPoint, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	identity := control.XOnly()
	var refs []types.OutPoint
	for ref, market := range f.markets {
		if _, ok := market.PayoutControlWeights[identity]; !ok {
			continue
		}
		if market.CreatedConsensusTimestamp < since {
			continue
		}
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		return f.markets[refs[i]].CreatedConsensusTimestamp < f.markets[refs[j]].CreatedConsensusTimestamp
	})
	return refs, nil
}

func (f *Federation) PayoutControlBalance(ctx context.Context, control types.PublicKey) (types.Amount, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.balances[control], nil
}

func (f *Federation) MarketOutcomeCandlesticks(ctx context.Context, ref types.OutPoint, outcome types.Outcome, interval types.Seconds, minTimestamp types.UnixTimestamp) ([]types.CandlestickEntry, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	var entries []types.CandlestickEntry
	for _, entry := range f.candles[candleKey{ref, outcome, interval}] {
		if entry.Timestamp >= minTimestamp {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

//---------------------------------- SUBMITTER -------------------------------

// Submit records the transaction and returns a finality handle that blocks
// until Accept or Reject (or resolves immediately under AutoAccept).
// Resubmitting an already-known transaction returns the existing handle.
func (f *Federation) Submit(ctx context.Context, operationID uuid.UUID, tx *types.Transaction) (types.TxID, federation.Finality, error) {
	if err := tx.ValidateBasic(); err != nil {
		return types.TxID{}, nil, err
	}
	txID, err := tx.Hash()
	if err != nil {
		return types.TxID{}, nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()

	if err := f.nextSubmitErr; err != nil {
		f.nextSubmitErr = nil
		return types.TxID{}, nil, err
	}

	if p, ok := f.pending[txID]; ok {
		return txID, p.fin, nil
	}

	p := &pendingTx{
		tx:  tx,
		fin: &finality{done: make(chan struct{})},
	}
	f.pending[txID] = p

	if f.autoAccept {
		f.resolve(txID, p, nil)
	}
	return txID, p.fin, nil
}

// PendingTransactions returns the ids of submitted transactions awaiting an
// Accept or Reject, in no particular order.
func (f *Federation) PendingTransactions() []types.TxID {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	var ids []types.TxID
	for txID, p := range f.pending {
		if !p.resolved {
			ids = append(ids, txID)
		}
	}
	return ids
}

// Accept applies the transaction's effects and resolves its finality handle
// with acceptance.
func (f *Federation) Accept(txID types.TxID) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	p, ok := f.pending[txID]
	if !ok {
		return fmt.Errorf("unknown transaction %s", txID)
	}
	if p.resolved {
		return fmt.Errorf("transaction %s already resolved", txID)
	}
	f.resolve(txID, p, nil)
	return nil
}

// Reject resolves a transaction's finality handle with a rejection. No
// effects are applied.
func (f *Federation) Reject(txID types.TxID, reason string) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	p, ok := f.pending[txID]
	if !ok {
		return fmt.Errorf("unknown transaction %s", txID)
	}
	if p.resolved {
		return fmt.Errorf("transaction %s already resolved", txID)
	}
	f.resolve(txID, p, &federation.RejectionError{TxID: txID, Reason: reason})
	return nil
}

// resolve must be called with the mutex held.
func (f *Federation) resolve(txID types.TxID, p *pendingTx, err error) {
	if err == nil {
		f.apply(txID, p.tx)
	}
	p.resolved = true
	p.fin.err = err
	close(p.fin.done)
}

// apply mutates federation state the way an accepted transaction would,
// without matching: quantities stay waiting until a test settles them with
// SetOrder. Must be called with the mutex held.
func (f *Federation) apply(txID types.TxID, tx *types.Transaction) {
	for i, output := range tx.Outputs {
		ref := types.OutPoint{TxID: txID, Index: uint32(i)}
		switch payload := output.Payload.(type) {
		case types.NewMarketOutput:
			f.clock++
			f.markets[ref] = &types.Market{
				ContractPrice:             payload.ContractPrice,
				Outcomes:                  payload.Outcomes,
				PayoutControlWeights:      copyWeights(payload.PayoutControlWeights),
				WeightRequiredForPayout:   payload.WeightRequiredForPayout,
				Information:               payload.Information,
				CreatedConsensusTimestamp: f.clock,
			}

		case types.NewBuyOrderOutput:
			f.orders[payload.Owner] = &types.Order{
				Owner:                   payload.Owner,
				Market:                  payload.Market,
				Outcome:                 payload.Outcome,
				Side:                    types.Buy,
				Price:                   payload.Price,
				QuantityWaitingForMatch: payload.Quantity,
			}
		}
	}

	for _, input := range tx.Inputs {
		switch payload := input.Payload.(type) {
		case types.NewSellOrderInput:
			var total types.ContractAmount
			for source, amount := range payload.Sources {
				if order := f.orders[source]; order != nil && order.ContractOfOutcomeBalance >= amount {
					order.ContractOfOutcomeBalance -= amount
				}
				total += amount
			}
			f.orders[payload.Owner] = &types.Order{
				Owner:                   payload.Owner,
				Market:                  payload.Market,
				Outcome:                 payload.Outcome,
				Side:                    types.Sell,
				Price:                   payload.Price,
				QuantityWaitingForMatch: total,
			}

		case types.CancelOrderInput:
			if order := f.orders[payload.Order]; order != nil {
				if order.Side == types.Buy {
					order.BitcoinBalance += types.Amount(uint64(order.Price) * uint64(order.QuantityWaitingForMatch))
				} else {
					order.ContractOfOutcomeBalance += order.QuantityWaitingForMatch
				}
				order.QuantityWaitingForMatch = 0
			}

		case types.ConsumeOrderBitcoinBalanceInput:
			if order := f.orders[payload.Order]; order != nil && order.BitcoinBalance >= payload.Amount {
				order.BitcoinBalance -= payload.Amount
			}

		case types.ConsumePayoutControlBitcoinBalanceInput:
			if f.balances[payload.PayoutControl] >= payload.Amount {
				f.balances[payload.PayoutControl] -= payload.Amount
			}

		case types.PayoutProposalInput:
			if f.proposals[payload.Market] == nil {
				f.proposals[payload.Market] = make(map[string][]types.Amount)
			}
			control := payload.PayoutControl.XOnly()
			f.proposals[payload.Market][control] = append([]types.Amount(nil), payload.OutcomePayouts...)

		case types.MarketPayoutInput:
			market := f.markets[payload.Market]
			if market == nil || market.Payout != nil {
				break
			}
			if payouts := payoutFromAttestations(payload.Attestations); payouts != nil {
				market.Payout = &types.Payout{OutcomePayouts: payouts}
			}
		}
	}
}

// payoutFromAttestations extracts the claimed payout vector from the first
// parseable attestation event, the way a guardian derives it from evidence.
func payoutFromAttestations(attestations []json.RawMessage) []types.Amount {
	for _, raw := range attestations {
		var event struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(raw, &event); err != nil {
			continue
		}
		var claim struct {
			OutcomePayouts []types.Amount `json:"outcome_payouts"`
		}
		if err := json.Unmarshal([]byte(event.Content), &claim); err != nil {
			continue
		}
		if claim.OutcomePayouts != nil {
			return claim.OutcomePayouts
		}
	}
	return nil
}

type finality struct {
	done chan struct{}
	err  error
}

var _ federation.Finality = (*finality)(nil)

func (f *finality) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.done:
		return f.err
	}
}

func copyMarket(market *types.Market) *types.Market {
	if market == nil {
		return nil
	}
	cp := *market
	cp.PayoutControlWeights = copyWeights(market.PayoutControlWeights)
	cp.Information.OutcomeTitles = append([]string(nil), market.Information.OutcomeTitles...)
	if market.Payout != nil {
		cp.Payout = &types.Payout{
			OutcomePayouts: append([]types.Amount(nil), market.Payout.OutcomePayouts...),
		}
	}
	return &cp
}

func copyWeights(weights map[string]types.Weight) map[string]types.Weight {
	cp := make(map[string]types.Weight, len(weights))
	for identity, weight := range weights {
		cp[identity] = weight
	}
	return cp
}
