// Package federation defines the client's view of a prediction-market
// federation: a read API over consensus state and a submitter for signed
// transactions. Implementations live in the http and mock subpackages.
package federation

import (
	"context"

	"github.com/google/uuid"

	"github.com/windvane/windvane/types"
)

// API reads consensus state. Every call is context-first; entities the
// federation does not know are reported as (nil, nil) or an empty result,
// never as an error.
type API interface {
	// Market returns the market at ref, or nil if no market exists there.
	Market(ctx context.Context, ref types.OutPoint) (*types.Market, error)

	// Order returns the order owned by the given key, or nil if the
	// federation knows no such order.
	Order(ctx context.Context, owner types.PublicKey) (*types.Order, error)

	// MarketPayoutControlProposals returns the current payout proposals for
	// a market, keyed by payout-control identity (x-only hex).
	MarketPayoutControlProposals(ctx context.Context, ref types.OutPoint) (map[string][]types.Amount, error)

	// PayoutControlMarkets returns the markets whose weight map includes the
	// given payout control, restricted to markets created at or after since.
	PayoutControlMarkets(ctx context.Context, control types.PublicKey, since types.UnixTimestamp) ([]types.OutPoint, error)

	// PayoutControlBalance returns the spendable bitcoin balance accrued by
	// a payout control.
	PayoutControlBalance(ctx context.Context, control types.PublicKey) (types.Amount, error)

	// MarketOutcomeCandlesticks returns the candlestick series of one market
	// outcome at the given interval, starting at minTimestamp, ascending.
	MarketOutcomeCandlesticks(ctx context.Context, ref types.OutPoint, outcome types.Outcome, interval types.Seconds, minTimestamp types.UnixTimestamp) ([]types.CandlestickEntry, error)
}

// Submitter sends signed transactions.
type Submitter interface {
	// Submit signs tx with the keys carried by its inputs and sends it. A
	// non-nil error means the transaction may or may not have reached the
	// federation; the returned Finality reports the consensus outcome.
	Submit(ctx context.Context, operationID uuid.UUID, tx *types.Transaction) (types.TxID, Finality, error)
}

// Finality resolves the consensus outcome of one submitted transaction.
type Finality interface {
	// Wait blocks until the transaction is final or ctx expires. It returns
	// nil when the transaction was accepted, a *RejectionError when the
	// federation rejected it, and any other error for transport failures.
	// The resolution is stable: repeated calls return the same outcome.
	Wait(ctx context.Context) error
}

// Client is the full federation connection.
type Client interface {
	API
	Submitter
}
