// Package client implements the market client: a local reconciling cache
// over an authoritative federation ledger, deterministic key derivation for
// order and payout-control identities, order construction with liquidity
// sourcing, and payout attestation aggregation.
package client

import (
	"context"
	"sync"

	"github.com/windvane/windvane/attestation"
	"github.com/windvane/windvane/federation"
	"github.com/windvane/windvane/keychain"
	"github.com/windvane/windvane/libs/log"
	"github.com/windvane/windvane/store"
	"github.com/windvane/windvane/types"
)

// DefaultSyncConcurrency bounds the number of concurrent order fetches
// during reconciliation.
const DefaultSyncConcurrency = 16

// Option sets a parameter for the client.
type Option func(*Client)

// Logger option can be used to set a logger for the client.
func Logger(l log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// AttestationSource option provides the source payout attestations are
// fetched from. Without one, PayoutMarket is unavailable.
func AttestationSource(source attestation.Source) Option {
	return func(c *Client) {
		c.source = source
	}
}

// SyncConcurrency option bounds the reconciliation fan-out.
// Default: DefaultSyncConcurrency.
func SyncConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.syncConcurrency = n
		}
	}
}

// WithMetrics option sets the metrics the client records into.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client is a single-user market client. All cached state is derivable from
// the federation and the root seed; the cache only saves round trips and
// remembers which orders may be stale.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	logger  log.Logger
	store   *store.Store
	fed     federation.Client
	keys    *keychain.Keychain
	source  attestation.Source
	metrics *Metrics

	syncConcurrency int

	// rootCtx governs operation trackers, which outlive the submitting
	// caller's context.
	rootCtx    context.Context
	rootCancel context.CancelFunc

	// allocMtx serializes order-id allocation: the next-id read, liquidity
	// sourcing and the slot reservation happen under it.
	allocMtx sync.Mutex

	opsMtx   sync.Mutex
	ops      map[types.TxID]*OperationState
	trackers sync.WaitGroup
}

// New returns a Client over the given store, federation connection and
// keychain.
func New(st *store.Store, fed federation.Client, keys *keychain.Keychain, options ...Option) *Client {
	rootCtx, rootCancel := context.WithCancel(context.Background())
	c := &Client{
		logger:          log.NewNopLogger(),
		store:           st,
		fed:             fed,
		keys:            keys,
		metrics:         NopMetrics(),
		syncConcurrency: DefaultSyncConcurrency,
		rootCtx:         rootCtx,
		rootCancel:      rootCancel,
		ops:             make(map[types.TxID]*OperationState),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// PayoutControl returns the public key of the client's payout control.
func (c *Client) PayoutControl() types.PublicKey {
	return c.keys.PayoutControlKeyPair().PublicKey()
}

// Close stops the operation trackers and waits for them to drain. In-flight
// transactions are not cancelled on the federation side; their cache effects
// are recovered by a later sync or recovery scan.
func (c *Client) Close() error {
	c.rootCancel()
	c.trackers.Wait()
	return nil
}
