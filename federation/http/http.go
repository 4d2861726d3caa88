// Package http implements the federation interfaces over JSON-RPC 2.0
// carried on HTTP POST requests to a guardian endpoint.
package http

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/windvane/windvane/federation"
	"github.com/windvane/windvane/types"
)

// DefaultPollInterval is the delay between finality polls while a submitted
// transaction is still pending.
const DefaultPollInterval = time.Second

// Client talks to one federation guardian. It is safe for concurrent use by
// multiple goroutines.
type Client struct {
	address string
	client  *http.Client
	poll    time.Duration

	nextReqID uint64 // atomic
}

var _ federation.Client = (*Client)(nil)

// New returns a Client for the given remote. If remote carries no scheme,
// http is assumed.
func New(remote string) (*Client, error) {
	return NewWithTimeout(remote, 0)
}

// NewWithTimeout does the same thing as New, except requests abort after
// timeout. A timeout of zero means no timeout.
func NewWithTimeout(remote string, timeout time.Duration) (*Client, error) {
	if !strings.Contains(remote, "://") {
		remote = "http://" + remote
	}
	u, err := url.Parse(remote)
	if err != nil {
		return nil, fmt.Errorf("invalid remote %q: %w", remote, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return NewWithClient(remote, &http.Client{Timeout: timeout}), nil
}

// NewWithClient allows you to provide a custom http.Client.
func NewWithClient(remote string, client *http.Client) *Client {
	return &Client{
		address: remote,
		client:  client,
		poll:    DefaultPollInterval,
	}
}

// SetPollInterval overrides the delay between finality polls.
func (c *Client) SetPollInterval(d time.Duration) { c.poll = d }

func (c *Client) String() string {
	return fmt.Sprintf("http{%s}", c.address)
}

//---------------------------------- READ API --------------------------------

func (c *Client) Market(ctx context.Context, ref types.OutPoint) (*types.Market, error) {
	var market *types.Market
	if err := c.call(ctx, "get_market", marketArgs{Market: ref}, &market); err != nil {
		return nil, err
	}
	return market, nil
}

func (c *Client) Order(ctx context.Context, owner types.PublicKey) (*types.Order, error) {
	var order *types.Order
	if err := c.call(ctx, "get_order", orderArgs{Owner: owner}, &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (c *Client) MarketPayoutControlProposals(ctx context.Context, ref types.OutPoint) (map[string][]types.Amount, error) {
	proposals := make(map[string][]types.Amount)
	if err := c.call(ctx, "get_market_payout_control_proposals", proposalsArgs{Market: ref}, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

func (c *Client) PayoutControlMarkets(ctx context.Context, control types.PublicKey, since types.UnixTimestamp) ([]types.OutPoint, error) {
	var refs []types.OutPoint
	args := controlMarketsArgs{PayoutControl: control, Since: since}
	if err := c.call(ctx, "get_payout_control_markets", args, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (c *Client) PayoutControlBalance(ctx context.Context, control types.PublicKey) (types.Amount, error) {
	var result balanceResult
	if err := c.call(ctx, "get_payout_control_balance", controlBalanceArgs{PayoutControl: control}, &result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}

func (c *Client) MarketOutcomeCandlesticks(ctx context.Context, ref types.OutPoint, outcome types.Outcome, interval types.Seconds, minTimestamp types.UnixTimestamp) ([]types.CandlestickEntry, error) {
	var entries []types.CandlestickEntry
	args := candlesticksArgs{Market: ref, Outcome: outcome, Interval: interval, MinTimestamp: minTimestamp}
	if err := c.call(ctx, "get_market_outcome_candlesticks", args, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

//---------------------------------- SUBMITTER -------------------------------

// Submit signs tx with the keys carried by its inputs and posts it. The
// returned finality handle polls the guardian until the transaction is
// final.
func (c *Client) Submit(ctx context.Context, operationID uuid.UUID, tx *types.Transaction) (types.TxID, federation.Finality, error) {
	if err := tx.ValidateBasic(); err != nil {
		return types.TxID{}, nil, err
	}
	signatures, err := signTransaction(tx)
	if err != nil {
		return types.TxID{}, nil, err
	}

	args := submitArgs{
		OperationID: operationID.String(),
		Transaction: tx,
		Signatures:  signatures,
	}
	var result submitResult
	if err := c.call(ctx, "submit_transaction", args, &result); err != nil {
		return types.TxID{}, nil, err
	}
	return result.TxID, finality{client: c, txID: result.TxID}, nil
}

// signTransaction produces one signature of the transaction hash per
// authorizing key of each input, in input order.
func signTransaction(tx *types.Transaction) ([][]string, error) {
	hash, err := tx.Hash()
	if err != nil {
		return nil, err
	}

	signatures := make([][]string, len(tx.Inputs))
	for i, input := range tx.Inputs {
		signatures[i] = make([]string, len(input.Keys))
		for j, key := range input.Keys {
			sig, err := key.Sign(hash[:])
			if err != nil {
				return nil, fmt.Errorf("sign input %d: %w", i, err)
			}
			signatures[i][j] = hex.EncodeToString(sig.Serialize())
		}
	}
	return signatures, nil
}

// finality polls wait_transaction until the guardian reports a terminal
// status.
type finality struct {
	client *Client
	txID   types.TxID
}

var _ federation.Finality = finality{}

func (f finality) Wait(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		var result waitResult
		if err := f.client.call(ctx, "wait_transaction", waitArgs{TxID: f.txID}, &result); err != nil {
			return err
		}
		switch result.Status {
		case statusAccepted:
			return nil
		case statusRejected:
			return &federation.RejectionError{TxID: f.txID, Reason: result.Reason}
		case statusPending:
			timer.Reset(f.client.poll)
		default:
			return fmt.Errorf("unknown transaction status %q", result.Status)
		}
	}
}

//---------------------------------- JSON-RPC --------------------------------

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the error object of a JSON-RPC 2.0 response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("RPC error %v - %s: %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("RPC error %v - %s", e.Code, e.Message)
}

// call posts one JSON-RPC request and decodes the result into result, which
// must be a pointer or nil when the method returns nothing of interest.
func (c *Client) call(ctx context.Context, method string, params, result interface{}) error {
	payload, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode %s params: %w", method, err)
	}
	id := atomic.AddUint64(&c.nextReqID, 1)
	request, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  payload,
	})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address, bytes.NewReader(request))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post %s: %w", method, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %s: %s", method, httpResp.Status, body)
	}

	var response rpcResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if response.Error != nil {
		return response.Error
	}
	if response.ID != id {
		return fmt.Errorf("%s response id %d does not match request id %d", method, response.ID, id)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(response.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
