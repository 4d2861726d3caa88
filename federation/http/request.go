package http

// The types in this file define the JSON encoding for RPC method parameters
// and results exchanged with a federation guardian.

import (
	"github.com/windvane/windvane/types"
)

type marketArgs struct {
	Market types.OutPoint `json:"market"`
}

type orderArgs struct {
	Owner types.PublicKey `json:"owner"`
}

type proposalsArgs struct {
	Market types.OutPoint `json:"market"`
}

type controlMarketsArgs struct {
	PayoutControl types.PublicKey     `json:"payout_control"`
	Since         types.UnixTimestamp `json:"since"`
}

type controlBalanceArgs struct {
	PayoutControl types.PublicKey `json:"payout_control"`
}

type candlesticksArgs struct {
	Market       types.OutPoint      `json:"market"`
	Outcome      types.Outcome       `json:"outcome"`
	Interval     types.Seconds       `json:"interval"`
	MinTimestamp types.UnixTimestamp `json:"min_timestamp"`
}

type submitArgs struct {
	OperationID string             `json:"operation_id"`
	Transaction *types.Transaction `json:"transaction"`

	// Signatures[i] holds one DER-encoded hex signature of the transaction
	// hash per authorizing key of input i.
	Signatures [][]string `json:"signatures"`
}

type waitArgs struct {
	TxID types.TxID `json:"txid"`
}

type balanceResult struct {
	Balance types.Amount `json:"balance"`
}

type submitResult struct {
	TxID types.TxID `json:"txid"`
}

const (
	statusPending  = "pending"
	statusAccepted = "accepted"
	statusRejected = "rejected"
)

type waitResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
