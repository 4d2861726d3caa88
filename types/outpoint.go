package types

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// TxIDSize is the length of a transaction id in bytes.
const TxIDSize = 32

// TxID is the sha256 id of a federation transaction.
type TxID [TxIDSize]byte

func (id TxID) String() string {
	return hex.EncodeToString(id[:])
}

func (id TxID) Bytes() []byte {
	return id[:]
}

func (id TxID) IsZero() bool {
	return id == TxID{}
}

// ParseTxID reads a 64-character hex transaction id.
func ParseTxID(s string) (TxID, error) {
	var id TxID
	b, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return id, fmt.Errorf("invalid transaction id %q: %w", s, err)
	}
	if len(b) != TxIDSize {
		return id, fmt.Errorf("invalid transaction id %q: expected %d bytes, got %d", s, TxIDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id TxID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *TxID) UnmarshalText(text []byte) error {
	parsed, err := ParseTxID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// OutPoint references one output of a federation transaction. A market is
// identified by the outpoint of its creation transaction, always at output
// index 0.
type OutPoint struct {
	TxID  TxID   `json:"txid"`
	Index uint32 `json:"index"`
}

// MarketOutPoint returns the outpoint occupied by the market a transaction
// created.
func MarketOutPoint(txID TxID) OutPoint {
	return OutPoint{TxID: txID, Index: 0}
}

func (op OutPoint) String() string {
	return fmt.Sprintf("%s:%d", op.TxID, op.Index)
}

// ParseOutPoint reads "txid:index". A bare transaction id parses as output
// index 0, which is where markets live.
func ParseOutPoint(s string) (OutPoint, error) {
	txPart, idxPart, found := strings.Cut(strings.TrimSpace(s), ":")

	txID, err := ParseTxID(txPart)
	if err != nil {
		return OutPoint{}, err
	}
	if !found {
		return OutPoint{TxID: txID}, nil
	}

	idx, err := strconv.ParseUint(idxPart, 10, 32)
	if err != nil {
		return OutPoint{}, fmt.Errorf("invalid outpoint index %q: %w", idxPart, err)
	}
	return OutPoint{TxID: txID, Index: uint32(idx)}, nil
}
