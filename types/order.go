package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OrderID is a client-local order number. Each id maps 1:1 to a derived
// keypair whose public key identifies the order inside the federation, so
// ids must never be reused.
type OrderID uint64

func (id OrderID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseOrderID reads a base-10 order id.
func ParseOrderID(s string) (OrderID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q: %w", s, err)
	}
	return OrderID(n), nil
}

// Side says which side of the book an order rests on.
type Side int8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("Side(%d)", int8(s))
	}
}

func (s Side) MarshalText() ([]byte, error) {
	switch s {
	case Buy, Sell:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown side %d", int8(s))
	}
}

func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSide reads "buy" or "sell".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("invalid side %q", s)
	}
}

// Order is an order as recorded by the federation.
type Order struct {
	Owner   PublicKey `json:"owner"`
	Market  OutPoint  `json:"market"`
	Outcome Outcome   `json:"outcome"`
	Side    Side      `json:"side"`

	// Price is the limit price per contract, in millisatoshis.
	Price Amount `json:"price"`

	// QuantityWaitingForMatch is the open quantity still resting on the
	// book.
	QuantityWaitingForMatch ContractAmount `json:"quantity_waiting_for_match"`

	// ContractOfOutcomeBalance is the settled quantity of outcome contracts
	// the order holds from matches.
	ContractOfOutcomeBalance ContractAmount `json:"contract_of_outcome_balance"`

	// BitcoinBalance is sale proceeds and refunds not yet withdrawn.
	BitcoinBalance Amount `json:"bitcoin_balance"`
}

// NonZero reports whether any of the order's three balances is nonzero. Only
// non-zero orders are interesting to reconciliation, sourcing and
// withdrawal.
func (o *Order) NonZero() bool {
	return o.QuantityWaitingForMatch != 0 ||
		o.ContractOfOutcomeBalance != 0 ||
		o.BitcoinBalance != 0
}

// OrderSlot occupies one order id in the local cache. A slot is written as
// reserved before the federation confirms the order so that no concurrent
// operation can hand out the same id; it is replaced by the order once
// known, and removed again if the submission fails.
type OrderSlot struct {
	Reserved bool   `json:"reserved,omitempty"`
	Order    *Order `json:"order,omitempty"`
}

// ReservedSlot returns a slot holding an id for an in-flight order.
func ReservedSlot() *OrderSlot {
	return &OrderSlot{Reserved: true}
}

// FilledSlot returns a slot holding a confirmed order.
func FilledSlot(o *Order) *OrderSlot {
	return &OrderSlot{Order: o}
}

// ValidateBasic checks the reserved/filled tag holds exactly one state.
func (s *OrderSlot) ValidateBasic() error {
	if s.Reserved == (s.Order != nil) {
		return errors.New("order slot must be either reserved or filled")
	}
	return nil
}
