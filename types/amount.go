package types

import (
	"fmt"
	"strconv"
)

// Amount is a quantity of bitcoin in millisatoshis.
type Amount uint64

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10) + "msat"
}

// ParseAmount reads a base-10 millisatoshi count.
func ParseAmount(s string) (Amount, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount(n), nil
}

// ContractAmount is a quantity of contracts of a single market outcome.
type ContractAmount uint64

func (a ContractAmount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// ParseContractAmount reads a base-10 contract count.
func ParseContractAmount(s string) (ContractAmount, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid contract amount %q: %w", s, err)
	}
	return ContractAmount(n), nil
}

// Outcome indexes one outcome of a market. Valid indexes are
// [0, Market.Outcomes).
type Outcome uint8

// ParseOutcome reads a base-10 outcome index.
func ParseOutcome(s string) (Outcome, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid outcome %q: %w", s, err)
	}
	return Outcome(n), nil
}

// Weight is the payout vote weight of one payout control. The market's
// required-weight threshold uses the same type.
type Weight uint32
