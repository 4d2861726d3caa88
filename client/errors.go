package client

import (
	"fmt"

	"github.com/windvane/windvane/types"
)

// MarketNotFoundError reports that an operation requiring a market found no
// market at the given outpoint.
type MarketNotFoundError struct {
	Market types.OutPoint
}

func (e *MarketNotFoundError) Error() string {
	return fmt.Sprintf("no market at %s", e.Market)
}

// InsufficientLiquidityError reports that a sell order asked for more
// contracts than the client's settled balances hold for that market outcome.
type InsufficientLiquidityError struct {
	Requested types.ContractAmount
	Available types.ContractAmount
}

func (e *InsufficientLiquidityError) Error() string {
	return fmt.Sprintf("insufficient contracts to source: requested %d, available %d", e.Requested, e.Available)
}
