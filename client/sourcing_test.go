package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/types"
)

// cacheOrder writes an order straight into the local cache, owner derived
// from the id.
func (tc *testClient) cacheOrder(t *testing.T, id types.OrderID, order types.Order) {
	t.Helper()
	order.Owner = tc.keys.OrderOwner(id)
	require.NoError(t, tc.store.SaveOrder(id, &order))
}

func TestSourceContracts(t *testing.T) {
	tc := newTestClient(t)
	market := makeOutPoint(0xaa)

	for i, balance := range []types.ContractAmount{3, 5, 2} {
		tc.cacheOrder(t, types.OrderID(i), types.Order{
			Market:                   market,
			Outcome:                  0,
			Side:                     types.Buy,
			Price:                    100,
			ContractOfOutcomeBalance: balance,
		})
	}

	// First-fit in ascending id order: 3 from order 0, the remaining 4 from
	// order 1, order 2 untouched.
	sourced, err := tc.sourceContracts(market, 0, 7)
	require.NoError(t, err)
	require.Equal(t, map[types.PublicKey]types.ContractAmount{
		tc.keys.OrderOwner(0): 3,
		tc.keys.OrderOwner(1): 4,
	}, sourced.sources)
	require.Equal(t, []types.OrderID{0, 1}, sourced.orderIDs)
	require.Len(t, sourced.keys, 2)

	// Exact cover drains every candidate.
	sourced, err = tc.sourceContracts(market, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []types.OrderID{0, 1, 2}, sourced.orderIDs)
	require.Equal(t, types.ContractAmount(2), sourced.sources[tc.keys.OrderOwner(2)])

	// A request below the first candidate's balance stops at it.
	sourced, err = tc.sourceContracts(market, 0, 2)
	require.NoError(t, err)
	require.Equal(t, []types.OrderID{0}, sourced.orderIDs)
	require.Equal(t, types.ContractAmount(2), sourced.sources[tc.keys.OrderOwner(0)])
}

func TestSourceContractsInsufficient(t *testing.T) {
	tc := newTestClient(t)
	market := makeOutPoint(0xaa)

	for i, balance := range []types.ContractAmount{3, 5, 2} {
		tc.cacheOrder(t, types.OrderID(i), types.Order{
			Market:                   market,
			Outcome:                  0,
			Side:                     types.Buy,
			Price:                    100,
			ContractOfOutcomeBalance: balance,
		})
	}

	_, err := tc.sourceContracts(market, 0, 11)
	var insufficient *InsufficientLiquidityError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, types.ContractAmount(11), insufficient.Requested)
	require.Equal(t, types.ContractAmount(10), insufficient.Available)

	// The failed scan mutated nothing.
	next, err := tc.store.NextOrderID()
	require.NoError(t, err)
	require.Equal(t, types.OrderID(3), next)
	for i, balance := range []types.ContractAmount{3, 5, 2} {
		order, err := tc.store.Order(types.OrderID(i))
		require.NoError(t, err)
		require.Equal(t, balance, order.ContractOfOutcomeBalance)
	}
}

func TestSourceContractsSkipsUnusable(t *testing.T) {
	tc := newTestClient(t)
	market := makeOutPoint(0xaa)

	// In the non-zero index, but nothing to source from.
	tc.cacheOrder(t, 0, types.Order{
		Market:         market,
		Outcome:        0,
		Side:           types.Sell,
		Price:          100,
		BitcoinBalance: 500,
	})
	// Wrong outcome.
	tc.cacheOrder(t, 1, types.Order{
		Market:                   market,
		Outcome:                  1,
		Side:                     types.Buy,
		Price:                    100,
		ContractOfOutcomeBalance: 50,
	})
	tc.cacheOrder(t, 2, types.Order{
		Market:                   market,
		Outcome:                  0,
		Side:                     types.Buy,
		Price:                    100,
		ContractOfOutcomeBalance: 5,
	})

	sourced, err := tc.sourceContracts(market, 0, 5)
	require.NoError(t, err)
	require.Equal(t, []types.OrderID{2}, sourced.orderIDs)
	require.Equal(t, types.ContractAmount(5), sourced.sources[tc.keys.OrderOwner(2)])
}
