package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/store"
	"github.com/windvane/windvane/types"
)

func TestNewMarket(t *testing.T) {
	tc := newTestClient(t)
	ctx := context.Background()

	params := types.NewMarketOutput{
		ContractPrice: 1000,
		Outcomes:      2,
		PayoutControlWeights: map[string]types.Weight{
			tc.PayoutControl().XOnly(): 1,
		},
		WeightRequiredForPayout: 1,
		Information: types.MarketInformation{
			Title:         "will it settle",
			Description:   "resolved by ourselves",
			OutcomeTitles: []string{"yes", "no"},
		},
	}
	ref, err := tc.NewMarket(ctx, params)
	require.NoError(t, err)
	require.Equal(t, uint32(0), ref.Index)
	require.NotEqual(t, types.TxID{}, ref.TxID)

	market, err := tc.GetMarket(ctx, ref, false)
	require.NoError(t, err)
	require.NotNil(t, market)
	assert.Equal(t, params.ContractPrice, market.ContractPrice)
	assert.Equal(t, params.Outcomes, market.Outcomes)
	assert.Equal(t, params.PayoutControlWeights, market.PayoutControlWeights)
	assert.Equal(t, params.Information, market.Information)
	assert.NotZero(t, market.CreatedConsensusTimestamp)

	// Market operations never touch the order cache.
	dirty, err := tc.store.DirtyOrders()
	require.NoError(t, err)
	require.Empty(t, dirty)
}

func TestNewMarketValidation(t *testing.T) {
	tc := newTestClient(t)
	tc.fed.AutoAccept(false)

	// One outcome title short: rejected before anything reaches the
	// federation.
	params := types.NewMarketOutput{
		ContractPrice: 1000,
		Outcomes:      2,
		PayoutControlWeights: map[string]types.Weight{
			tc.PayoutControl().XOnly(): 1,
		},
		WeightRequiredForPayout: 1,
		Information: types.MarketInformation{
			Title:         "lopsided",
			OutcomeTitles: []string{"yes"},
		},
	}
	_, err := tc.NewMarket(context.Background(), params)
	require.ErrorContains(t, err, "outcome titles")
	require.Empty(t, tc.fed.PendingTransactions())
}

func TestGetMarketCaching(t *testing.T) {
	tc := newTestClient(t)
	ctx := context.Background()
	ref := makeOutPoint(0x01)

	// Nothing cached, nothing fetched.
	market, err := tc.GetMarket(ctx, ref, true)
	require.NoError(t, err)
	require.Nil(t, market)

	// An authoritative hit lands in the cache.
	tc.fed.SetMarket(ref, makeMarket(xOnlyIdentity(0xaa), 1, 1))
	market, err = tc.GetMarket(ctx, ref, false)
	require.NoError(t, err)
	require.NotNil(t, market)
	cached, err := tc.GetMarket(ctx, ref, true)
	require.NoError(t, err)
	require.Equal(t, market, cached)

	// An unfinished market is refreshed on authoritative reads.
	renamed := makeMarket(xOnlyIdentity(0xaa), 1, 1)
	renamed.Information.Title = "renamed"
	tc.fed.SetMarket(ref, renamed)
	market, err = tc.GetMarket(ctx, ref, false)
	require.NoError(t, err)
	require.Equal(t, "renamed", market.Information.Title)
	cached, err = tc.GetMarket(ctx, ref, true)
	require.NoError(t, err)
	require.Equal(t, "renamed", cached.Information.Title)

	// Once paid out the cached copy is final: even authoritative reads stop
	// consulting the federation.
	finished := makeMarket(xOnlyIdentity(0xaa), 1, 1)
	finished.Information.Title = "renamed"
	finished.Payout = &types.Payout{OutcomePayouts: []types.Amount{1000, 0}}
	tc.fed.SetMarket(ref, finished)
	market, err = tc.GetMarket(ctx, ref, false)
	require.NoError(t, err)
	require.True(t, market.Finished())

	tc.fed.SetMarket(ref, nil)
	market, err = tc.GetMarket(ctx, ref, false)
	require.NoError(t, err)
	require.NotNil(t, market)
	require.True(t, market.Finished())

	// An unknown market is a miss, not an error.
	market, err = tc.GetMarket(ctx, makeOutPoint(0xee), false)
	require.NoError(t, err)
	require.Nil(t, market)
}

func TestMarketBookmarks(t *testing.T) {
	tc := newTestClient(t)
	first, second := makeOutPoint(0x01), makeOutPoint(0x02)

	require.NoError(t, tc.BookmarkMarket(first))
	require.NoError(t, tc.BookmarkMarket(second))

	bookmarks, err := tc.MarketBookmarks()
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	assert.Equal(t, first, bookmarks[0].Market)
	assert.Equal(t, second, bookmarks[1].Market)
	assert.NotZero(t, bookmarks[0].SavedAt)

	require.NoError(t, tc.UnbookmarkMarket(first))
	bookmarks, err = tc.MarketBookmarks()
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, second, bookmarks[0].Market)

	// Removing a bookmark that never existed is fine.
	require.NoError(t, tc.UnbookmarkMarket(makeOutPoint(0xee)))
}

func TestPayoutControlNames(t *testing.T) {
	tc := newTestClient(t)
	alice, bob := xOnlyIdentity(0x01), xOnlyIdentity(0x02)

	// Any accepted spelling resolves to the same x-only identity.
	require.NoError(t, tc.NamePayoutControl(alice, "alice"))
	npub, err := types.EncodeNpub(bob)
	require.NoError(t, err)
	require.NoError(t, tc.NamePayoutControl(npub, "bob"))
	require.NoError(t, tc.NamePayoutControl(string(tc.PayoutControl()), "me"))

	names, err := tc.PayoutControlNames()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		alice:                      "alice",
		bob:                        "bob",
		tc.PayoutControl().XOnly(): "me",
	}, names)

	require.Error(t, tc.NamePayoutControl(alice, "   "))
	require.Error(t, tc.NamePayoutControl("not-a-key", "carol"))

	// Unnaming accepts the same spellings.
	require.NoError(t, tc.UnnamePayoutControl(npub))
	names, err = tc.PayoutControlNames()
	require.NoError(t, err)
	require.NotContains(t, names, bob)
	require.Len(t, names, 2)
}

func TestPayoutControlMarkets(t *testing.T) {
	tc := newTestClient(t)
	ctx := context.Background()
	identity := tc.PayoutControl().XOnly()

	refEarly, refLate := makeOutPoint(0x01), makeOutPoint(0x02)
	early := makeMarket(identity, 1, 1)
	early.CreatedConsensusTimestamp = 100
	late := makeMarket(identity, 1, 1)
	late.CreatedConsensusTimestamp = 200
	tc.fed.SetMarket(refEarly, early)
	tc.fed.SetMarket(refLate, late)

	// A market someone else controls never shows up.
	other := makeMarket(xOnlyIdentity(0xbb), 1, 1)
	other.CreatedConsensusTimestamp = 300
	tc.fed.SetMarket(makeOutPoint(0xbb), other)

	markets, err := tc.PayoutControlMarkets(ctx, true, 0)
	require.NoError(t, err)
	require.Empty(t, markets)

	markets, err = tc.PayoutControlMarkets(ctx, false, 0)
	require.NoError(t, err)
	require.Equal(t, []store.PayoutControlMarket{
		{Created: 200, Market: refLate},
		{Created: 100, Market: refEarly},
	}, markets)

	// Listing also cached the markets themselves.
	cached, err := tc.GetMarket(ctx, refLate, true)
	require.NoError(t, err)
	require.NotNil(t, cached)

	// The cutoff is inclusive.
	markets, err = tc.PayoutControlMarkets(ctx, true, 200)
	require.NoError(t, err)
	require.Equal(t, []store.PayoutControlMarket{{Created: 200, Market: refLate}}, markets)

	// A later refresh only asks for what is newer than the local index.
	refNew := makeOutPoint(0x03)
	newest := makeMarket(identity, 1, 1)
	newest.CreatedConsensusTimestamp = 400
	tc.fed.SetMarket(refNew, newest)

	markets, err = tc.PayoutControlMarkets(ctx, false, 0)
	require.NoError(t, err)
	require.Equal(t, []store.PayoutControlMarket{
		{Created: 400, Market: refNew},
		{Created: 200, Market: refLate},
		{Created: 100, Market: refEarly},
	}, markets)
}

func TestMarketProposalsReplace(t *testing.T) {
	tc := newTestClient(t)
	ctx := context.Background()
	ref := makeOutPoint(0x01)
	alice, bob := xOnlyIdentity(0x01), xOnlyIdentity(0x02)

	tc.fed.SetProposal(ref, alice, []types.Amount{1000, 0})
	tc.fed.SetProposal(ref, bob, []types.Amount{0, 1000})

	proposals, err := tc.MarketPayoutControlProposals(ctx, ref, false)
	require.NoError(t, err)
	require.Equal(t, map[string][]types.Amount{
		alice: {1000, 0},
		bob:   {0, 1000},
	}, proposals)

	// A withdrawn proposal disappears from the refreshed cache.
	tc.fed.SetProposal(ref, alice, nil)
	proposals, err = tc.MarketPayoutControlProposals(ctx, ref, false)
	require.NoError(t, err)
	require.Equal(t, map[string][]types.Amount{bob: {0, 1000}}, proposals)

	cached, err := tc.MarketPayoutControlProposals(ctx, ref, true)
	require.NoError(t, err)
	require.Equal(t, proposals, cached)
}

func TestCandlesticks(t *testing.T) {
	tc := newTestClient(t)
	ctx := context.Background()
	ref := makeOutPoint(0x01)

	entries := []types.CandlestickEntry{
		{Timestamp: 100, Candlestick: types.Candlestick{Open: 10, Close: 12, High: 13, Low: 9, Volume: 4}},
		{Timestamp: 160, Candlestick: types.Candlestick{Open: 12, Close: 11, High: 12, Low: 11, Volume: 2}},
	}
	tc.fed.SetCandlesticks(ref, 0, 60, entries)

	got, err := tc.Candlesticks(ctx, ref, 0, 60, 0)
	require.NoError(t, err)
	require.Equal(t, entries, got)

	// minTimestamp trims the head of the series.
	got, err = tc.Candlesticks(ctx, ref, 0, 60, 150)
	require.NoError(t, err)
	require.Equal(t, entries[1:], got)

	// Unknown series are empty, not an error.
	got, err = tc.Candlesticks(ctx, ref, 1, 60, 0)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = tc.Candlesticks(ctx, ref, 0, 0, 0)
	require.ErrorContains(t, err, "interval must be positive")
}
