package client

import (
	"context"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/attestation"
	"github.com/windvane/windvane/types"
)

type attester struct {
	secret   string
	identity string
}

func newAttester(t *testing.T) attester {
	t.Helper()
	secret := nostr.GeneratePrivateKey()
	identity, err := nostr.GetPublicKey(secret)
	require.NoError(t, err)
	return attester{secret: secret, identity: identity}
}

func (a attester) attest(t *testing.T, topic string, payouts []types.Amount) nostr.Event {
	t.Helper()
	event, err := attestation.NewEvent(a.secret, topic, payouts)
	require.NoError(t, err)
	return event
}

func TestPayoutMarketReachesThreshold(t *testing.T) {
	a, b := newAttester(t), newAttester(t)
	heavy := newAttester(t)

	ref := makeOutPoint(0x0f)
	market := &types.Market{
		ContractPrice: 1000,
		Outcomes:      2,
		PayoutControlWeights: map[string]types.Weight{
			a.identity:     1,
			b.identity:     1,
			heavy.identity: 2,
		},
		WeightRequiredForPayout: 2,
		Information: types.MarketInformation{
			Title:         "will it settle",
			Description:   "aggregation test",
			OutcomeTitles: []string{"yes", "no"},
		},
		CreatedConsensusTimestamp: 1000,
	}

	source := attestation.StaticSource{
		a.attest(t, ref.String(), []types.Amount{1000, 0}),
		b.attest(t, ref.String(), []types.Amount{1000, 0}),
	}
	tc := newTestClient(t, AttestationSource(source))
	tc.fed.SetMarket(ref, market)

	ctx := context.Background()
	decision, err := tc.PayoutMarket(ctx, ref)
	require.NoError(t, err)
	require.NotNil(t, decision)
	require.Equal(t, []types.Amount{1000, 0}, decision.OutcomePayouts)
	require.Equal(t, types.Weight(2), decision.TotalWeight)
	require.Len(t, decision.Evidence, 2)

	// The federation finalized the payout from the carried evidence.
	finalized, err := tc.GetMarket(ctx, ref, false)
	require.NoError(t, err)
	require.True(t, finalized.Finished())
	require.Equal(t, []types.Amount{1000, 0}, finalized.Payout.OutcomePayouts)

	// A finished market cannot be paid out again.
	_, err = tc.PayoutMarket(ctx, ref)
	require.Error(t, err)
}

func TestPayoutMarketSingleHeavyAttester(t *testing.T) {
	light, heavy := newAttester(t), newAttester(t)

	ref := makeOutPoint(0x10)
	market := &types.Market{
		ContractPrice: 1000,
		Outcomes:      2,
		PayoutControlWeights: map[string]types.Weight{
			light.identity: 1,
			heavy.identity: 2,
		},
		WeightRequiredForPayout: 2,
		Information: types.MarketInformation{
			Title:         "heavy",
			Description:   "one attester carries the threshold",
			OutcomeTitles: []string{"yes", "no"},
		},
		CreatedConsensusTimestamp: 1000,
	}

	source := attestation.StaticSource{
		heavy.attest(t, ref.String(), []types.Amount{0, 1000}),
	}
	tc := newTestClient(t, AttestationSource(source))
	tc.fed.SetMarket(ref, market)

	decision, err := tc.PayoutMarket(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, decision)
	require.Equal(t, []types.Amount{0, 1000}, decision.OutcomePayouts)
	require.Equal(t, types.Weight(2), decision.TotalWeight)
}

func TestPayoutMarketNoQuorum(t *testing.T) {
	a, b := newAttester(t), newAttester(t)

	ref := makeOutPoint(0x11)
	market := &types.Market{
		ContractPrice: 1000,
		Outcomes:      2,
		PayoutControlWeights: map[string]types.Weight{
			a.identity: 1,
			b.identity: 1,
		},
		WeightRequiredForPayout: 2,
		Information: types.MarketInformation{
			Title:         "quorum",
			Description:   "not enough weight",
			OutcomeTitles: []string{"yes", "no"},
		},
		CreatedConsensusTimestamp: 1000,
	}

	source := attestation.StaticSource{
		a.attest(t, ref.String(), []types.Amount{1000, 0}),
	}
	tc := newTestClient(t, AttestationSource(source))
	tc.fed.SetMarket(ref, market)
	tc.fed.AutoAccept(false)

	ctx := context.Background()
	decision, err := tc.PayoutMarket(ctx, ref)
	require.NoError(t, err)
	require.Nil(t, decision)

	// Nothing was submitted and the market is untouched.
	require.Empty(t, tc.fed.PendingTransactions())
	unfinished, err := tc.GetMarket(ctx, ref, false)
	require.NoError(t, err)
	require.False(t, unfinished.Finished())
}

func TestPayoutMarketRequiresSource(t *testing.T) {
	tc := newTestClient(t)
	ref := tc.seedMarket(0x01)

	_, err := tc.PayoutMarket(context.Background(), ref)
	require.ErrorContains(t, err, "no attestation source")
}

func TestPayoutMarketUnknownMarket(t *testing.T) {
	tc := newTestClient(t, AttestationSource(attestation.StaticSource{}))

	var notFound *MarketNotFoundError
	_, err := tc.PayoutMarket(context.Background(), makeOutPoint(0xee))
	require.ErrorAs(t, err, &notFound)
}

func TestProposePayout(t *testing.T) {
	tc := newTestClient(t)
	ref := tc.seedMarket(0x01)
	ctx := context.Background()

	require.NoError(t, tc.ProposePayout(ctx, ref, []types.Amount{1000, 0}))

	// The proposal is recorded under the client's attestation identity.
	proposals, err := tc.MarketPayoutControlProposals(ctx, ref, false)
	require.NoError(t, err)
	require.Equal(t, []types.Amount{1000, 0}, proposals[tc.PayoutControl().XOnly()])

	// Wrong vector length.
	require.Error(t, tc.ProposePayout(ctx, ref, []types.Amount{1000}))

	// Unknown market.
	var notFound *MarketNotFoundError
	err = tc.ProposePayout(ctx, makeOutPoint(0xee), []types.Amount{1000, 0})
	require.ErrorAs(t, err, &notFound)

	// Finished market.
	paidOut := makeMarket(tc.PayoutControl().XOnly(), 1, 1)
	paidOut.Payout = &types.Payout{OutcomePayouts: []types.Amount{0, 1000}}
	finished := makeOutPoint(0x02)
	tc.fed.SetMarket(finished, paidOut)
	require.Error(t, tc.ProposePayout(ctx, finished, []types.Amount{0, 1000}))
}
