package attestation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/types"
)

type signer struct {
	secret   string
	identity string
}

func newSigner(t *testing.T) signer {
	t.Helper()
	secret := nostr.GeneratePrivateKey()
	identity, err := nostr.GetPublicKey(secret)
	require.NoError(t, err)
	return signer{secret: secret, identity: identity}
}

func (s signer) attest(t *testing.T, topic string, payouts []types.Amount) nostr.Event {
	t.Helper()
	event, err := NewEvent(s.secret, topic, payouts)
	require.NoError(t, err)
	return event
}

func testMarket(weights map[string]types.Weight, threshold types.Weight) *types.Market {
	return &types.Market{
		ContractPrice:           1000,
		Outcomes:                2,
		PayoutControlWeights:    weights,
		WeightRequiredForPayout: threshold,
	}
}

func TestNewEventParse(t *testing.T) {
	s := newSigner(t)
	event := s.attest(t, "topic", []types.Amount{1000, 0})

	att, err := Parse(event)
	require.NoError(t, err)
	assert.Equal(t, s.identity, att.Identity)
	assert.Equal(t, []types.Amount{1000, 0}, att.OutcomePayouts)
	assert.Equal(t, event, att.Event)

	// Wrong kind
	wrongKind := event
	wrongKind.Kind = nostr.KindTextNote
	_, err = Parse(wrongKind)
	require.Error(t, err)

	// Garbage payload
	garbage := event
	garbage.Content = "not json"
	_, err = Parse(garbage)
	require.Error(t, err)

	// Valid JSON without a payout vector
	empty := event
	empty.Content = "{}"
	_, err = Parse(empty)
	require.Error(t, err)
}

func TestAggregateReachesThreshold(t *testing.T) {
	a, b, c := newSigner(t), newSigner(t), newSigner(t)
	market := testMarket(map[string]types.Weight{
		a.identity: 1,
		b.identity: 1,
		c.identity: 2,
	}, 2)

	yes := []types.Amount{1000, 0}
	no := []types.Amount{0, 1000}

	// A alone is below the threshold
	decision := Aggregate(market, []nostr.Event{a.attest(t, "m", yes)})
	assert.Nil(t, decision)

	// A and B agreeing reach it together
	events := []nostr.Event{a.attest(t, "m", yes), b.attest(t, "m", yes)}
	decision = Aggregate(market, events)
	require.NotNil(t, decision)
	assert.Equal(t, yes, decision.OutcomePayouts)
	assert.EqualValues(t, 2, decision.TotalWeight)
	assert.Len(t, decision.Evidence, 2)

	// C reaches it alone
	decision = Aggregate(market, []nostr.Event{c.attest(t, "m", no)})
	require.NotNil(t, decision)
	assert.Equal(t, no, decision.OutcomePayouts)
	assert.EqualValues(t, 2, decision.TotalWeight)
	assert.Len(t, decision.Evidence, 1)

	// A and B disagreeing do not
	events = []nostr.Event{a.attest(t, "m", yes), b.attest(t, "m", no)}
	assert.Nil(t, Aggregate(market, events))
}

func TestAggregateCountsEachIdentityOnce(t *testing.T) {
	a, b := newSigner(t), newSigner(t)
	market := testMarket(map[string]types.Weight{
		a.identity: 1,
		b.identity: 1,
	}, 2)

	yes := []types.Amount{1000, 0}
	no := []types.Amount{0, 1000}

	// A's repeated agreement is not extra weight
	events := []nostr.Event{a.attest(t, "m", yes), a.attest(t, "m", yes)}
	assert.Nil(t, Aggregate(market, events))

	// A's first claim wins over a later contradiction, so B agreeing with
	// the later one changes nothing
	events = []nostr.Event{a.attest(t, "m", yes), a.attest(t, "m", no), b.attest(t, "m", no)}
	assert.Nil(t, Aggregate(market, events))
}

func TestAggregateSkipsInvalidEvents(t *testing.T) {
	a, b, stranger := newSigner(t), newSigner(t), newSigner(t)
	market := testMarket(map[string]types.Weight{
		a.identity: 1,
		b.identity: 1,
	}, 2)

	yes := []types.Amount{1000, 0}

	// A stranger's weight does not exist
	events := []nostr.Event{a.attest(t, "m", yes), stranger.attest(t, "m", yes)}
	assert.Nil(t, Aggregate(market, events))

	// A wrong-length vector is skipped
	events = []nostr.Event{a.attest(t, "m", yes), b.attest(t, "m", []types.Amount{1000, 0, 0})}
	assert.Nil(t, Aggregate(market, events))

	// A malformed payload is skipped even when properly signed
	malformed := nostr.Event{
		CreatedAt: nostr.Now(),
		Kind:      EventKind,
		Tags:      nostr.Tags{nostr.Tag{"t", "m"}},
		Content:   "{",
	}
	require.NoError(t, malformed.Sign(b.secret))
	events = []nostr.Event{a.attest(t, "m", yes), malformed}
	assert.Nil(t, Aggregate(market, events))

	// A forged author does not count: the signature no longer verifies
	forged := stranger.attest(t, "m", yes)
	forged.PubKey = b.identity
	events = []nostr.Event{a.attest(t, "m", yes), forged}
	assert.Nil(t, Aggregate(market, events))

	// The skipped identity may still attest properly later
	events = []nostr.Event{a.attest(t, "m", yes), malformed, b.attest(t, "m", yes)}
	decision := Aggregate(market, events)
	require.NotNil(t, decision)
	assert.Equal(t, yes, decision.OutcomePayouts)
}

func TestStaticSourceFilters(t *testing.T) {
	a, b := newSigner(t), newSigner(t)
	yes := []types.Amount{1000, 0}

	onTopic := a.attest(t, "market-1", yes)
	offTopic := a.attest(t, "market-2", yes)
	wrongAuthor := b.attest(t, "market-1", yes)
	wrongKind := a.attest(t, "market-1", yes)
	wrongKind.Kind = nostr.KindTextNote

	source := StaticSource{onTopic, offTopic, wrongAuthor, wrongKind}
	events, err := source.Query(context.Background(), Filter{
		Topic:   "market-1",
		Authors: []string{a.identity},
	})
	require.NoError(t, err)
	assert.Equal(t, []nostr.Event{onTopic}, events)
}

func TestFileSource(t *testing.T) {
	a, b := newSigner(t), newSigner(t)
	yes := []types.Amount{1000, 0}

	events := []nostr.Event{
		a.attest(t, "market-1", yes),
		b.attest(t, "market-1", yes),
		a.attest(t, "market-2", yes),
	}
	bz, err := json.Marshal(events)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "attestations.json")
	require.NoError(t, os.WriteFile(path, bz, 0o600))

	source := FileSource{Path: path}
	got, err := source.Query(context.Background(), Filter{
		Topic:   "market-1",
		Authors: []string{a.identity, b.identity},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.identity, got[0].PubKey)
	assert.Equal(t, b.identity, got[1].PubKey)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Query(
		context.Background(), Filter{Topic: "market-1"})
	require.Error(t, err)
}
