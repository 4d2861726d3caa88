package client

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/windvane/windvane/store"
	"github.com/windvane/windvane/types"
)

// NewMarket creates a market and returns the outpoint identifying it. The
// market occupies output index 0 of its creation transaction.
func (c *Client) NewMarket(ctx context.Context, params types.NewMarketOutput) (types.OutPoint, error) {
	preview := types.Market{
		ContractPrice:           params.ContractPrice,
		Outcomes:                params.Outcomes,
		PayoutControlWeights:    params.PayoutControlWeights,
		WeightRequiredForPayout: params.WeightRequiredForPayout,
		Information:             params.Information,
	}
	if err := preview.ValidateBasic(); err != nil {
		return types.OutPoint{}, err
	}

	tx := &types.Transaction{Outputs: []types.Output{{Payload: params}}}
	state, err := c.submitOperation(ctx, &OperationState{Kind: OpNewMarket}, tx)
	if err != nil {
		return types.OutPoint{}, err
	}
	if err := state.Wait(ctx); err != nil {
		return types.OutPoint{}, err
	}
	return types.MarketOutPoint(state.TxID), nil
}

// GetMarket returns one market, from the cache or authoritatively. A cached
// market that has paid out is returned as is even when fromCache is false:
// payouts never change, so there is nothing left to refresh. Authoritative
// hits are persisted; a miss returns nil.
func (c *Client) GetMarket(ctx context.Context, ref types.OutPoint, fromCache bool) (*types.Market, error) {
	cached, err := c.store.Market(ref)
	if err != nil {
		return nil, err
	}
	if fromCache || (cached != nil && cached.Finished()) {
		return cached, nil
	}

	fetched, err := c.fed.Market(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch market %s: %w", ref, err)
	}
	if fetched == nil {
		return nil, nil
	}
	if err := c.store.SaveMarket(ref, fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// PayoutControlMarkets lists markets governed by this client's payout
// control, newest creation first, cut off at since (inclusive). Unless
// fromCache is set the local index is first topped up from the federation,
// asking only for markets newer than the newest one already indexed.
func (c *Client) PayoutControlMarkets(ctx context.Context, fromCache bool, since types.UnixTimestamp) ([]store.PayoutControlMarket, error) {
	if !fromCache {
		newest, err := c.store.NewestPayoutControlMarketTime()
		if err != nil {
			return nil, err
		}
		refs, err := c.fed.PayoutControlMarkets(ctx, c.PayoutControl(), newest)
		if err != nil {
			return nil, fmt.Errorf("fetch payout control markets: %w", err)
		}
		for _, ref := range refs {
			market, err := c.GetMarket(ctx, ref, false)
			if err != nil {
				return nil, err
			}
			if market == nil {
				return nil, fmt.Errorf("federation listed unknown market %s", ref)
			}
			if err := c.store.AddPayoutControlMarket(market.CreatedConsensusTimestamp, ref); err != nil {
				return nil, err
			}
		}
	}
	return c.store.PayoutControlMarkets(since)
}

// MarketPayoutControlProposals returns the payout vectors currently proposed
// for a market, keyed by payout-control identity. Unless fromCache is set the
// cached proposals are replaced wholesale by the federation's, dropping
// proposals that have been withdrawn.
func (c *Client) MarketPayoutControlProposals(ctx context.Context, ref types.OutPoint, fromCache bool) (map[string][]types.Amount, error) {
	if fromCache {
		return c.store.PayoutControlProposals(ref)
	}

	proposals, err := c.fed.MarketPayoutControlProposals(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch payout control proposals for %s: %w", ref, err)
	}
	if err := c.store.ReplacePayoutControlProposals(ref, proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

// BookmarkMarket saves a market reference for later lookup. Bookmarking an
// already saved market refreshes its timestamp.
func (c *Client) BookmarkMarket(ref types.OutPoint) error {
	return c.store.SaveMarketBookmark(ref, types.NowTimestamp())
}

// UnbookmarkMarket removes a bookmark. Removing a missing bookmark is a
// no-op.
func (c *Client) UnbookmarkMarket(ref types.OutPoint) error {
	return c.store.DeleteMarketBookmark(ref)
}

// MarketBookmarks lists saved markets.
func (c *Client) MarketBookmarks() ([]store.MarketBookmark, error) {
	return c.store.MarketBookmarks()
}

// NamePayoutControl assigns a local alias to a payout-control identity given
// in x-only hex, npub or compressed-key form.
func (c *Client) NamePayoutControl(control, name string) error {
	id, err := normalizePayoutControl(control)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("payout control name cannot be empty")
	}
	return c.store.SetPayoutControlName(id, name)
}

// UnnamePayoutControl drops a payout-control alias.
func (c *Client) UnnamePayoutControl(control string) error {
	id, err := normalizePayoutControl(control)
	if err != nil {
		return err
	}
	return c.store.DeletePayoutControlName(id)
}

// PayoutControlNames returns all aliases, keyed by x-only identity.
func (c *Client) PayoutControlNames() (map[string]string, error) {
	return c.store.PayoutControlNames()
}

// normalizePayoutControl reduces any accepted payout-control spelling to the
// x-only hex identity the cache keys by.
func normalizePayoutControl(s string) (string, error) {
	if id, err := types.ParseAttestationIdentity(s); err == nil {
		return id, nil
	}
	pk, err := types.ParsePublicKey(s)
	if err != nil {
		return "", fmt.Errorf("invalid payout control %q", s)
	}
	return pk.XOnly(), nil
}

// sortedIdentities returns a market's payout-control identities in a stable
// order.
func sortedIdentities(m *types.Market) []string {
	ids := make([]string, 0, len(m.PayoutControlWeights))
	for id := range m.PayoutControlWeights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
