package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/windvane/windvane/types"
)

var (
	marketTitle           string
	marketDescription     string
	marketOutcomeTitles   []string
	marketContractPrice   uint64
	marketPayoutControls  []string
	marketPayoutThreshold uint32
	marketExpectedPayout  int64
)

func init() {
	NewMarketCmd.Flags().StringVar(&marketTitle, "title", "",
		"market question, e.g. \"Will it rain tomorrow?\"")
	NewMarketCmd.Flags().StringVar(&marketDescription, "description", "",
		"resolution criteria and context")
	NewMarketCmd.Flags().StringArrayVar(&marketOutcomeTitles, "outcome", nil,
		"outcome title, repeat once per outcome in order")
	NewMarketCmd.Flags().Uint64Var(&marketContractPrice, "contract-price", 0,
		"price of a full contract, in millisatoshis")
	NewMarketCmd.Flags().StringArrayVar(&marketPayoutControls, "payout-control", nil,
		"payout control as identity[=weight]; defaults to this wallet with weight 1")
	NewMarketCmd.Flags().Uint32Var(&marketPayoutThreshold, "payout-threshold", 1,
		"total payout-control weight required to settle the market")
	NewMarketCmd.Flags().Int64Var(&marketExpectedPayout, "expected-payout", 0,
		"expected payout time as a unix timestamp")
}

// NewMarketCmd creates a market on the federation and prints the outpoint
// that identifies it from now on.
var NewMarketCmd = &cobra.Command{
	Use:   "new_market",
	Short: "Create a prediction market",
	Long: `Create a prediction market with one contract per listed outcome.

The number of outcomes is taken from the repeated --outcome flags. Unless
--payout-control is given, this wallet's own payout control decides the
payout alone.`,
	RunE: newMarket,
}

func newMarket(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(marketTitle) == "" {
		return errors.New("--title is required")
	}

	c, closer, err := loadClient()
	if err != nil {
		return err
	}
	defer closer()

	weights, err := parsePayoutControls(marketPayoutControls, c.PayoutControl())
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	ref, err := c.NewMarket(ctx, types.NewMarketOutput{
		ContractPrice:           types.Amount(marketContractPrice),
		Outcomes:                types.Outcome(len(marketOutcomeTitles)),
		PayoutControlWeights:    weights,
		WeightRequiredForPayout: types.Weight(marketPayoutThreshold),
		Information: types.MarketInformation{
			Title:                   marketTitle,
			Description:             marketDescription,
			OutcomeTitles:           marketOutcomeTitles,
			ExpectedPayoutTimestamp: types.UnixTimestamp(marketExpectedPayout),
		},
	})
	if err != nil {
		return err
	}

	return printJSON(struct {
		Market types.OutPoint `json:"market"`
	}{Market: ref})
}

// parsePayoutControls reads repeated identity[=weight] flags into the weight
// map the federation expects. Identities may be x-only hex, npub or
// compressed keys; an omitted weight is 1. With no flags the wallet's own
// control carries weight 1.
func parsePayoutControls(entries []string, own types.PublicKey) (map[string]types.Weight, error) {
	if len(entries) == 0 {
		return map[string]types.Weight{own.XOnly(): 1}, nil
	}

	weights := make(map[string]types.Weight, len(entries))
	for _, entry := range entries {
		spec, weightPart, hasWeight := strings.Cut(entry, "=")

		weight := types.Weight(1)
		if hasWeight {
			w, err := strconv.ParseUint(strings.TrimSpace(weightPart), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid payout control weight in %q: %w", entry, err)
			}
			weight = types.Weight(w)
		}

		id, err := types.ParseAttestationIdentity(spec)
		if err != nil {
			pk, pkErr := types.ParsePublicKey(spec)
			if pkErr != nil {
				return nil, fmt.Errorf("invalid payout control %q", spec)
			}
			id = pk.XOnly()
		}

		if _, ok := weights[id]; ok {
			return nil, fmt.Errorf("payout control %s listed twice", id)
		}
		weights[id] = weight
	}
	return weights, nil
}
