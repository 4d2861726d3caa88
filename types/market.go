package types

import (
	"errors"
	"fmt"
)

// Market is a prediction market as recorded by the federation.
type Market struct {
	// ContractPrice is the amount a full contract pays out across all
	// outcomes once the market settles.
	ContractPrice Amount `json:"contract_price"`

	// Outcomes is the number of outcomes. Valid outcome indexes are
	// [0, Outcomes).
	Outcomes Outcome `json:"outcomes"`

	// PayoutControlWeights maps attestation-network identities (x-only hex
	// public keys) to their payout vote weight.
	PayoutControlWeights map[string]Weight `json:"payout_control_weights"`

	// WeightRequiredForPayout is the total attested weight needed before a
	// payout vector can be accepted.
	WeightRequiredForPayout Weight `json:"weight_required_for_payout"`

	Information MarketInformation `json:"information"`

	CreatedConsensusTimestamp UnixTimestamp `json:"created_consensus_timestamp"`

	// Payout is nil until the market settles. Once set it never changes.
	Payout *Payout `json:"payout,omitempty"`
}

// MarketInformation is the creator-supplied description of a market.
type MarketInformation struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	OutcomeTitles []string `json:"outcome_titles"`

	// ExpectedPayoutTimestamp is advisory: when the payout controls expect
	// to be able to attest to the outcome.
	ExpectedPayoutTimestamp UnixTimestamp `json:"expected_payout_timestamp"`
}

// Payout is a settled market's final payout vector, in millisatoshis per
// contract of each outcome.
type Payout struct {
	OutcomePayouts []Amount `json:"outcome_payouts"`
}

// Finished reports whether the market's payout has been set.
func (m *Market) Finished() bool {
	return m.Payout != nil
}

// ValidateBasic performs stateless checks on the market.
func (m *Market) ValidateBasic() error {
	if m.ContractPrice == 0 {
		return errors.New("contract price cannot be zero")
	}
	if m.Outcomes < 2 {
		return errors.New("market needs at least two outcomes")
	}
	if len(m.PayoutControlWeights) == 0 {
		return errors.New("market needs at least one payout control")
	}
	for control := range m.PayoutControlWeights {
		if _, err := ParseAttestationIdentity(control); err != nil {
			return fmt.Errorf("payout control: %w", err)
		}
	}
	if m.WeightRequiredForPayout == 0 {
		return errors.New("required payout weight cannot be zero")
	}
	if got, want := len(m.Information.OutcomeTitles), int(m.Outcomes); got != want {
		return fmt.Errorf("expected %d outcome titles, got %d", want, got)
	}
	if m.Payout != nil && len(m.Payout.OutcomePayouts) != int(m.Outcomes) {
		return fmt.Errorf("expected %d outcome payouts, got %d", m.Outcomes, len(m.Payout.OutcomePayouts))
	}
	return nil
}
