package types

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
)

// Transaction is a bundle of inputs and outputs submitted to the federation
// as one atomic unit. The federation accepts or rejects it as a whole.
type Transaction struct {
	Inputs  []Input  `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// Input is one transaction input: the payload plus the derived private keys
// that authorize it. Keys never serialize; the submitter signs the wire
// encoding with them.
type Input struct {
	Payload InputPayload
	Keys    []*btcec.PrivateKey
}

// Output is one transaction output.
type Output struct {
	Payload OutputPayload
}

// InputPayload is implemented by the closed set of input kinds.
type InputPayload interface {
	TypeTag() string
}

// OutputPayload is implemented by the closed set of output kinds.
type OutputPayload interface {
	TypeTag() string
}

// NewSellOrderInput places a sell order funded by settled outcome contracts
// sourced from existing orders.
type NewSellOrderInput struct {
	Owner   PublicKey `json:"owner"`
	Market  OutPoint  `json:"market"`
	Outcome Outcome   `json:"outcome"`
	Price   Amount    `json:"price"`

	// Sources maps source order owners to the contract quantity taken from
	// each. The quantities sum to the order quantity.
	Sources map[PublicKey]ContractAmount `json:"sources"`
}

func (NewSellOrderInput) TypeTag() string { return "new_sell_order" }

// CancelOrderInput zeroes an order's quantity waiting for match.
type CancelOrderInput struct {
	Order PublicKey `json:"order"`
}

func (CancelOrderInput) TypeTag() string { return "cancel_order" }

// ConsumeOrderBitcoinBalanceInput withdraws an order's bitcoin balance.
type ConsumeOrderBitcoinBalanceInput struct {
	Order  PublicKey `json:"order"`
	Amount Amount    `json:"amount"`
}

func (ConsumeOrderBitcoinBalanceInput) TypeTag() string { return "consume_order_bitcoin_balance" }

// ConsumePayoutControlBitcoinBalanceInput withdraws the fees accrued by a
// payout control.
type ConsumePayoutControlBitcoinBalanceInput struct {
	PayoutControl PublicKey `json:"payout_control"`
	Amount        Amount    `json:"amount"`
}

func (ConsumePayoutControlBitcoinBalanceInput) TypeTag() string {
	return "consume_payout_control_bitcoin_balance"
}

// PayoutProposalInput records the signing payout control's proposed payout
// vector for a market.
type PayoutProposalInput struct {
	Market         OutPoint  `json:"market"`
	PayoutControl  PublicKey `json:"payout_control"`
	OutcomePayouts []Amount  `json:"outcome_payouts"`
}

func (PayoutProposalInput) TypeTag() string { return "payout_proposal" }

// MarketPayoutInput finalizes a market payout, carrying the raw attestation
// events whose summed weight crossed the market threshold. The federation
// re-verifies the evidence; the client only proposes.
type MarketPayoutInput struct {
	Market       OutPoint          `json:"market"`
	Attestations []json.RawMessage `json:"attestations"`
}

func (MarketPayoutInput) TypeTag() string { return "market_payout" }

// NewMarketOutput creates a market at output index 0 of the transaction.
type NewMarketOutput struct {
	ContractPrice           Amount            `json:"contract_price"`
	Outcomes                Outcome           `json:"outcomes"`
	PayoutControlWeights    map[string]Weight `json:"payout_control_weights"`
	WeightRequiredForPayout Weight            `json:"weight_required_for_payout"`
	Information             MarketInformation `json:"information"`
}

func (NewMarketOutput) TypeTag() string { return "new_market" }

// NewBuyOrderOutput places a buy order funded by the transaction.
type NewBuyOrderOutput struct {
	Owner    PublicKey      `json:"owner"`
	Market   OutPoint       `json:"market"`
	Outcome  Outcome        `json:"outcome"`
	Price    Amount         `json:"price"`
	Quantity ContractAmount `json:"quantity"`
}

func (NewBuyOrderOutput) TypeTag() string { return "new_buy_order" }

// taggedPayload is the wire envelope for input and output payloads.
type taggedPayload struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func marshalTagged(tag string, v interface{}) ([]byte, error) {
	value, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(taggedPayload{Type: tag, Value: value})
}

func (in Input) MarshalJSON() ([]byte, error) {
	if in.Payload == nil {
		return nil, errors.New("transaction input without payload")
	}
	return marshalTagged(in.Payload.TypeTag(), in.Payload)
}

func (in *Input) UnmarshalJSON(data []byte) error {
	var tp taggedPayload
	if err := json.Unmarshal(data, &tp); err != nil {
		return err
	}

	switch tp.Type {
	case NewSellOrderInput{}.TypeTag():
		var p NewSellOrderInput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		in.Payload = p
	case CancelOrderInput{}.TypeTag():
		var p CancelOrderInput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		in.Payload = p
	case ConsumeOrderBitcoinBalanceInput{}.TypeTag():
		var p ConsumeOrderBitcoinBalanceInput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		in.Payload = p
	case ConsumePayoutControlBitcoinBalanceInput{}.TypeTag():
		var p ConsumePayoutControlBitcoinBalanceInput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		in.Payload = p
	case PayoutProposalInput{}.TypeTag():
		var p PayoutProposalInput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		in.Payload = p
	case MarketPayoutInput{}.TypeTag():
		var p MarketPayoutInput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		in.Payload = p
	default:
		return fmt.Errorf("unknown transaction input type %q", tp.Type)
	}
	return nil
}

func (out Output) MarshalJSON() ([]byte, error) {
	if out.Payload == nil {
		return nil, errors.New("transaction output without payload")
	}
	return marshalTagged(out.Payload.TypeTag(), out.Payload)
}

func (out *Output) UnmarshalJSON(data []byte) error {
	var tp taggedPayload
	if err := json.Unmarshal(data, &tp); err != nil {
		return err
	}

	switch tp.Type {
	case NewMarketOutput{}.TypeTag():
		var p NewMarketOutput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		out.Payload = p
	case NewBuyOrderOutput{}.TypeTag():
		var p NewBuyOrderOutput
		if err := json.Unmarshal(tp.Value, &p); err != nil {
			return err
		}
		out.Payload = p
	default:
		return fmt.Errorf("unknown transaction output type %q", tp.Type)
	}
	return nil
}

// ValidateBasic performs stateless checks on the transaction.
func (tx *Transaction) ValidateBasic() error {
	if len(tx.Inputs) == 0 && len(tx.Outputs) == 0 {
		return errors.New("transaction has no inputs or outputs")
	}
	for i, in := range tx.Inputs {
		if in.Payload == nil {
			return fmt.Errorf("input %d has no payload", i)
		}
		if len(in.Keys) == 0 {
			return fmt.Errorf("input %d has no signing keys", i)
		}
	}
	for i, out := range tx.Outputs {
		if out.Payload == nil {
			return fmt.Errorf("output %d has no payload", i)
		}
	}
	return nil
}

// Hash is the transaction id: the sha256 of the wire encoding.
func (tx *Transaction) Hash() (TxID, error) {
	bz, err := json.Marshal(tx)
	if err != nil {
		return TxID{}, fmt.Errorf("encode transaction: %w", err)
	}
	return TxID(sha256.Sum256(bz)), nil
}
