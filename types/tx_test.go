package types_test

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/types"
)

func testMarketInfo(outcomes int) types.MarketInformation {
	titles := make([]string, outcomes)
	for i := range titles {
		titles[i] = "outcome"
	}
	return types.MarketInformation{
		Title:         "test market",
		OutcomeTitles: titles,
	}
}

func TestTransactionWireRoundTrip(t *testing.T) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)
	owner := types.NewPublicKey(priv.PubKey())

	tx := &types.Transaction{
		Inputs: []types.Input{
			{
				Payload: types.NewSellOrderInput{
					Owner:   owner,
					Market:  types.MarketOutPoint(types.TxID{9}),
					Outcome: 1,
					Price:   500,
					Sources: map[types.PublicKey]types.ContractAmount{owner: 3},
				},
				Keys: []*btcec.PrivateKey{priv},
			},
		},
		Outputs: []types.Output{
			{
				Payload: types.NewMarketOutput{
					ContractPrice:           1000,
					Outcomes:                2,
					PayoutControlWeights:    map[string]types.Weight{owner.XOnly(): 1},
					WeightRequiredForPayout: 1,
					Information:             testMarketInfo(2),
				},
			},
		},
	}
	require.NoError(t, tx.ValidateBasic())

	bz, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded types.Transaction
	require.NoError(t, json.Unmarshal(bz, &decoded))

	require.Len(t, decoded.Inputs, 1)
	require.Len(t, decoded.Outputs, 1)
	assert.Equal(t, tx.Inputs[0].Payload, decoded.Inputs[0].Payload)
	assert.Equal(t, tx.Outputs[0].Payload, decoded.Outputs[0].Payload)
	assert.Nil(t, decoded.Inputs[0].Keys, "signing keys must not travel over the wire")
}

func TestTransactionUnknownPayload(t *testing.T) {
	var in types.Input
	err := json.Unmarshal([]byte(`{"type":"mint_tokens","value":{}}`), &in)
	assert.Error(t, err)

	var out types.Output
	err = json.Unmarshal([]byte(`{"type":"mint_tokens","value":{}}`), &out)
	assert.Error(t, err)
}

func TestTransactionValidateBasic(t *testing.T) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)

	assert.Error(t, (&types.Transaction{}).ValidateBasic(), "empty transaction")

	missingKeys := &types.Transaction{
		Inputs: []types.Input{{Payload: types.CancelOrderInput{}}},
	}
	assert.Error(t, missingKeys.ValidateBasic())

	ok := &types.Transaction{
		Inputs: []types.Input{{
			Payload: types.CancelOrderInput{Order: types.NewPublicKey(priv.PubKey())},
			Keys:    []*btcec.PrivateKey{priv},
		}},
	}
	assert.NoError(t, ok.ValidateBasic())
}

func TestTransactionHash(t *testing.T) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)
	owner := types.NewPublicKey(priv.PubKey())

	tx := func(price types.Amount) *types.Transaction {
		return &types.Transaction{
			Outputs: []types.Output{{
				Payload: types.NewBuyOrderOutput{
					Owner:    owner,
					Market:   types.MarketOutPoint(types.TxID{1}),
					Price:    price,
					Quantity: 10,
				},
			}},
		}
	}

	h1, err := tx(100).Hash()
	require.NoError(t, err)
	h2, err := tx(100).Hash()
	require.NoError(t, err)
	h3, err := tx(200).Hash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "hash must be deterministic")
	assert.NotEqual(t, h1, h3, "different transactions must hash differently")
	assert.False(t, h1.IsZero())
}
