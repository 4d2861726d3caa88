package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/types"
)

func TestParseSide(t *testing.T) {
	testCases := []struct {
		input     string
		want      types.Side
		expectErr bool
	}{
		{"buy", types.Buy, false},
		{"SELL", types.Sell, false},
		{" buy ", types.Buy, false},
		{"hold", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		got, err := types.ParseSide(tc.input)
		if tc.expectErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got)
	}
}

func TestSideJSON(t *testing.T) {
	bz, err := json.Marshal(types.Sell)
	require.NoError(t, err)
	assert.Equal(t, `"sell"`, string(bz))

	var s types.Side
	require.NoError(t, json.Unmarshal([]byte(`"buy"`), &s))
	assert.Equal(t, types.Buy, s)

	assert.Error(t, json.Unmarshal([]byte(`"short"`), &s))
}

func TestOrderNonZero(t *testing.T) {
	testCases := []struct {
		name  string
		order types.Order
		want  bool
	}{
		{"all zero", types.Order{}, false},
		{"waiting", types.Order{QuantityWaitingForMatch: 1}, true},
		{"contracts", types.Order{ContractOfOutcomeBalance: 7}, true},
		{"bitcoin", types.Order{BitcoinBalance: 1000}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.order.NonZero())
		})
	}
}

func TestOrderSlotValidateBasic(t *testing.T) {
	require.NoError(t, types.ReservedSlot().ValidateBasic())
	require.NoError(t, types.FilledSlot(&types.Order{}).ValidateBasic())

	assert.Error(t, (&types.OrderSlot{}).ValidateBasic())
	assert.Error(t, (&types.OrderSlot{Reserved: true, Order: &types.Order{}}).ValidateBasic())
}
