package transaction

import (
	"strings"
	"testing"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/types"

	"github.com/stretchr/testify/require"
)

const records = `[
  {"type": "swap-x-for-y", "id": "a", "timestamp": 1, "amount": "1000000", "limit": "900000"},
  {"type": "add-liquidity", "id": "b", "timestamp": 1, "amountX": "5000000"},
  {"type": "withdraw-liquidity", "id": "c", "timestamp": 2, "amount": "42"},
  {"type": "withdraw-imbalanced-liquidity", "id": "d", "timestamp": 3, "amountY": "7"}
]`

func TestDecode(t *testing.T) {
	txs, err := Decode(strings.NewReader(records))
	require.NoError(t, err)
	require.Len(t, txs, 4)

	require.Equal(t, SwapXForY, txs[0].Type)
	require.Equal(t, uint64(1_000_000), txs[0].Amount.Uint64())
	require.Equal(t, uint64(900_000), txs[0].Limit.Uint64())

	require.True(t, txs[1].AmountY.IsZero())
	require.True(t, txs[1].Limit.IsZero())

	require.True(t, txs[3].Limit.Eq(cons.MaxUint256))
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"unknown type":   `[{"type": "flash", "id": "a", "amount": "1"}]`,
		"bad amount":     `[{"type": "swap-y-for-x", "id": "a", "amount": "1.5"}]`,
		"no amount":      `[{"type": "swap-y-for-x", "id": "a"}]`,
		"empty deposit":  `[{"type": "add-liquidity", "id": "a", "amountX": "0"}]`,
		"out of order":   `[{"type": "swap-y-for-x", "id": "a", "timestamp": 2, "amount": "1"}, {"type": "swap-y-for-x", "id": "b", "timestamp": 1, "amount": "1"}]`,
		"not an array":   `{"type": "swap-y-for-x"}`,
		"negative limit": `[{"type": "swap-y-for-x", "id": "a", "amount": "1", "limit": "-1"}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(body))
			require.ErrorIs(t, err, types.ErrInvalidTransaction)
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	txs, err := Decode(strings.NewReader(records))
	require.NoError(t, err)

	out, err := json.Marshal(txs)
	require.NoError(t, err)
	again, err := Decode(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Equal(t, txs, again)

	b, err := json.Marshal(txs[3])
	require.NoError(t, err)
	require.NotContains(t, string(b), "limit")

	_, err = Transaction{Type: "flash"}.MarshalJSON()
	require.ErrorIs(t, err, types.ErrInvalidTransaction)
}
