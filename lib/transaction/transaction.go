package transaction

import (
	"io"
	"os"
	"strings"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Type string

const (
	SwapXForY                   Type = "swap-x-for-y"
	SwapYForX                   Type = "swap-y-for-x"
	AddLiquidity                Type = "add-liquidity"
	WithdrawLiquidity           Type = "withdraw-liquidity"
	WithdrawImbalancedLiquidity Type = "withdraw-imbalanced-liquidity"
)

func (t Type) Valid() bool {
	switch t {
	case SwapXForY, SwapYForX, AddLiquidity, WithdrawLiquidity, WithdrawImbalancedLiquidity:
		return true
	}
	return false
}

// TransactionInput is the on-disk record. Amounts are decimal strings in
// minor units.
//
//	swap-*                         amount in, limit = minimum out
//	add-liquidity                  amountX, amountY, limit = minimum LP
//	withdraw-liquidity             amount = LP, amountX/amountY = minimum out
//	withdraw-imbalanced-liquidity  amountX, amountY, limit = maximum LP
type TransactionInput struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Timestamp int    `json:"timestamp"`
	Amount    string `json:"amount,omitempty"`
	AmountX   string `json:"amountX,omitempty"`
	AmountY   string `json:"amountY,omitempty"`
	Limit     string `json:"limit,omitempty"`
}

type Transaction struct {
	Type      Type
	ID        string
	Timestamp int
	Amount    *ui.Int
	AmountX   *ui.Int
	AmountY   *ui.Int
	Limit     *ui.Int
}

// Parse converts a record. A missing limit means no limit: zero for
// minimums, the largest amount for withdraw-imbalanced-liquidity.
func Parse(in TransactionInput) (Transaction, error) {
	t := Transaction{Type: Type(in.Type), ID: in.ID, Timestamp: in.Timestamp}
	var err error
	if t.Amount, err = amount(in.ID, "amount", in.Amount); err != nil {
		return Transaction{}, err
	}
	if t.AmountX, err = amount(in.ID, "amountX", in.AmountX); err != nil {
		return Transaction{}, err
	}
	if t.AmountY, err = amount(in.ID, "amountY", in.AmountY); err != nil {
		return Transaction{}, err
	}
	if strings.TrimSpace(in.Limit) == "" && t.Type == WithdrawImbalancedLiquidity {
		t.Limit = cons.MaxUint256.Clone()
	} else if t.Limit, err = amount(in.ID, "limit", in.Limit); err != nil {
		return Transaction{}, err
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func amount(id, field, s string) (*ui.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(ui.Int), nil
	}
	v, err := ui.FromDecimal(s)
	if err != nil {
		return nil, types.ErrInvalidTransaction.Wrapf("%s: %s %q: %s", id, field, s, err)
	}
	return v, nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return types.ErrInvalidTransaction.Wrapf("%s: unknown type %q", t.ID, t.Type)
	}
	if t.Timestamp < 0 {
		return types.ErrInvalidTransaction.Wrapf("%s: negative timestamp", t.ID)
	}
	switch t.Type {
	case SwapXForY, SwapYForX, WithdrawLiquidity:
		if t.Amount.IsZero() {
			return types.ErrInvalidTransaction.Wrapf("%s: %s needs an amount", t.ID, t.Type)
		}
	case AddLiquidity, WithdrawImbalancedLiquidity:
		if t.AmountX.IsZero() && t.AmountY.IsZero() {
			return types.ErrInvalidTransaction.Wrapf("%s: %s needs amountX or amountY", t.ID, t.Type)
		}
	}
	return nil
}

// Decode reads a JSON array of records. Timestamps must not decrease.
func Decode(r io.Reader) ([]Transaction, error) {
	var inputs []TransactionInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, types.ErrInvalidTransaction.Wrapf("decode: %s", err)
	}
	transactions := make([]Transaction, 0, len(inputs))
	for i, in := range inputs {
		t, err := Parse(in)
		if err != nil {
			return nil, err
		}
		if i > 0 && t.Timestamp < transactions[i-1].Timestamp {
			return nil, types.ErrInvalidTransaction.Wrapf("%s: timestamp %d before %d", t.ID, t.Timestamp, transactions[i-1].Timestamp)
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func Load(path string) ([]Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}

func (t Transaction) Input() TransactionInput {
	in := TransactionInput{
		Type:      string(t.Type),
		ID:        t.ID,
		Timestamp: t.Timestamp,
	}
	switch t.Type {
	case SwapXForY, SwapYForX:
		in.Amount = t.Amount.Dec()
		in.Limit = t.Limit.Dec()
	case AddLiquidity:
		in.AmountX, in.AmountY = t.AmountX.Dec(), t.AmountY.Dec()
		in.Limit = t.Limit.Dec()
	case WithdrawLiquidity:
		in.Amount = t.Amount.Dec()
		in.AmountX, in.AmountY = t.AmountX.Dec(), t.AmountY.Dec()
	case WithdrawImbalancedLiquidity:
		in.AmountX, in.AmountY = t.AmountX.Dec(), t.AmountY.Dec()
		if !t.Limit.Eq(cons.MaxUint256) {
			in.Limit = t.Limit.Dec()
		}
	}
	return in
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	if !t.Type.Valid() {
		return nil, types.ErrInvalidTransaction.Wrapf("%s: unknown type %q", t.ID, t.Type)
	}
	return json.Marshal(t.Input())
}
