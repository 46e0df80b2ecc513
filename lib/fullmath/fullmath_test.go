package fullmath

import (
	"errors"
	"fmt"
	"testing"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

func TestMulDivRoundingUp(t *testing.T) {
	tests := [][]uint64{
		{0, 500, 1000000, 0},
		{1, 500, 1000000, 1},
		{1000000, 1, 1000000, 1},
		{1000001, 1, 1000000, 2},
		{3, 3, 3, 3},
	}
	for _, arg := range tests {
		t.Run(fmt.Sprint(arg), func(t *testing.T) {
			result, err := MulDivRoundingUp(ui.NewInt(arg[0]), ui.NewInt(arg[1]), ui.NewInt(arg[2]))
			if err != nil {
				t.Fatal(err)
			}
			if ui.NewInt(arg[3]).Cmp(result) != 0 {
				t.Fatalf("want=%v result=%v", arg[3], result)
			}
		})
	}
}

func TestMulDiv(t *testing.T) {
	tests := [][]uint64{
		{0, 500, 1000000, 0},
		{1, 500, 1000000, 0},
		{1000001, 1, 1000000, 1},
		{10_750_000_000_000, 1_100_000, 1_000_000, 11_825_000_000_000},
	}
	for _, arg := range tests {
		t.Run(fmt.Sprint(arg), func(t *testing.T) {
			result, err := MulDiv(ui.NewInt(arg[0]), ui.NewInt(arg[1]), ui.NewInt(arg[2]))
			if err != nil {
				t.Fatal(err)
			}
			if ui.NewInt(arg[3]).Cmp(result) != 0 {
				t.Fatalf("want=%v result=%v", arg[3], result)
			}
		})
	}
}

func TestMulDivWideIntermediate(t *testing.T) {
	// (2^256-1) * 2 / 2 overflows 256 bits in the product only.
	result, err := MulDiv(cons.MaxUint256, cons.Two, cons.Two)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Eq(cons.MaxUint256) {
		t.Fatalf("want=%v result=%v", cons.MaxUint256, result)
	}
}

func TestMulDivErrors(t *testing.T) {
	if _, err := MulDiv(cons.One, cons.One, cons.Zero); !errors.Is(err, types.ErrDivisionByZero) {
		t.Fatalf("want division by zero, got %v", err)
	}
	if _, err := MulDiv(cons.MaxUint256, cons.Two, cons.One); !errors.Is(err, types.ErrArithmeticOverflow) {
		t.Fatalf("want overflow, got %v", err)
	}
	if _, err := MulDivRoundingUp(cons.MaxUint256, cons.Two, cons.Zero); !errors.Is(err, types.ErrDivisionByZero) {
		t.Fatalf("want division by zero, got %v", err)
	}
}

func TestCheckedOps(t *testing.T) {
	if _, err := Add(cons.MaxUint256, cons.One); !errors.Is(err, types.ErrArithmeticOverflow) {
		t.Fatalf("want overflow, got %v", err)
	}
	if _, err := Sub(cons.One, cons.Two); !errors.Is(err, types.ErrArithmeticOverflow) {
		t.Fatalf("want underflow, got %v", err)
	}
	if _, err := Mul(cons.MaxUint256, cons.Two); !errors.Is(err, types.ErrArithmeticOverflow) {
		t.Fatalf("want overflow, got %v", err)
	}
	if _, err := Div(cons.One, cons.Zero); !errors.Is(err, types.ErrDivisionByZero) {
		t.Fatalf("want division by zero, got %v", err)
	}

	q, err := DivRoundingUp(ui.NewInt(7), ui.NewInt(2))
	if err != nil || q.Uint64() != 4 {
		t.Fatalf("want=4 result=%v err=%v", q, err)
	}
	q, err = DivRoundingUp(ui.NewInt(8), ui.NewInt(2))
	if err != nil || q.Uint64() != 4 {
		t.Fatalf("want=4 result=%v err=%v", q, err)
	}
	if AbsDiff(ui.NewInt(3), ui.NewInt(10)).Uint64() != 7 || AbsDiff(ui.NewInt(10), ui.NewInt(3)).Uint64() != 7 {
		t.Fatal("absdiff")
	}
}
