package midpoint

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	"pgregory.net/rapid"
)

func TestRateAdjusted(t *testing.T) {
	tests := []struct {
		midpoint Midpoint
		raw      uint64
		adjusted uint64
		back     uint64
	}{
		{Midpoint{1_100_000, 1_000_000, false}, 1_000_000, 1_100_000, 1_000_000},
		{Midpoint{1_000_000, 1_100_000, true}, 1_000_000, 1_100_000, 1_000_000},
		{Midpoint{1_000_000, 1_100_000, false}, 1_000_000, 909_090, 999_999},
		{Midpoint{1_100_000, 1_000_000, true}, 1_000_000, 909_090, 999_999},
		{Parity, 123_456, 123_456, 123_456},
		{Midpoint{3, 1, false}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.midpoint, tt.raw), func(t *testing.T) {
			adjusted, err := tt.midpoint.ToRateAdjusted(ui.NewInt(tt.raw))
			if err != nil {
				t.Fatal(err)
			}
			if adjusted.Uint64() != tt.adjusted {
				t.Fatalf("want=%v result=%v", tt.adjusted, adjusted)
			}
			back, err := tt.midpoint.FromRateAdjusted(adjusted)
			if err != nil {
				t.Fatal(err)
			}
			if back.Uint64() != tt.back {
				t.Fatalf("want=%v result=%v", tt.back, back)
			}
		})
	}
}

func TestInvalidMidpoint(t *testing.T) {
	for _, m := range []Midpoint{{0, 1, false}, {1, 0, true}, {0, 0, false}} {
		if _, err := New(m.Numerator, m.Denominator, m.Reversed); !errors.Is(err, types.ErrInvalidMidpoint) {
			t.Fatalf("%v: want invalid midpoint, got %v", m, err)
		}
	}
	if _, err := New(1_100_000, 1_000_000, false); err != nil {
		t.Fatal(err)
	}
}

// Converting into X units and back never hands out more Y than went in.
func TestRoundTripNeverInflates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := Midpoint{
			Numerator:   rapid.Uint64Range(1, 10_000_000).Draw(t, "numerator"),
			Denominator: rapid.Uint64Range(1, 10_000_000).Draw(t, "denominator"),
			Reversed:    rapid.Bool().Draw(t, "reversed"),
		}
		raw := ui.NewInt(rapid.Uint64Range(0, 1e16).Draw(t, "raw"))
		adjusted, err := m.ToRateAdjusted(raw)
		if err != nil {
			t.Fatal(err)
		}
		back, err := m.FromRateAdjusted(adjusted)
		if err != nil {
			t.Fatal(err)
		}
		if back.Gt(raw) {
			t.Fatalf("round trip inflated %v to %v", raw, back)
		}
	})
}
