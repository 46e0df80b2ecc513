package types

import (
	"strings"

	ui "github.com/holiman/uint256"
)

// Asset selects one side of the pool.
type Asset uint8

const (
	AssetX Asset = iota
	AssetY
)

func (a Asset) Other() Asset {
	if a == AssetX {
		return AssetY
	}
	return AssetX
}

func (a Asset) String() string {
	switch a {
	case AssetX:
		return "x"
	case AssetY:
		return "y"
	}
	return "unknown"
}

func ParseAsset(s string) (Asset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AssetX, nil
	case "y":
		return AssetY, nil
	}
	return 0, ErrInvalidAsset.Wrapf("%q", s)
}

// Principal identifies a caller (admin, midpoint manager, fee recipient).
type Principal string

// Reserves is the raw balance pair held by a pool, in minor units.
type Reserves struct {
	X *ui.Int
	Y *ui.Int
}

func NewReserves(x, y *ui.Int) Reserves {
	return Reserves{X: x.Clone(), Y: y.Clone()}
}

func (r Reserves) Clone() Reserves {
	return NewReserves(r.X, r.Y)
}

func (r Reserves) Get(a Asset) *ui.Int {
	if a == AssetX {
		return r.X
	}
	return r.Y
}

// With returns a copy with the balance of a replaced by v.
func (r Reserves) With(a Asset, v *ui.Int) Reserves {
	out := r.Clone()
	if a == AssetX {
		out.X = v.Clone()
	} else {
		out.Y = v.Clone()
	}
	return out
}
