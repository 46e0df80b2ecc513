package pool

import (
	"strings"

	"github.com/ftchann/stableswap-simulator/lib/types"
)

type Status uint8

const (
	Uninitialized Status = iota
	Active
	Paused
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Paused:
		return "paused"
	}
	return "unknown"
}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(s) {
	case "active":
		return Active, nil
	case "paused":
		return Paused, nil
	}
	return 0, types.ErrInvalidPoolStatus.Wrapf("%q", s)
}
