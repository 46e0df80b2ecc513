package strategy

import (
	"github.com/ftchann/stableswap-simulator/lib/pool"

	ui "github.com/holiman/uint256"
)

// NoProvisionStrategy holds its funds. It is the baseline the other
// strategies are compared to.
type NoProvisionStrategy struct {
	provision
}

func NewNoProvisionStrategy(amountX, amountY *ui.Int, p *pool.Pool) *NoProvisionStrategy {
	return &NoProvisionStrategy{provision: newProvision(amountX, amountY, p)}
}

func (s *NoProvisionStrategy) Name() string {
	return NoProvision
}

func (s *NoProvisionStrategy) Init() (amountX, amountY *ui.Int, err error) {
	amountX, amountY = s.idle()
	return amountX, amountY, nil
}

func (s *NoProvisionStrategy) Rebalance() (amountX, amountY *ui.Int, err error) {
	amountX, amountY = s.idle()
	return amountX, amountY, nil
}
