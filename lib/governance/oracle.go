package governance

import (
	"sync"

	"oceandao.io/gov/lib/common"
)

// BalanceSource is the narrow seam to the governance token's balance
// oracle; the tally and vote logic only ever see this interface so tests
// inject fakes.
type BalanceSource interface {
	Balance(address string) (common.Amount, error)
}

// StaticBalanceSource reports balances from an in-process table; the host
// updates it as tokens move in and out of custody.
type StaticBalanceSource struct {
	sync.RWMutex

	balances map[string]common.Amount
}

func NewStaticBalanceSource() *StaticBalanceSource {
	return &StaticBalanceSource{balances: map[string]common.Amount{}}
}

func (s *StaticBalanceSource) SetBalance(address string, amount common.Amount) {
	s.Lock()
	defer s.Unlock()

	s.balances[address] = amount
}

func (s *StaticBalanceSource) Balance(address string) (common.Amount, error) {
	s.RLock()
	defer s.RUnlock()

	return s.balances[address], nil
}
