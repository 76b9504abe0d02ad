package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"oceandao.io/gov/lib/governance"
)

type Staker struct {
	tm *governance.TokenManager
}

func NewStaker(tm *governance.TokenManager) *Staker {
	return &Staker{
		tm: tm,
	}
}

func (s Staker) GetMap() hal.Entry {
	return hal.Entry{
		"address":        s.tm.Address,
		"share":          s.tm.Share,
		"locked_balance": s.tm.LockedBalance,
	}
}

func (s Staker) Resource() *hal.Resource {
	return hal.NewResource(s, s.LinkSelf())
}

func (s Staker) LinkSelf() string {
	return strings.Replace(URLStakers, "{address}", s.tm.Address, -1)
}
