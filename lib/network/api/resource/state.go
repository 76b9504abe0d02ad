package resource

import (
	"github.com/nvellon/hal"

	"oceandao.io/gov/lib/governance"
)

type State struct {
	s *governance.State
}

func NewState(s *governance.State) *State {
	return &State{
		s: s,
	}
}

func (s State) GetMap() hal.Entry {
	return hal.Entry{
		"contract_address": s.s.ContractAddress,
		"poll_count":       s.s.PollCount,
		"total_share":      s.s.TotalShare,
		"total_deposit":    s.s.TotalDeposit,
	}
}

func (s State) Resource() *hal.Resource {
	r := hal.NewResource(s, s.LinkSelf())
	r.AddLink("polls", hal.NewLink(URLPolls))
	return r
}

func (s State) LinkSelf() string {
	return URLState
}
