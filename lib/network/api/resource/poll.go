package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"oceandao.io/gov/lib/governance"
)

type Poll struct {
	p *governance.Poll
}

func NewPoll(p *governance.Poll) *Poll {
	return &Poll{
		p: p,
	}
}

func (p Poll) GetMap() hal.Entry {
	entry := hal.Entry{
		"id":             p.p.ID,
		"creator":        p.p.Creator,
		"status":         p.p.Status,
		"yes_votes":      p.p.YesVotes,
		"no_votes":       p.p.NoVotes,
		"end_height":     p.p.EndHeight,
		"title":          p.p.Title,
		"description":    p.p.Description,
		"deposit_amount": p.p.DepositAmount,
	}
	if len(p.p.Link) != 0 {
		entry["link"] = p.p.Link
	}
	if len(p.p.ExecuteData) != 0 {
		entry["execute_data"] = p.p.ExecuteData
	}
	if p.p.StakedAmount != nil {
		entry["staked_amount"] = *p.p.StakedAmount
	}
	if p.p.TotalBalanceAtEndPoll != nil {
		entry["total_balance_at_end_poll"] = *p.p.TotalBalanceAtEndPoll
	}
	if len(p.p.RejectedReason) != 0 {
		entry["rejected_reason"] = p.p.RejectedReason
	}
	return entry
}

func (p Poll) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("voters", hal.NewLink(p.LinkSelf()+"/voters/{address}", hal.LinkAttr{"templated": true}))
	return r
}

func (p Poll) LinkSelf() string {
	id := strconv.FormatUint(p.p.ID, 10)
	return strings.Replace(URLPoll, "{id}", id, -1)
}
