package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"oceandao.io/gov/lib/governance"
)

type Voter struct {
	pollID  uint64
	address string
	vi      governance.VoterInfo
}

func NewVoter(pollID uint64, address string, vi governance.VoterInfo) *Voter {
	return &Voter{
		pollID:  pollID,
		address: address,
		vi:      vi,
	}
}

func (v Voter) GetMap() hal.Entry {
	return hal.Entry{
		"poll_id": v.pollID,
		"address": v.address,
		"vote":    v.vi.Vote,
		"balance": v.vi.Balance,
	}
}

func (v Voter) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("poll", hal.NewLink(strings.Replace(URLPoll, "{id}", strconv.FormatUint(v.pollID, 10), -1)))
	return r
}

func (v Voter) LinkSelf() string {
	link := strings.Replace(URLPollVoter, "{id}", strconv.FormatUint(v.pollID, 10), -1)
	return strings.Replace(link, "{address}", v.address, -1)
}
