package resource

import (
	"github.com/nvellon/hal"

	"oceandao.io/gov/lib/governance"
)

type Config struct {
	c *governance.Config
}

func NewConfig(c *governance.Config) *Config {
	return &Config{
		c: c,
	}
}

func (c Config) GetMap() hal.Entry {
	return hal.Entry{
		"owner":             c.c.Owner,
		"token":             c.c.Token,
		"quorum":            c.c.Quorum,
		"threshold":         c.c.Threshold,
		"voting_period":     c.c.VotingPeriod,
		"timelock_period":   c.c.TimelockPeriod,
		"expiration_period": c.c.ExpirationPeriod,
		"proposal_deposit":  c.c.ProposalDeposit,
		"snapshot_period":   c.c.SnapshotPeriod,
	}
}

func (c Config) Resource() *hal.Resource {
	return hal.NewResource(c, c.LinkSelf())
}

func (c Config) LinkSelf() string {
	return URLConfig
}
