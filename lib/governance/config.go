package governance

import (
	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/storage"
)

// Config is the chain-parameter singleton. `Owner` may rotate it via
// `UpdateConfig`; `Token` is bound exactly once via `RegisterToken`.
//
// models
//  * 'config'
// 	- 'gc-config': `Config`

const ConfigKey = "gc-config"

type Config struct {
	Owner            string        `json:"owner"`
	Token            string        `json:"token"`
	Quorum           common.Ratio  `json:"quorum"`
	Threshold        common.Ratio  `json:"threshold"`
	VotingPeriod     uint64        `json:"voting_period"`
	TimelockPeriod   uint64        `json:"timelock_period"`
	ExpirationPeriod uint64        `json:"expiration_period"`
	ProposalDeposit  common.Amount `json:"proposal_deposit"`
	SnapshotPeriod   uint64        `json:"snapshot_period"`
}

func (c *Config) String() string {
	return string(common.MustJSONMarshal(c))
}

func (c *Config) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	if exists, err = st.Has(ConfigKey); err != nil {
		return
	}

	if exists {
		err = st.Set(ConfigKey, c)
	} else {
		err = st.New(ConfigKey, c)
	}

	return
}

func ExistsConfig(st *storage.LevelDBBackend) (bool, error) {
	return st.Has(ConfigKey)
}

func GetConfig(st *storage.LevelDBBackend) (c Config, err error) {
	err = st.Get(ConfigKey, &c)
	return
}
