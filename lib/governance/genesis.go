package governance

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"oceandao.io/gov/lib/common"
)

// Genesis is the chain-parameter file consumed at first start; ratios and
// amounts are literals so the file stays hand-editable.
type Genesis struct {
	Owner            string `yaml:"owner"`
	ContractAddress  string `yaml:"contract_address"`
	Token            string `yaml:"token"`
	Quorum           string `yaml:"quorum"`
	Threshold        string `yaml:"threshold"`
	VotingPeriod     uint64 `yaml:"voting_period"`
	TimelockPeriod   uint64 `yaml:"timelock_period"`
	ExpirationPeriod uint64 `yaml:"expiration_period"`
	ProposalDeposit  string `yaml:"proposal_deposit"`
	SnapshotPeriod   uint64 `yaml:"snapshot_period"`
}

func LoadGenesis(path string) (*Genesis, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read genesis file %s", path)
	}

	genesis := &Genesis{}
	if err := yaml.Unmarshal(content, genesis); err != nil {
		return nil, errors.Wrapf(err, "failed to parse genesis file %s", path)
	}

	return genesis, nil
}

// Config converts the literal fields into a `Config` record.
func (g Genesis) Config() (config Config, err error) {
	config = Config{
		Owner:            g.Owner,
		Token:            g.Token,
		VotingPeriod:     g.VotingPeriod,
		TimelockPeriod:   g.TimelockPeriod,
		ExpirationPeriod: g.ExpirationPeriod,
		SnapshotPeriod:   g.SnapshotPeriod,
	}

	if config.Quorum, err = common.RatioFromString(g.Quorum); err != nil {
		return
	}
	if config.Threshold, err = common.RatioFromString(g.Threshold); err != nil {
		return
	}
	if len(g.ProposalDeposit) != 0 {
		if config.ProposalDeposit, err = common.AmountFromString(g.ProposalDeposit); err != nil {
			return
		}
	}

	return
}
