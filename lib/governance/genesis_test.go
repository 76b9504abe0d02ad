package governance

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/common"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "gov-genesis")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	content := `
owner: GOWNER
contract_address: GCONTRACT
token: GTOKEN
quorum: "0.34"
threshold: "0.5"
voting_period: 1000
timelock_period: 500
expiration_period: 20000
proposal_deposit: "512"
snapshot_period: 10
`
	path := filepath.Join(dir, "genesis.yml")
	require.Nil(t, ioutil.WriteFile(path, []byte(content), 0644))

	genesis, err := LoadGenesis(path)
	require.Nil(t, err)
	require.Equal(t, "GOWNER", genesis.Owner)
	require.Equal(t, uint64(1000), genesis.VotingPeriod)

	config, err := genesis.Config()
	require.Nil(t, err)
	require.Equal(t, "GTOKEN", config.Token)
	require.Equal(t, common.MustRatioFromString("0.34"), config.Quorum)
	require.Equal(t, common.Amount(512), config.ProposalDeposit)
	require.Equal(t, uint64(500), config.TimelockPeriod)
	require.Equal(t, uint64(10), config.SnapshotPeriod)
}

func TestLoadGenesisMissingFile(t *testing.T) {
	_, err := LoadGenesis("/does/not/exist.yml")
	require.NotNil(t, err)
}

func TestGenesisConfigInvalidRatio(t *testing.T) {
	genesis := TestMakeGenesis()
	genesis.Quorum = "not-a-ratio"

	_, err := genesis.Config()
	require.NotNil(t, err)
}
