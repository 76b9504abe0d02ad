package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/errors"
)

func TestControllerCreatePoll(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, _ := TestMakeGovernance(genesis)
	proposer := TestMakeAddress()

	pollID, err := TestCreatePoll(g, balances, genesis, proposer, common.Amount(1000), nil, 10)
	require.Nil(t, err)
	require.Equal(t, uint64(1), pollID)

	poll, err := GetPoll(g.Storage(), pollID)
	require.Nil(t, err)
	require.Equal(t, proposer, poll.Creator)
	require.Equal(t, PollStatusInProgress, poll.Status)
	require.Equal(t, uint64(10+genesis.VotingPeriod), poll.EndHeight)
	require.Equal(t, common.Amount(1000), poll.DepositAmount)

	state, err := GetState(g.Storage())
	require.Nil(t, err)
	require.Equal(t, uint64(1), state.PollCount)
	require.Equal(t, common.Amount(1000), state.TotalDeposit)

	// the new poll is in the InProgress bucket
	exists, err := g.Storage().Has(GetPollStatusIndexKey(PollStatusInProgress, pollID))
	require.Nil(t, err)
	require.True(t, exists)

	// ids are allocated sequentially
	pollID, err = TestCreatePoll(g, balances, genesis, proposer, common.Amount(1000), nil, 11)
	require.Nil(t, err)
	require.Equal(t, uint64(2), pollID)
}

func TestCreatePollInsufficientDeposit(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, _ := TestMakeGovernance(genesis)

	_, err := TestCreatePoll(g, balances, genesis, TestMakeAddress(), common.Amount(999), nil, 10)
	require.NotNil(t, err)

	e, ok := err.(*errors.Error)
	require.True(t, ok)
	require.Equal(t, errors.ErrorInsufficientProposalDeposit.Code, e.Code)
	require.Equal(t, common.Amount(1000), e.Data["required"])

	// nothing was written
	state, err := GetState(g.Storage())
	require.Nil(t, err)
	require.Equal(t, uint64(0), state.PollCount)
	require.Equal(t, common.Amount(0), state.TotalDeposit)
}

func TestCreatePollUnauthorizedCaller(t *testing.T) {
	genesis := TestMakeGenesis()
	g, _, _ := TestMakeGovernance(genesis)

	// only the registered token contract may drive the receive hook
	_, err := g.CreatePoll(TestMakeAddress(), TestMakeAddress(), common.Amount(1000), "t", "d", "", nil, 10)
	require.Equal(t, errors.ErrorUnauthorized, err)
}

func TestInstantiateOnce(t *testing.T) {
	genesis := TestMakeGenesis()
	g, _, _ := TestMakeGovernance(genesis)

	require.Equal(t, errors.ErrorAlreadyInstantiated, g.Instantiate(genesis))
}

func TestRegisterTokenOnce(t *testing.T) {
	genesis := TestMakeGenesis()
	genesis.Token = ""
	g, _, _ := TestMakeGovernance(genesis)

	token := TestMakeAddress()
	require.Nil(t, g.RegisterToken(token))

	config, err := GetConfig(g.Storage())
	require.Nil(t, err)
	require.Equal(t, token, config.Token)

	require.Equal(t, errors.ErrorUnauthorized, g.RegisterToken(TestMakeAddress()))
}

func TestUpdateConfig(t *testing.T) {
	genesis := TestMakeGenesis()
	g, _, _ := TestMakeGovernance(genesis)

	newQuorum := common.MustRatioFromString("0.6")
	err := g.UpdateConfig(TestMakeAddress(), ConfigUpdates{Quorum: &newQuorum})
	require.Equal(t, errors.ErrorUnauthorized, err)

	require.Nil(t, g.UpdateConfig(genesis.Owner, ConfigUpdates{Quorum: &newQuorum}))

	config, err := GetConfig(g.Storage())
	require.Nil(t, err)
	require.True(t, config.Quorum.Equal(newQuorum))
	// untouched fields keep their values
	require.True(t, config.Threshold.Equal(common.MustRatioFromString("0.5")))
}
