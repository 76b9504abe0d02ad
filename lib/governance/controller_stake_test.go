package governance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/errors"
)

func TestStakeTokens(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, _ := TestMakeGovernance(genesis)

	staker := TestMakeAddress()
	require.Nil(t, TestStake(g, balances, genesis, staker, common.Amount(100)))

	// the very first stake is priced one share per token
	tm, err := GetTokenManager(g.Storage(), staker)
	require.Nil(t, err)
	require.Equal(t, common.Amount(100), tm.Share)

	state, err := GetState(g.Storage())
	require.Nil(t, err)
	require.Equal(t, common.Amount(100), state.TotalShare)
}

func TestStakeTokensUnauthorized(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, _ := TestMakeGovernance(genesis)

	staker := TestMakeAddress()
	TestFundContract(balances, genesis.ContractAddress, common.Amount(100))

	err := g.StakeTokens(TestMakeAddress(), staker, common.Amount(100))
	require.Equal(t, errors.ErrorUnauthorized, err)
}

func TestStakeTokensZeroAmount(t *testing.T) {
	genesis := TestMakeGenesis()
	g, _, _ := TestMakeGovernance(genesis)

	err := g.StakeTokens(genesis.Token, TestMakeAddress(), common.Amount(0))
	require.Equal(t, errors.ErrorInsufficientFunds, err)
}

func TestStakeTokensSharePrice(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, _ := TestMakeGovernance(genesis)

	a := TestMakeAddress()
	b := TestMakeAddress()
	require.Nil(t, TestStake(g, balances, genesis, a, common.Amount(100)))

	// the pool doubles through an external reward, so the next staker pays
	// twice the price per share
	TestFundContract(balances, genesis.ContractAddress, common.Amount(100))
	require.Nil(t, TestStake(g, balances, genesis, b, common.Amount(100)))

	tm, err := GetTokenManager(g.Storage(), b)
	require.Nil(t, err)
	require.Equal(t, common.Amount(50), tm.Share)

	state, err := GetState(g.Storage())
	require.Nil(t, err)
	require.Equal(t, common.Amount(150), state.TotalShare)
}

func TestWithdrawTokensNothingStaked(t *testing.T) {
	genesis := TestMakeGenesis()
	g, _, _ := TestMakeGovernance(genesis)

	err := g.WithdrawTokens(TestMakeAddress(), nil)
	require.Equal(t, errors.ErrorNothingStaked, err)
}

func TestWithdrawTokensAll(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, dispatcher := TestMakeGovernance(genesis)

	staker := TestMakeAddress()
	require.Nil(t, TestStake(g, balances, genesis, staker, common.Amount(100)))

	require.Nil(t, g.WithdrawTokens(staker, nil))

	tm, err := GetTokenManager(g.Storage(), staker)
	require.Nil(t, err)
	require.Equal(t, common.Amount(0), tm.Share)

	state, err := GetState(g.Storage())
	require.Nil(t, err)
	require.Equal(t, common.Amount(0), state.TotalShare)

	require.Equal(t, 1, len(dispatcher.Messages))
	require.Equal(t, genesis.Token, dispatcher.Messages[0].Target)

	var payload map[string]map[string]interface{}
	require.Nil(t, json.Unmarshal(dispatcher.Messages[0].Payload, &payload))
	require.Equal(t, staker, payload["transfer"]["recipient"])
	require.Equal(t, "100", payload["transfer"]["amount"])
}

func TestWithdrawTokensOverBalance(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, _ := TestMakeGovernance(genesis)

	staker := TestMakeAddress()
	require.Nil(t, TestStake(g, balances, genesis, staker, common.Amount(100)))

	amount := common.Amount(101)
	err := g.WithdrawTokens(staker, &amount)
	require.Equal(t, errors.ErrorInvalidWithdrawAmount, err)

	// the failed attempt changes nothing
	tm, err := GetTokenManager(g.Storage(), staker)
	require.Nil(t, err)
	require.Equal(t, common.Amount(100), tm.Share)
}

func TestWithdrawTokensLockedByVote(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, dispatcher := TestMakeGovernance(genesis)

	staker := TestMakeAddress()
	require.Nil(t, TestStake(g, balances, genesis, staker, common.Amount(100)))

	pollID, err := TestCreatePoll(g, balances, genesis, TestMakeAddress(), common.Amount(1000), nil, 1)
	require.Nil(t, err)
	require.Nil(t, g.CastVote(staker, pollID, VoteOptionYes, common.Amount(60), 10))

	// 60 is locked in the open poll, so only 40 may leave explicitly
	amount := common.Amount(50)
	err = g.WithdrawTokens(staker, &amount)
	require.Equal(t, errors.ErrorInvalidWithdrawAmount, err)

	amount = common.Amount(40)
	require.Nil(t, g.WithdrawTokens(staker, &amount))

	require.Equal(t, 1, len(dispatcher.Messages))

	var payload map[string]map[string]interface{}
	require.Nil(t, json.Unmarshal(dispatcher.Messages[0].Payload, &payload))
	require.Equal(t, "40", payload["transfer"]["amount"])
}

func TestWithdrawTokensAfterPollDecided(t *testing.T) {
	genesis := TestMakeGenesis()
	g, balances, dispatcher := TestMakeGovernance(genesis)

	staker := TestMakeAddress()
	require.Nil(t, TestStake(g, balances, genesis, staker, common.Amount(100)))

	pollID, err := TestCreatePoll(g, balances, genesis, TestMakeAddress(), common.Amount(1000), nil, 1)
	require.Nil(t, err)
	require.Nil(t, g.CastVote(staker, pollID, VoteOptionYes, common.Amount(100), 10))

	outcome, err := g.EndPoll(pollID, 101)
	require.Nil(t, err)
	require.Equal(t, PollStatusPassed, outcome.Status)

	// the refund left custody; reflect it in the oracle
	balances.SetBalance(genesis.ContractAddress, common.Amount(100))

	// the decided poll no longer locks anything
	require.Nil(t, g.WithdrawTokens(staker, nil))

	tm, err := GetTokenManager(g.Storage(), staker)
	require.Nil(t, err)
	require.Equal(t, common.Amount(0), tm.Share)
	require.Equal(t, 0, len(tm.LockedBalance))

	// messages: the deposit refund, then the withdrawal payout
	require.Equal(t, 2, len(dispatcher.Messages))

	var payload map[string]map[string]interface{}
	require.Nil(t, json.Unmarshal(dispatcher.Messages[1].Payload, &payload))
	require.Equal(t, staker, payload["transfer"]["recipient"])
	require.Equal(t, "100", payload["transfer"]["amount"])
}
