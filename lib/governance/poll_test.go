package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/errors"
	"oceandao.io/gov/lib/storage"
)

func TestPollSaveGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p := Poll{
		ID:            1,
		Creator:       TestMakeAddress(),
		Status:        PollStatusInProgress,
		EndHeight:     100,
		Title:         "showme",
		Description:   "killme",
		DepositAmount: common.Amount(1000),
	}
	require.Nil(t, p.Save(st))

	fetched, err := GetPoll(st, 1)
	require.Nil(t, err)
	require.Equal(t, p.Creator, fetched.Creator)
	require.Equal(t, PollStatusInProgress, fetched.Status)
	require.Nil(t, fetched.StakedAmount)
	require.Nil(t, fetched.TotalBalanceAtEndPoll)

	_, err = GetPoll(st, 2)
	require.Equal(t, errors.ErrorPollNotFound, err)
}

func TestPollStatusIndex(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	for i := uint64(1); i <= 5; i++ {
		p := Poll{ID: i, Status: PollStatusInProgress}
		require.Nil(t, p.Save(st))
		require.Nil(t, addPollStatusIndex(st, PollStatusInProgress, i))
	}

	require.Nil(t, movePollStatusIndex(st, PollStatusInProgress, PollStatusPassed, 3))

	var inProgress []uint64
	iterFunc, closeFunc := GetPollIDsByStatus(st, PollStatusInProgress, false)
	for {
		id, hasNext := iterFunc()
		if !hasNext {
			break
		}
		inProgress = append(inProgress, id)
	}
	closeFunc()
	require.Equal(t, []uint64{1, 2, 4, 5}, inProgress)

	var passed []uint64
	iterFunc, closeFunc = GetPollIDsByStatus(st, PollStatusPassed, false)
	for {
		id, hasNext := iterFunc()
		if !hasNext {
			break
		}
		passed = append(passed, id)
	}
	closeFunc()
	require.Equal(t, []uint64{3}, passed)

	// moving an id that is not in the source bucket must fail
	err := movePollStatusIndex(st, PollStatusInProgress, PollStatusPassed, 3)
	require.Equal(t, errors.ErrorStorageRecordDoesNotExist, err)
}

func TestPollVoterRecord(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	voter := TestMakeAddress()
	vi := VoterInfo{Vote: VoteOptionYes, Balance: common.Amount(70)}
	require.Nil(t, SavePollVoter(st, 1, voter, vi))

	// one VoterInfo per (poll, voter); a second insert is a double vote
	err := SavePollVoter(st, 1, voter, VoterInfo{Vote: VoteOptionNo, Balance: common.Amount(1)})
	require.Equal(t, errors.ErrorAlreadyVoted, err)

	// the same voter may vote on another poll
	require.Nil(t, SavePollVoter(st, 2, voter, vi))

	fetched, err := GetPollVoter(st, 1, voter)
	require.Nil(t, err)
	require.Equal(t, VoteOptionYes, fetched.Vote)
	require.Equal(t, common.Amount(70), fetched.Balance)
}
