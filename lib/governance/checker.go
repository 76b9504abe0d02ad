package governance

import (
	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/errors"
	"oceandao.io/gov/lib/storage"
)

// Precondition pipelines for the lifecycle operations. Checker funcs only
// read; all writes happen in the controller after the whole pipeline
// passed, inside one storage transaction.

var DefaultCreatePollCheckerFuncs = []common.CheckerFunc{
	CreatePollCheckReceiveAuth,
	CreatePollCheckDeposit,
}

var DefaultCastVoteCheckerFuncs = []common.CheckerFunc{
	CastVoteCheckPollID,
	CastVoteCheckPollInProgress,
	CastVoteCheckNotVoted,
	CastVoteCheckStakedBalance,
}

var DefaultEndPollCheckerFuncs = []common.CheckerFunc{
	EndPollCheckInProgress,
	EndPollCheckVotingClosed,
}

var DefaultExecutePollCheckerFuncs = []common.CheckerFunc{
	ExecutePollCheckPassed,
	ExecutePollCheckTimelock,
	ExecutePollCheckData,
}

type CreatePollChecker struct {
	common.DefaultChecker

	Config  Config
	Caller  string
	Deposit common.Amount
}

// CreatePollCheckReceiveAuth ensures the intent arrived through the
// registered token contract's receive hook.
func CreatePollCheckReceiveAuth(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CreatePollChecker)
	if checker.Caller != checker.Config.Token || len(checker.Config.Token) == 0 {
		err = errors.ErrorUnauthorized
		return
	}

	return
}

func CreatePollCheckDeposit(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CreatePollChecker)
	if checker.Deposit < checker.Config.ProposalDeposit {
		err = errors.ErrorInsufficientProposalDeposit.Clone().
			SetData("required", checker.Config.ProposalDeposit)
		return
	}

	return
}

type CastVoteChecker struct {
	common.DefaultChecker

	Storage  *storage.LevelDBBackend
	Balances BalanceSource
	Config   Config
	State    State
	Voter    string
	PollID   uint64
	Vote     VoteOption
	Amount   common.Amount
	Height   uint64

	// set by the pipeline
	Poll         Poll
	TotalBalance common.Amount
}

// CastVoteCheckPollID rejects ids outside [1, poll_count].
func CastVoteCheckPollID(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)
	if checker.PollID == 0 || checker.State.PollCount < checker.PollID {
		err = errors.ErrorPollNotFound
		return
	}

	return
}

// CastVoteCheckPollInProgress loads the poll and requires it to still be
// open at the current height.
func CastVoteCheckPollInProgress(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)
	if checker.Poll, err = GetPoll(checker.Storage, checker.PollID); err != nil {
		return
	}

	if checker.Poll.Status != PollStatusInProgress || checker.Height > checker.Poll.EndHeight {
		err = errors.ErrorPollNotInProgress
		return
	}

	return
}

func CastVoteCheckNotVoted(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)

	var voted bool
	if voted, err = ExistsPollVoter(checker.Storage, checker.PollID, checker.Voter); err != nil {
		return
	}
	if voted {
		err = errors.ErrorAlreadyVoted
		return
	}

	return
}

// CastVoteCheckStakedBalance converts the voter's shares to a balance
// against the custodied pool (oracle balance minus pending deposits) and
// requires it to cover the committed weight.
func CastVoteCheckStakedBalance(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CastVoteChecker)

	var custodied common.Amount
	if custodied, err = checker.Balances.Balance(checker.State.ContractAddress); err != nil {
		return
	}
	if checker.TotalBalance, err = custodied.Sub(checker.State.TotalDeposit); err != nil {
		return
	}

	var tm TokenManager
	if tm, err = GetTokenManager(checker.Storage, checker.Voter); err != nil {
		return
	}

	if tm.Share.MulRatio(checker.TotalBalance, checker.State.TotalShare) < checker.Amount {
		err = errors.ErrorInsufficientStaked
		return
	}

	return
}

type EndPollChecker struct {
	common.DefaultChecker

	Poll   Poll
	Height uint64
}

func EndPollCheckInProgress(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*EndPollChecker)
	if checker.Poll.Status != PollStatusInProgress {
		err = errors.ErrorPollNotInProgress
		return
	}

	return
}

func EndPollCheckVotingClosed(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*EndPollChecker)
	if checker.Poll.EndHeight > checker.Height {
		err = errors.ErrorPollVotingPeriod
		return
	}

	return
}

type ExecutePollChecker struct {
	common.DefaultChecker

	Config Config
	Poll   Poll
	Height uint64
}

func ExecutePollCheckPassed(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecutePollChecker)
	if checker.Poll.Status != PollStatusPassed {
		err = errors.ErrorPollNotPassed
		return
	}

	return
}

func ExecutePollCheckTimelock(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecutePollChecker)
	if checker.Poll.EndHeight+checker.Config.TimelockPeriod > checker.Height {
		err = errors.ErrorTimelockNotExpired
		return
	}

	return
}

// ExecutePollCheckData fails up front so a passed poll without actions
// never leaves the Passed status.
func ExecutePollCheckData(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*ExecutePollChecker)
	if len(checker.Poll.ExecuteData) == 0 {
		err = errors.ErrorNoExecuteData
		return
	}

	return
}
