package governance

import (
	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/errors"
	"oceandao.io/gov/lib/metrics"
	"oceandao.io/gov/lib/storage"
)

// Governance is the poll lifecycle controller. Every operation runs inside
// one storage transaction: all preconditions are checked first (via the
// checker pipelines), then every write is staged and committed at once, so
// a failed precondition or a failed write leaves no partial state.
type Governance struct {
	st         *storage.LevelDBBackend
	balances   BalanceSource
	dispatcher Dispatcher
}

func NewGovernance(st *storage.LevelDBBackend, balances BalanceSource, dispatcher Dispatcher) *Governance {
	return &Governance{
		st:         st,
		balances:   balances,
		dispatcher: dispatcher,
	}
}

func (g *Governance) Storage() *storage.LevelDBBackend {
	return g.st
}

// Instantiate persists the initial Config and a zeroed State; it runs
// exactly once per storage.
func (g *Governance) Instantiate(genesis Genesis) (err error) {
	var exists bool
	if exists, err = ExistsConfig(g.st); err != nil {
		return
	}
	if exists {
		return errors.ErrorAlreadyInstantiated
	}

	var config Config
	if config, err = genesis.Config(); err != nil {
		return
	}

	ts, err := g.st.OpenTransaction()
	if err != nil {
		return
	}

	state := State{ContractAddress: genesis.ContractAddress}
	if err = config.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = state.Save(ts); err != nil {
		ts.Discard()
		return
	}
	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	log.Info("instantiated", "owner", config.Owner, "contract", state.ContractAddress)

	return
}

// RegisterToken binds the governance token address; it may happen exactly
// once, any later attempt fails with Unauthorized.
func (g *Governance) RegisterToken(token string) (err error) {
	var config Config
	if config, err = GetConfig(g.st); err != nil {
		return
	}

	if len(config.Token) != 0 {
		return errors.ErrorUnauthorized
	}

	config.Token = token
	if err = config.Save(g.st); err != nil {
		return
	}

	log.Info("token registered", "token", token)

	return
}

// ConfigUpdates carries the admin-mutable Config fields; nil means keep.
type ConfigUpdates struct {
	Owner            *string
	Quorum           *common.Ratio
	Threshold        *common.Ratio
	VotingPeriod     *uint64
	TimelockPeriod   *uint64
	ExpirationPeriod *uint64
	ProposalDeposit  *common.Amount
	SnapshotPeriod   *uint64
}

func (g *Governance) UpdateConfig(sender string, updates ConfigUpdates) (err error) {
	var config Config
	if config, err = GetConfig(g.st); err != nil {
		return
	}

	if sender != config.Owner {
		return errors.ErrorUnauthorized
	}

	if updates.Owner != nil {
		config.Owner = *updates.Owner
	}
	if updates.Quorum != nil {
		config.Quorum = *updates.Quorum
	}
	if updates.Threshold != nil {
		config.Threshold = *updates.Threshold
	}
	if updates.VotingPeriod != nil {
		config.VotingPeriod = *updates.VotingPeriod
	}
	if updates.TimelockPeriod != nil {
		config.TimelockPeriod = *updates.TimelockPeriod
	}
	if updates.ExpirationPeriod != nil {
		config.ExpirationPeriod = *updates.ExpirationPeriod
	}
	if updates.ProposalDeposit != nil {
		config.ProposalDeposit = *updates.ProposalDeposit
	}
	if updates.SnapshotPeriod != nil {
		config.SnapshotPeriod = *updates.SnapshotPeriod
	}

	return config.Save(g.st)
}

// CreatePoll allocates the next poll id and persists a new InProgress poll.
// `caller` is the account the host attributed the deposit transfer to; it
// must be the registered token contract.
func (g *Governance) CreatePoll(
	caller string,
	proposer string,
	deposit common.Amount,
	title string,
	description string,
	link string,
	executeData []ExecuteData,
	height uint64,
) (pollID uint64, err error) {
	ts, err := g.st.OpenTransaction()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var config Config
	if config, err = GetConfig(ts); err != nil {
		return
	}

	checker := &CreatePollChecker{
		DefaultChecker: common.DefaultChecker{Funcs: DefaultCreatePollCheckerFuncs},
		Config:         config,
		Caller:         caller,
		Deposit:        deposit,
	}
	if err = common.RunChecker(checker, nil); err != nil {
		return
	}

	var state State
	if state, err = GetState(ts); err != nil {
		return
	}

	state.PollCount++
	pollID = state.PollCount
	if state.TotalDeposit, err = state.TotalDeposit.Add(deposit); err != nil {
		return
	}

	poll := Poll{
		ID:            pollID,
		Creator:       proposer,
		Status:        PollStatusInProgress,
		EndHeight:     height + config.VotingPeriod,
		Title:         title,
		Description:   description,
		Link:          link,
		ExecuteData:   executeData,
		DepositAmount: deposit,
	}

	if err = poll.Save(ts); err != nil {
		return
	}
	if err = addPollStatusIndex(ts, PollStatusInProgress, pollID); err != nil {
		return
	}
	if err = state.Save(ts); err != nil {
		return
	}
	if err = ts.Commit(); err != nil {
		return
	}

	metrics.Governance.AddPollsCreated(1)
	metrics.Governance.SetTotalDeposit(uint64(state.TotalDeposit))
	log.Info("create_poll", "creator", proposer, "poll_id", pollID, "end_height", poll.EndHeight)

	return
}

// CastVote commits `amount` of the voter's staked weight to the poll's Yes
// or No accumulator. The first qualifying vote inside the snapshot window
// freezes the quorum denominator.
func (g *Governance) CastVote(
	voter string,
	pollID uint64,
	vote VoteOption,
	amount common.Amount,
	height uint64,
) (err error) {
	ts, err := g.st.OpenTransaction()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var config Config
	if config, err = GetConfig(ts); err != nil {
		return
	}
	var state State
	if state, err = GetState(ts); err != nil {
		return
	}

	checker := &CastVoteChecker{
		DefaultChecker: common.DefaultChecker{Funcs: DefaultCastVoteCheckerFuncs},
		Storage:        ts,
		Balances:       g.balances,
		Config:         config,
		State:          state,
		Voter:          voter,
		PollID:         pollID,
		Vote:           vote,
		Amount:         amount,
		Height:         height,
	}
	if err = common.RunChecker(checker, nil); err != nil {
		return
	}

	poll := checker.Poll
	if vote == VoteOptionYes {
		if poll.YesVotes, err = poll.YesVotes.Add(amount); err != nil {
			return
		}
	} else {
		if poll.NoVotes, err = poll.NoVotes.Add(amount); err != nil {
			return
		}
	}

	voterInfo := VoterInfo{Vote: vote, Balance: amount}

	var tm TokenManager
	if tm, err = GetTokenManager(ts, voter); err != nil {
		return
	}
	tm.LockedBalance = append(tm.LockedBalance, LockedBalance{PollID: pollID, Vote: voterInfo})
	if err = tm.Save(ts); err != nil {
		return
	}

	if err = SavePollVoter(ts, pollID, voter, voterInfo); err != nil {
		return
	}

	// freeze the quorum denominator once the snapshot window is entered;
	// captured at most once, on the first qualifying vote
	if poll.EndHeight-height < config.SnapshotPeriod && poll.StakedAmount == nil {
		snapshot := checker.TotalBalance
		poll.StakedAmount = &snapshot
	}

	if err = poll.Save(ts); err != nil {
		return
	}
	if err = ts.Commit(); err != nil {
		return
	}

	metrics.Governance.AddVotesCast(1)
	log.Info("cast_vote", "poll_id", pollID, "voter", voter, "vote", vote, "amount", amount)

	return
}

// EndPoll tallies an InProgress poll whose voting period is over, moving it
// to Passed or Rejected. The deposit is refunded whenever quorum was
// reached; the global deposit counter is decremented unconditionally.
func (g *Governance) EndPoll(pollID uint64, height uint64) (outcome TallyOutcome, err error) {
	ts, err := g.st.OpenTransaction()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var poll Poll
	if poll, err = GetPoll(ts, pollID); err != nil {
		return
	}

	checker := &EndPollChecker{
		DefaultChecker: common.DefaultChecker{Funcs: DefaultEndPollCheckerFuncs},
		Poll:           poll,
		Height:         height,
	}
	if err = common.RunChecker(checker, nil); err != nil {
		return
	}

	var config Config
	if config, err = GetConfig(ts); err != nil {
		return
	}
	var state State
	if state, err = GetState(ts); err != nil {
		return
	}

	var staked common.Amount
	if staked, err = g.referenceWeight(&poll, state); err != nil {
		return
	}

	outcome = TallyPoll(poll.YesVotes, poll.NoVotes, staked, config.Quorum, config.Threshold)

	// "deposits pending resolution", decremented whether or not refunded
	if state.TotalDeposit, err = state.TotalDeposit.Sub(poll.DepositAmount); err != nil {
		return
	}
	if err = state.Save(ts); err != nil {
		return
	}

	if err = movePollStatusIndex(ts, PollStatusInProgress, outcome.Status, pollID); err != nil {
		return
	}

	poll.Status = outcome.Status
	poll.RejectedReason = outcome.RejectedReason
	poll.TotalBalanceAtEndPoll = &outcome.StakedWeight
	if err = poll.Save(ts); err != nil {
		return
	}
	if err = ts.Commit(); err != nil {
		return
	}

	if outcome.RefundDeposit && !poll.DepositAmount.IsZero() {
		err = g.dispatcher.Dispatch(Message{
			Target:  config.Token,
			Payload: NewTransferPayload(poll.Creator, poll.DepositAmount),
		})
		if err != nil {
			return
		}
	}

	if outcome.Status == PollStatusPassed {
		metrics.Governance.AddPollsPassed(1)
	} else {
		metrics.Governance.AddPollsRejected(1)
	}
	metrics.Governance.SetTotalDeposit(uint64(state.TotalDeposit))
	log.Info("end_poll",
		"poll_id", pollID,
		"passed", outcome.Status == PollStatusPassed,
		"rejected_reason", outcome.RejectedReason,
		"quorum", outcome.Quorum,
	)

	return
}

// referenceWeight resolves the quorum denominator: zero when nothing is
// staked globally, the poll's snapshot when one was taken, otherwise the
// live convertible balance.
func (g *Governance) referenceWeight(poll *Poll, state State) (common.Amount, error) {
	if state.TotalShare.IsZero() {
		return common.Amount(0), nil
	}

	if poll.StakedAmount != nil {
		return *poll.StakedAmount, nil
	}

	custodied, err := g.balances.Balance(state.ContractAddress)
	if err != nil {
		return common.Amount(0), err
	}

	return custodied.Sub(state.TotalDeposit)
}

// ExecutePoll moves a Passed poll past its timelock into Executed and emits
// its actions in ascending `order`.
func (g *Governance) ExecutePoll(pollID uint64, height uint64) (err error) {
	ts, err := g.st.OpenTransaction()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var config Config
	if config, err = GetConfig(ts); err != nil {
		return
	}
	var poll Poll
	if poll, err = GetPoll(ts, pollID); err != nil {
		return
	}

	checker := &ExecutePollChecker{
		DefaultChecker: common.DefaultChecker{Funcs: DefaultExecutePollCheckerFuncs},
		Config:         config,
		Poll:           poll,
		Height:         height,
	}
	if err = common.RunChecker(checker, nil); err != nil {
		return
	}

	if err = movePollStatusIndex(ts, PollStatusPassed, PollStatusExecuted, pollID); err != nil {
		return
	}

	poll.Status = PollStatusExecuted
	if err = poll.Save(ts); err != nil {
		return
	}
	if err = ts.Commit(); err != nil {
		return
	}

	for _, data := range sortedExecuteData(poll.ExecuteData) {
		err = g.dispatcher.Dispatch(Message{
			Target:  data.Contract,
			Payload: data.Msg,
		})
		if err != nil {
			return
		}
	}

	metrics.Governance.AddPollsExecuted(1)
	log.Info("execute_poll", "poll_id", pollID, "messages", len(poll.ExecuteData))

	return
}

// StakeTokens issues shares for a token deposit attributed to `staker`.
// `caller` must be the registered token contract. The incoming amount is
// already part of the oracle balance, so the share price excludes it.
func (g *Governance) StakeTokens(caller, staker string, amount common.Amount) (err error) {
	ts, err := g.st.OpenTransaction()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var config Config
	if config, err = GetConfig(ts); err != nil {
		return
	}
	if caller != config.Token || len(config.Token) == 0 {
		err = errors.ErrorUnauthorized
		return
	}
	if amount.IsZero() {
		err = errors.ErrorInsufficientFunds
		return
	}

	var state State
	if state, err = GetState(ts); err != nil {
		return
	}

	var custodied common.Amount
	if custodied, err = g.balances.Balance(state.ContractAddress); err != nil {
		return
	}
	var pool common.Amount
	if pool, err = custodied.Sub(state.TotalDeposit); err != nil {
		return
	}
	if pool, err = pool.Sub(amount); err != nil {
		return
	}

	var share common.Amount
	if state.TotalShare.IsZero() || pool.IsZero() {
		share = amount
	} else {
		share = amount.MulRatio(state.TotalShare, pool)
	}

	var tm TokenManager
	if tm, err = GetTokenManager(ts, staker); err != nil {
		return
	}
	if tm.Share, err = tm.Share.Add(share); err != nil {
		return
	}
	if state.TotalShare, err = state.TotalShare.Add(share); err != nil {
		return
	}

	if err = tm.Save(ts); err != nil {
		return
	}
	if err = state.Save(ts); err != nil {
		return
	}
	if err = ts.Commit(); err != nil {
		return
	}

	metrics.Governance.SetTotalShare(uint64(state.TotalShare))
	log.Info("stake_tokens", "staker", staker, "amount", amount, "share", share)

	return
}

// WithdrawTokens converts shares back to tokens and pays them out, never
// touching weight still locked in an InProgress poll. A nil amount
// withdraws everything unlocked. Ledger entries of decided polls are
// released while scanning.
func (g *Governance) WithdrawTokens(staker string, amount *common.Amount) (err error) {
	ts, err := g.st.OpenTransaction()
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	var exists bool
	if exists, err = ExistsTokenManager(ts, staker); err != nil {
		return
	}
	if !exists {
		err = errors.ErrorNothingStaked
		return
	}

	var config Config
	if config, err = GetConfig(ts); err != nil {
		return
	}
	var state State
	if state, err = GetState(ts); err != nil {
		return
	}
	var tm TokenManager
	if tm, err = GetTokenManager(ts, staker); err != nil {
		return
	}

	var custodied common.Amount
	if custodied, err = g.balances.Balance(state.ContractAddress); err != nil {
		return
	}
	var pool common.Amount
	if pool, err = custodied.Sub(state.TotalDeposit); err != nil {
		return
	}

	var locked common.Amount
	if locked, err = releaseDecidedLocks(ts, &tm); err != nil {
		return
	}

	lockedShare := locked.MulRatio(state.TotalShare, pool)

	var withdrawShare common.Amount
	var withdrawAmount common.Amount
	if amount != nil {
		withdrawAmount = *amount
		withdrawShare = withdrawAmount.MulRatio(state.TotalShare, pool)
	} else {
		if withdrawShare, err = tm.Share.Sub(lockedShare); err != nil {
			return
		}
		withdrawAmount = withdrawShare.MulRatio(pool, state.TotalShare)
	}

	var needed common.Amount
	if needed, err = lockedShare.Add(withdrawShare); err != nil {
		return
	}
	if needed > tm.Share {
		err = errors.ErrorInvalidWithdrawAmount
		return
	}

	if tm.Share, err = tm.Share.Sub(withdrawShare); err != nil {
		return
	}
	if state.TotalShare, err = state.TotalShare.Sub(withdrawShare); err != nil {
		return
	}

	if err = tm.Save(ts); err != nil {
		return
	}
	if err = state.Save(ts); err != nil {
		return
	}
	if err = ts.Commit(); err != nil {
		return
	}

	if !withdrawAmount.IsZero() {
		err = g.dispatcher.Dispatch(Message{
			Target:  config.Token,
			Payload: NewTransferPayload(staker, withdrawAmount),
		})
		if err != nil {
			return
		}
	}

	metrics.Governance.SetTotalShare(uint64(state.TotalShare))
	log.Info("withdraw_tokens", "staker", staker, "amount", withdrawAmount, "share", withdrawShare)

	return
}

// releaseDecidedLocks drops locked-balance entries whose poll is decided
// and returns the largest weight still locked by an InProgress poll.
func releaseDecidedLocks(st *storage.LevelDBBackend, tm *TokenManager) (locked common.Amount, err error) {
	var kept []LockedBalance
	for _, lb := range tm.LockedBalance {
		var poll Poll
		if poll, err = GetPoll(st, lb.PollID); err != nil {
			return
		}
		if poll.Status != PollStatusInProgress {
			continue
		}

		kept = append(kept, lb)
		if lb.Vote.Balance > locked {
			locked = lb.Vote.Balance
		}
	}

	tm.LockedBalance = kept
	return
}
