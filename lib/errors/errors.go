package errors

// Governance errors; every failed precondition of a poll lifecycle
// operation maps to exactly one of these.
var (
	ErrorUnauthorized                = NewError(100, "unauthorized")
	ErrorInsufficientProposalDeposit = NewError(101, "insufficient proposal deposit")
	ErrorPollNotFound                = NewError(102, "poll does not exist")
	ErrorPollNotInProgress           = NewError(103, "poll is not in progress")
	ErrorPollVotingPeriod            = NewError(104, "voting period is not over yet")
	ErrorPollNotPassed               = NewError(105, "poll is not in passed status")
	ErrorTimelockNotExpired          = NewError(106, "timelock period has not expired")
	ErrorAlreadyVoted                = NewError(107, "account already voted on this poll")
	ErrorInsufficientStaked          = NewError(108, "staked balance is too small to cast this vote")
	ErrorNoExecuteData               = NewError(109, "poll has no execute data")
	ErrorInvalidWithdrawAmount       = NewError(110, "withdraw amount exceeds unlocked staked balance")
	ErrorNothingStaked               = NewError(111, "nothing staked")
	ErrorInsufficientFunds           = NewError(112, "insufficient funds sent")
	ErrorAlreadyInstantiated         = NewError(113, "governance is already instantiated")
)

// Amount arithmetic errors; underflow and overflow are always propagated,
// never clamped.
var (
	ErrorMaximumBalanceReached = NewError(120, "amount exceeds the maximum balance")
	ErrorAmountUnderZero       = NewError(121, "amount would become negative")
	ErrorInvalidRatio          = NewError(122, "invalid ratio literal")
)

// storage errors
var (
	ErrorStorageRecordDoesNotExist  = NewError(130, "record does not exist in storage")
	ErrorStorageRecordAlreadyExists = NewError(131, "record already exists in storage")
	ErrorStorageCoreError           = NewError(132, "storage error")
	ErrorNotCommittable             = NewError(133, "storage is not in transaction")
)
