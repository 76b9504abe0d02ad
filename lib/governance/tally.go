package governance

import (
	"oceandao.io/gov/lib/common"
)

const (
	RejectedReasonQuorum    = "Quorum not reached"
	RejectedReasonThreshold = "Threshold not reached"
)

// TallyOutcome is the decision of an ended poll. `RefundDeposit` is true
// whenever quorum was reached, i.e. on Passed and on a threshold rejection,
// never on a quorum rejection.
type TallyOutcome struct {
	TalliedWeight  common.Amount
	StakedWeight   common.Amount
	Quorum         common.Ratio
	Status         PollStatus
	RejectedReason string
	RefundDeposit  bool
}

// TallyPoll decides a poll from its vote accumulators, the reference staked
// weight and the configured quorum/threshold ratios. Pure; callers resolve
// the reference weight (snapshot or live balance) beforehand.
func TallyPoll(yes, no, staked common.Amount, quorum, threshold common.Ratio) TallyOutcome {
	tallied := yes.MustAdd(no)

	outcome := TallyOutcome{
		TalliedWeight: tallied,
		StakedWeight:  staked,
		Quorum:        common.RatioFromAmounts(tallied, staked),
		Status:        PollStatusRejected,
	}

	if tallied.IsZero() || outcome.Quorum.Less(quorum) {
		outcome.RejectedReason = RejectedReasonQuorum
		return outcome
	}

	outcome.RefundDeposit = true
	if common.RatioFromAmounts(yes, tallied).Greater(threshold) {
		outcome.Status = PollStatusPassed
	} else {
		outcome.RejectedReason = RejectedReasonThreshold
	}

	return outcome
}
