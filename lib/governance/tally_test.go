package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/common"
)

func TestTallyPassed(t *testing.T) {
	quorum := common.MustRatioFromString("0.4")
	threshold := common.MustRatioFromString("0.5")

	// quorum 100/200 = 0.5 >= 0.4, yes ratio 70/100 = 0.7 > 0.5
	outcome := TallyPoll(common.Amount(70), common.Amount(30), common.Amount(200), quorum, threshold)
	require.Equal(t, PollStatusPassed, outcome.Status)
	require.True(t, outcome.RefundDeposit)
	require.Equal(t, common.Amount(100), outcome.TalliedWeight)
	require.Equal(t, "", outcome.RejectedReason)
	require.True(t, outcome.Quorum.Equal(common.NewRatio(1, 2)))
}

func TestTallyQuorumNotReached(t *testing.T) {
	quorum := common.MustRatioFromString("0.4")
	threshold := common.MustRatioFromString("0.5")

	// quorum 15/1000 = 0.015 < 0.4
	outcome := TallyPoll(common.Amount(10), common.Amount(5), common.Amount(1000), quorum, threshold)
	require.Equal(t, PollStatusRejected, outcome.Status)
	require.Equal(t, RejectedReasonQuorum, outcome.RejectedReason)
	require.False(t, outcome.RefundDeposit)
}

func TestTallyThresholdNotReached(t *testing.T) {
	quorum := common.MustRatioFromString("0.4")
	threshold := common.MustRatioFromString("0.5")

	// quorum reached, yes ratio exactly 0.5 is not strictly greater
	outcome := TallyPoll(common.Amount(50), common.Amount(50), common.Amount(200), quorum, threshold)
	require.Equal(t, PollStatusRejected, outcome.Status)
	require.Equal(t, RejectedReasonThreshold, outcome.RejectedReason)
	require.True(t, outcome.RefundDeposit)
}

func TestTallyNoVotes(t *testing.T) {
	quorum := common.ZeroRatio
	threshold := common.MustRatioFromString("0.5")

	// zero tallied weight is rejected even with a zero quorum requirement
	outcome := TallyPoll(common.Amount(0), common.Amount(0), common.Amount(1000), quorum, threshold)
	require.Equal(t, PollStatusRejected, outcome.Status)
	require.Equal(t, RejectedReasonQuorum, outcome.RejectedReason)
	require.False(t, outcome.RefundDeposit)
}

func TestTallyZeroReference(t *testing.T) {
	quorum := common.MustRatioFromString("0.4")
	threshold := common.MustRatioFromString("0.5")

	// zero reference weight forces a zero quorum ratio
	outcome := TallyPoll(common.Amount(10), common.Amount(0), common.Amount(0), quorum, threshold)
	require.Equal(t, PollStatusRejected, outcome.Status)
	require.Equal(t, RejectedReasonQuorum, outcome.RejectedReason)
	require.True(t, outcome.Quorum.IsZero())
}
