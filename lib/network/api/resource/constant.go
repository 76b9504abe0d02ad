package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLPolls        = APIPrefix + APIVersionV1 + "/polls"
	URLPoll         = APIPrefix + APIVersionV1 + "/polls/{id}"
	URLPollsStatus  = APIPrefix + APIVersionV1 + "/polls/status/{status}"
	URLPollVoter    = APIPrefix + APIVersionV1 + "/polls/{id}/voters/{address}"
	URLPollVotes    = APIPrefix + APIVersionV1 + "/polls/{id}/votes"
	URLPollEnd      = APIPrefix + APIVersionV1 + "/polls/{id}/end"
	URLPollExecute  = APIPrefix + APIVersionV1 + "/polls/{id}/execute"
	URLConfig       = APIPrefix + APIVersionV1 + "/config"
	URLState        = APIPrefix + APIVersionV1 + "/state"
	URLStakers      = APIPrefix + APIVersionV1 + "/stakers/{address}"
	URLStake        = APIPrefix + APIVersionV1 + "/stake"
	URLWithdraw     = APIPrefix + APIVersionV1 + "/withdraw"
)
