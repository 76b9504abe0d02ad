package httputils

import (
	"net/http"

	"oceandao.io/gov/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true
	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		errors.ErrorUnauthorized.Code:                http.StatusForbidden,
		errors.ErrorInsufficientProposalDeposit.Code: http.StatusBadRequest,
		errors.ErrorPollNotFound.Code:                http.StatusNotFound,
		errors.ErrorPollNotInProgress.Code:           http.StatusBadRequest,
		errors.ErrorPollVotingPeriod.Code:            http.StatusBadRequest,
		errors.ErrorPollNotPassed.Code:               http.StatusBadRequest,
		errors.ErrorTimelockNotExpired.Code:          http.StatusBadRequest,
		errors.ErrorAlreadyVoted.Code:                http.StatusBadRequest,
		errors.ErrorInsufficientStaked.Code:          http.StatusBadRequest,
		errors.ErrorNoExecuteData.Code:               http.StatusBadRequest,
		errors.ErrorInvalidWithdrawAmount.Code:       http.StatusBadRequest,
		errors.ErrorNothingStaked.Code:               http.StatusBadRequest,
		errors.ErrorInsufficientFunds.Code:           http.StatusBadRequest,
		errors.ErrorAlreadyInstantiated.Code:         http.StatusConflict,
		errors.ErrorMaximumBalanceReached.Code:       http.StatusBadRequest,
		errors.ErrorAmountUnderZero.Code:             http.StatusBadRequest,
		errors.ErrorInvalidRatio.Code:                http.StatusBadRequest,
		errors.ErrorStorageRecordDoesNotExist.Code:   http.StatusNotFound,
		errors.ErrorStorageRecordAlreadyExists.Code:  http.StatusConflict,
	}
)

// StatusCode maps a coded error to its HTTP status; unknown codes and
// plain errors fall through to 500.
func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, ok := ErrorsToStatus[e.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// WriteError renders the error as an RFC 7807 problem with the mapped
// status.
func WriteError(w http.ResponseWriter, err error) error {
	return WriteJSON(w, StatusCode(err), err)
}
