package governance

import (
	"encoding/json"
	"fmt"
	"strings"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/common/observer"
	"oceandao.io/gov/lib/errors"
	"oceandao.io/gov/lib/storage"
)

// VoterInfo is the immutable record of one accepted vote; at most one per
// (poll, voter) pair. TokenManager is the per-account share ledger with the
// append-only locked-balance list used for double-vote prevention and
// withdraw exclusion.
//
// models
//  * 'poll' and 'voter'
// 	- 'gv-voter-<Poll.ID>-<address>': `VoterInfo`
//  * 'account'
// 	- 'gb-bank-<address>': `TokenManager`

const PollVoterPrefix = "gv-voter-"
const TokenManagerPrefix = "gb-bank-"

type VoteOption string

const (
	VoteOptionYes VoteOption = "yes"
	VoteOptionNo  VoteOption = "no"
)

func (v VoteOption) IsValid() bool {
	return v == VoteOptionYes || v == VoteOptionNo
}

type VoterInfo struct {
	Vote    VoteOption    `json:"vote"`
	Balance common.Amount `json:"balance"`
}

type LockedBalance struct {
	PollID uint64    `json:"poll_id"`
	Vote   VoterInfo `json:"vote"`
}

type TokenManager struct {
	Address string        `json:"address"`
	Share   common.Amount `json:"share"`
	LockedBalance []LockedBalance `json:"locked_balance"`
}

func GetPollVoterKey(pollID uint64, address string) string {
	return fmt.Sprintf("%s%020d-%s", PollVoterPrefix, pollID, address)
}

func GetPollVoterPrefix(pollID uint64) string {
	return fmt.Sprintf("%s%020d-", PollVoterPrefix, pollID)
}

func ExistsPollVoter(st *storage.LevelDBBackend, pollID uint64, address string) (bool, error) {
	return st.Has(GetPollVoterKey(pollID, address))
}

func GetPollVoter(st *storage.LevelDBBackend, pollID uint64, address string) (vi VoterInfo, err error) {
	err = st.Get(GetPollVoterKey(pollID, address), &vi)
	return
}

// SavePollVoter inserts only; a second vote for the same poll must have
// been rejected before this point.
func SavePollVoter(st *storage.LevelDBBackend, pollID uint64, address string, vi VoterInfo) error {
	err := st.New(GetPollVoterKey(pollID, address), vi)
	if err == errors.ErrorStorageRecordAlreadyExists {
		err = errors.ErrorAlreadyVoted
	}
	return err
}

func GetPollVoters(st *storage.LevelDBBackend, pollID uint64) (func() (string, VoterInfo, bool), func()) {
	prefix := GetPollVoterPrefix(pollID)
	iterFunc, closeFunc := st.GetIterator(prefix, false)

	return (func() (string, VoterInfo, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", VoterInfo{}, false
			}

			address := strings.TrimPrefix(string(item.Key), prefix)
			var vi VoterInfo
			json.Unmarshal(item.Value, &vi)
			return address, vi, hasNext
		}), (func() {
			closeFunc()
		})
}

func GetTokenManagerKey(address string) string {
	return fmt.Sprintf("%s%s", TokenManagerPrefix, address)
}

func ExistsTokenManager(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetTokenManagerKey(address))
}

// GetTokenManager returns the account's ledger, or a fresh zeroed one when
// the account never staked.
func GetTokenManager(st *storage.LevelDBBackend, address string) (tm TokenManager, err error) {
	if err = st.Get(GetTokenManagerKey(address), &tm); err != nil {
		if err == errors.ErrorStorageRecordDoesNotExist {
			return TokenManager{Address: address}, nil
		}
		return
	}

	return
}

func (tm *TokenManager) String() string {
	return string(common.MustJSONMarshal(tm))
}

func (tm *TokenManager) Save(st *storage.LevelDBBackend) (err error) {
	key := GetTokenManagerKey(tm.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, tm)
	} else {
		err = st.New(key, tm)
	}
	if err == nil {
		event := "saved"
		event += " " + fmt.Sprintf("address-%s", tm.Address)
		observer.StakerObserver.Trigger(event, tm)
	}

	return
}
