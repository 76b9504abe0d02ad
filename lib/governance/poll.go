package governance

import (
	"encoding/json"
	"fmt"
	"strconv"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/common/observer"
	"oceandao.io/gov/lib/errors"
	"oceandao.io/gov/lib/storage"
)

// Poll is the proposal record moving through the lifecycle
// InProgress -> {Rejected|Passed} -> Executed. the storage should support,
//  * find by `ID`
//  * get list by status
//
// models
//  * 'id'
// 	- 'gp-poll-<ID>': `Poll`
//  * 'status'
// 	- 'gi-status-<Status>-<ID>': `Poll.ID`

const PollPrefix = "gp-poll-"
const PollStatusIndexPrefix = "gi-status-"

type PollStatus string

const (
	PollStatusInProgress PollStatus = "in_progress"
	PollStatusPassed     PollStatus = "passed"
	PollStatusRejected   PollStatus = "rejected"
	PollStatusExecuted   PollStatus = "executed"
)

func (s PollStatus) IsValid() bool {
	switch s {
	case PollStatusInProgress, PollStatusPassed, PollStatusRejected, PollStatusExecuted:
		return true
	}
	return false
}

// ExecuteData is one follow-on action of a passed poll; actions are
// dispatched in ascending `Order`, ties keeping their list position.
type ExecuteData struct {
	Order    uint64          `json:"order"`
	Contract string          `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

type Poll struct {
	ID       uint64     `json:"id"`
	Creator  string     `json:"creator"`
	Status   PollStatus `json:"status"`
	YesVotes common.Amount `json:"yes_votes"`
	NoVotes  common.Amount `json:"no_votes"`
	// EndHeight is fixed at creation as `creation height + voting period`
	// and never changes afterwards.
	EndHeight   uint64        `json:"end_height"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Link        string        `json:"link,omitempty"`
	ExecuteData []ExecuteData `json:"execute_data,omitempty"`
	DepositAmount common.Amount `json:"deposit_amount"`
	// TotalBalanceAtEndPoll is the reference weight the tally used; set
	// exactly once, by EndPoll.
	TotalBalanceAtEndPoll *common.Amount `json:"total_balance_at_end_poll,omitempty"`
	// StakedAmount is the quorum denominator frozen on the first vote
	// inside the snapshot window; set at most once.
	StakedAmount   *common.Amount `json:"staked_amount,omitempty"`
	RejectedReason string         `json:"rejected_reason,omitempty"`
}

func (p *Poll) String() string {
	return string(common.MustJSONMarshal(p))
}

func (p *Poll) Save(st *storage.LevelDBBackend) (err error) {
	key := GetPollKey(p.ID)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, p)
	} else {
		err = st.New(key, p)
	}
	if err == nil {
		event := "saved"
		event += " " + fmt.Sprintf("poll_id-%d", p.ID)
		event += " " + fmt.Sprintf("status-%s", p.Status)
		observer.PollObserver.Trigger(event, p)
	}

	return
}

func GetPollKey(id uint64) string {
	return fmt.Sprintf("%s%020d", PollPrefix, id)
}

func GetPollStatusIndexKey(status PollStatus, id uint64) string {
	return fmt.Sprintf("%s%s-%020d", PollStatusIndexPrefix, status, id)
}

func GetPollStatusIndexPrefix(status PollStatus) string {
	return fmt.Sprintf("%s%s-", PollStatusIndexPrefix, status)
}

func ExistsPoll(st *storage.LevelDBBackend, id uint64) (bool, error) {
	return st.Has(GetPollKey(id))
}

func GetPoll(st *storage.LevelDBBackend, id uint64) (p Poll, err error) {
	if err = st.Get(GetPollKey(id), &p); err != nil {
		if err == errors.ErrorStorageRecordDoesNotExist {
			err = errors.ErrorPollNotFound
		}
		return
	}

	return
}

func addPollStatusIndex(st *storage.LevelDBBackend, status PollStatus, id uint64) error {
	return st.New(GetPollStatusIndexKey(status, id), id)
}

func removePollStatusIndex(st *storage.LevelDBBackend, status PollStatus, id uint64) error {
	return st.Remove(GetPollStatusIndexKey(status, id))
}

// movePollStatusIndex keeps the invariant that a poll lives in exactly the
// bucket of its current status; both writes belong to the caller's
// transaction.
func movePollStatusIndex(st *storage.LevelDBBackend, from, to PollStatus, id uint64) (err error) {
	if err = removePollStatusIndex(st, from, id); err != nil {
		return
	}

	return addPollStatusIndex(st, to, id)
}

func GetPollIDsByStatus(st *storage.LevelDBBackend, status PollStatus, reverse bool) (func() (uint64, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(GetPollStatusIndexPrefix(status), reverse)

	return (func() (uint64, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return 0, false
			}

			var id uint64
			json.Unmarshal(item.Value, &id)
			return id, hasNext
		}), (func() {
			closeFunc()
		})
}

func GetPolls(st *storage.LevelDBBackend, reverse bool) (func() (Poll, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(PollPrefix, reverse)

	return (func() (Poll, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return Poll{}, false
			}

			var p Poll
			json.Unmarshal(item.Value, &p)
			return p, hasNext
		}), (func() {
			closeFunc()
		})
}

func GetPollsByStatus(st *storage.LevelDBBackend, status PollStatus, reverse bool) (func() (Poll, bool), func()) {
	iterFunc, closeFunc := GetPollIDsByStatus(st, status, reverse)

	return (func() (Poll, bool) {
			id, hasNext := iterFunc()
			if !hasNext {
				return Poll{}, false
			}

			p, err := GetPoll(st, id)
			if err != nil {
				return Poll{}, false
			}
			return p, hasNext
		}), (func() {
			closeFunc()
		})
}

func ParsePollID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.ErrorPollNotFound
	}
	return id, nil
}
