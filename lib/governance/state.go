package governance

import (
	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/common/observer"
	"oceandao.io/gov/lib/storage"
)

// State is the global mutable singleton; its counters are written in the
// same storage transaction as the poll record they accompany.
//
// models
//  * 'state'
// 	- 'gc-state': `State`

const StateKey = "gc-state"

type State struct {
	// ContractAddress is the account the balance oracle is queried with;
	// the governance module custodies staked tokens and pending deposits
	// under this address.
	ContractAddress string `json:"contract_address"`
	// PollCount is the monotonically increasing poll id counter; ids are
	// 1-based and never reused.
	PollCount uint64 `json:"poll_count"`
	// TotalShare is the total issued governance shares; maintained by the
	// stake/withdraw operations, read by the vote weight conversion.
	TotalShare common.Amount `json:"total_share"`
	// TotalDeposit is the sum of deposits of still-undecided polls.
	TotalDeposit common.Amount `json:"total_deposit"`
}

func (s *State) String() string {
	return string(common.MustJSONMarshal(s))
}

func (s *State) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	if exists, err = st.Has(StateKey); err != nil {
		return
	}

	if exists {
		err = st.Set(StateKey, s)
	} else {
		err = st.New(StateKey, s)
	}
	if err == nil {
		observer.StateObserver.Trigger("saved", s)
	}

	return
}

func GetState(st *storage.LevelDBBackend) (s State, err error) {
	err = st.Get(StateKey, &s)
	return
}
