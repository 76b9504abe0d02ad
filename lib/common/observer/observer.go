package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

var PollObserver = observable.New()
var StateObserver = observable.New()
var StakerObserver = observable.New()
var DispatchObserver = observable.New()

const (
	ResourcePoll     = "poll"
	ResourceState    = "state"
	ResourceStaker   = "staker"
	ResourceDispatch = "dispatch"
	ConditionAll     = "*"
	ConditionPollID  = "poll_id"
	ConditionStatus  = "status"
	ConditionAddress = "address"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Event) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "="
		toStr += e.Id
	}
	return toStr
}
