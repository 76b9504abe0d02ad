package api

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/mux"

	"oceandao.io/gov/lib/governance"
	"oceandao.io/gov/lib/network/api/resource"
	"oceandao.io/gov/lib/network/httputils"
	"oceandao.io/gov/lib/storage"
)

// API Endpoint patterns
const (
	GetPollsHandlerPattern         = "/polls"
	GetPollByIDHandlerPattern      = "/polls/{id}"
	GetPollsByStatusHandlerPattern = "/polls/status/{status}"
	GetPollVoterHandlerPattern     = "/polls/{id}/voters/{address}"
	GetConfigHandlerPattern        = "/config"
	GetStateHandlerPattern         = "/state"
	GetStakerHandlerPattern        = "/stakers/{address}"
	PostPollHandlerPattern         = "/polls"
	PostVoteHandlerPattern         = "/polls/{id}/votes"
	PostEndPollHandlerPattern      = "/polls/{id}/end"
	PostExecutePollHandlerPattern  = "/polls/{id}/execute"
	PostStakeHandlerPattern        = "/stake"
	PostWithdrawHandlerPattern     = "/withdraw"
)

type NetworkHandlerAPI struct {
	storage    *storage.LevelDBBackend
	governance *governance.Governance
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, gov *governance.Governance) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		storage:    st,
		governance: gov,
	}
}

// AddAPIHandlers registers every governance endpoint under the given
// router; mount it at `/api/v1`.
func (api NetworkHandlerAPI) AddAPIHandlers(router *mux.Router) {
	router.HandleFunc(GetPollsHandlerPattern, api.GetPollsHandler).Methods("GET")
	router.HandleFunc(PostPollHandlerPattern, api.PostPollHandler).Methods("POST")
	router.HandleFunc(GetPollsByStatusHandlerPattern, api.GetPollsByStatusHandler).Methods("GET")
	router.HandleFunc(GetPollByIDHandlerPattern, api.GetPollByIDHandler).Methods("GET")
	router.HandleFunc(GetPollVoterHandlerPattern, api.GetPollVoterHandler).Methods("GET")
	router.HandleFunc(PostVoteHandlerPattern, api.PostVoteHandler).Methods("POST")
	router.HandleFunc(PostEndPollHandlerPattern, api.PostEndPollHandler).Methods("POST")
	router.HandleFunc(PostExecutePollHandlerPattern, api.PostExecutePollHandler).Methods("POST")
	router.HandleFunc(GetConfigHandlerPattern, api.GetConfigHandler).Methods("GET")
	router.HandleFunc(GetStateHandlerPattern, api.GetStateHandler).Methods("GET")
	router.HandleFunc(GetStakerHandlerPattern, api.GetStakerHandler).Methods("GET")
	router.HandleFunc(PostStakeHandlerPattern, api.PostStakeHandler).Methods("POST")
	router.HandleFunc(PostWithdrawHandlerPattern, api.PostWithdrawHandler).Methods("POST")
}

func renderEventStream(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}
	i := args[1]

	switch v := i.(type) {
	case *governance.Poll:
		r := resource.NewPoll(v)
		return json.Marshal(r.Resource())
	case httputils.HALResource:
		return json.Marshal(v.Resource())
	}

	return json.Marshal(i)
}
