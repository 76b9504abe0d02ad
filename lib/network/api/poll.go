package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"oceandao.io/gov/lib/common/observer"
	"oceandao.io/gov/lib/errors"
	"oceandao.io/gov/lib/governance"
	"oceandao.io/gov/lib/network/api/resource"
	"oceandao.io/gov/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetPollsHandler(w http.ResponseWriter, r *http.Request) {
	reverse := r.FormValue("reverse") == "true"
	limit := parseLimit(r)

	var list resource.ResourceList
	list.SelfLink = resource.URLPolls

	iterFunc, closeFunc := governance.GetPolls(api.storage, reverse)
	for limit != 0 {
		p, hasNext := iterFunc()
		if !hasNext {
			break
		}
		poll := p
		list.Resources = append(list.Resources, resource.NewPoll(&poll))
		limit--
	}
	closeFunc()

	if err := httputils.WriteJSON(w, 200, list); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetPollsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	status := governance.PollStatus(vars["status"])
	if !status.IsValid() {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	reverse := r.FormValue("reverse") == "true"
	limit := parseLimit(r)

	var list resource.ResourceList
	list.SelfLink = r.URL.Path

	iterFunc, closeFunc := governance.GetPollsByStatus(api.storage, status, reverse)
	for limit != 0 {
		p, hasNext := iterFunc()
		if !hasNext {
			break
		}
		poll := p
		list.Resources = append(list.Resources, resource.NewPoll(&poll))
		limit--
	}
	closeFunc()

	if err := httputils.WriteJSON(w, 200, list); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetPollByIDHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := governance.ParsePollID(vars["id"])
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	poll, err := governance.GetPoll(api.storage, id)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		event := fmt.Sprintf("poll_id-%d", id)
		es := NewDefaultEventStream(w, r)
		es.Render(&poll)
		es.Run(observer.PollObserver, event)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewPoll(&poll)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetPollVoterHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := governance.ParsePollID(vars["id"])
	if err != nil {
		httputils.WriteError(w, err)
		return
	}
	address := vars["address"]

	exists, err := governance.ExistsPollVoter(api.storage, id, address)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}
	if !exists {
		httputils.WriteError(w, errors.ErrorStorageRecordDoesNotExist)
		return
	}

	vi, err := governance.GetPollVoter(api.storage, id, address)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewVoter(id, address, vi)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetConfigHandler(w http.ResponseWriter, r *http.Request) {
	config, err := governance.GetConfig(api.storage)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewConfig(&config)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	state, err := governance.GetState(api.storage)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewState(&state)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) GetStakerHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["address"]

	exists, err := governance.ExistsTokenManager(api.storage, address)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}
	if !exists {
		httputils.WriteError(w, errors.ErrorStorageRecordDoesNotExist)
		return
	}

	tm, err := governance.GetTokenManager(api.storage, address)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewStaker(&tm)); err != nil {
		httputils.WriteError(w, err)
	}
}

func parseLimit(r *http.Request) int {
	v := r.FormValue("limit")
	if v == "" {
		return -1 // -1 is infinite
	}

	limit, err := strconv.Atoi(v)
	if err != nil || limit < 0 {
		return -1
	}
	if limit > 1000 {
		limit = 1000
	}
	return limit
}
