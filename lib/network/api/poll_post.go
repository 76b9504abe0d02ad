package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/governance"
	"oceandao.io/gov/lib/network/api/resource"
	"oceandao.io/gov/lib/network/httputils"
)

// The POST bodies carry the authenticated sender and the current height;
// both are supplied by the host harness fronting this node, not by the end
// user.

type PostPollRequest struct {
	Sender      string                   `json:"sender"`
	Proposer    string                   `json:"proposer"`
	Deposit     common.Amount            `json:"deposit"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Link        string                   `json:"link"`
	ExecuteData []governance.ExecuteData `json:"execute_data"`
	Height      uint64                   `json:"height"`
}

type PostVoteRequest struct {
	Sender string                `json:"sender"`
	Vote   governance.VoteOption `json:"vote"`
	Amount common.Amount         `json:"amount"`
	Height uint64                `json:"height"`
}

type PostHeightRequest struct {
	Height uint64 `json:"height"`
}

type PostStakeRequest struct {
	Sender string        `json:"sender"`
	Staker string        `json:"staker"`
	Amount common.Amount `json:"amount"`
}

type PostWithdrawRequest struct {
	Sender string         `json:"sender"`
	Amount *common.Amount `json:"amount"`
}

func (api NetworkHandlerAPI) PostPollHandler(w http.ResponseWriter, r *http.Request) {
	var req PostPollRequest
	if !readJSONBody(w, r, &req) {
		return
	}

	pollID, err := api.governance.CreatePoll(
		req.Sender,
		req.Proposer,
		req.Deposit,
		req.Title,
		req.Description,
		req.Link,
		req.ExecuteData,
		req.Height,
	)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	poll, err := governance.GetPoll(api.storage, pollID)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, http.StatusCreated, resource.NewPoll(&poll)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) PostVoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := governance.ParsePollID(vars["id"])
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var req PostVoteRequest
	if !readJSONBody(w, r, &req) {
		return
	}

	if !req.Vote.IsValid() {
		http.Error(w, "invalid vote option", http.StatusBadRequest)
		return
	}

	if err := api.governance.CastVote(req.Sender, id, req.Vote, req.Amount, req.Height); err != nil {
		httputils.WriteError(w, err)
		return
	}

	vi, err := governance.GetPollVoter(api.storage, id, req.Sender)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, http.StatusCreated, resource.NewVoter(id, req.Sender, vi)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) PostEndPollHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := governance.ParsePollID(vars["id"])
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var req PostHeightRequest
	if !readJSONBody(w, r, &req) {
		return
	}

	if _, err := api.governance.EndPoll(id, req.Height); err != nil {
		httputils.WriteError(w, err)
		return
	}

	poll, err := governance.GetPoll(api.storage, id)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewPoll(&poll)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) PostExecutePollHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := governance.ParsePollID(vars["id"])
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	var req PostHeightRequest
	if !readJSONBody(w, r, &req) {
		return
	}

	if err := api.governance.ExecutePoll(id, req.Height); err != nil {
		httputils.WriteError(w, err)
		return
	}

	poll, err := governance.GetPoll(api.storage, id)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewPoll(&poll)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) PostStakeHandler(w http.ResponseWriter, r *http.Request) {
	var req PostStakeRequest
	if !readJSONBody(w, r, &req) {
		return
	}

	if err := api.governance.StakeTokens(req.Sender, req.Staker, req.Amount); err != nil {
		httputils.WriteError(w, err)
		return
	}

	tm, err := governance.GetTokenManager(api.storage, req.Staker)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewStaker(&tm)); err != nil {
		httputils.WriteError(w, err)
	}
}

func (api NetworkHandlerAPI) PostWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req PostWithdrawRequest
	if !readJSONBody(w, r, &req) {
		return
	}

	if err := api.governance.WithdrawTokens(req.Sender, req.Amount); err != nil {
		httputils.WriteError(w, err)
		return
	}

	tm, err := governance.GetTokenManager(api.storage, req.Sender)
	if err != nil {
		httputils.WriteError(w, err)
		return
	}

	if err := httputils.WriteJSON(w, 200, resource.NewStaker(&tm)); err != nil {
		httputils.WriteError(w, err)
	}
}

func readJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return false
	}

	return true
}
