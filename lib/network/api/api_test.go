package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/governance"
)

func postJSON(t *testing.T, url string, body interface{}) (*http.Response, map[string]interface{}) {
	bs, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(bs))
	require.NoError(t, err)
	defer resp.Body.Close()

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(readByte, &m))
	return resp, m
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(readByte, &m))
	return resp, m
}

func TestAPIPollLifecycle(t *testing.T) {
	genesis := governance.TestMakeGenesis()
	ts, g, balances, _ := prepareAPIServer(genesis)
	defer ts.Close()

	voter := governance.TestMakeAddress()
	require.Nil(t, governance.TestStake(g, balances, genesis, voter, common.Amount(100)))

	// create
	governance.TestFundContract(balances, genesis.ContractAddress, common.Amount(1000))
	proposer := governance.TestMakeAddress()
	resp, m := postJSON(t, ts.URL+"/api/v1/polls", PostPollRequest{
		Sender:      genesis.Token,
		Proposer:    proposer,
		Deposit:     common.Amount(1000),
		Title:       "increase reward",
		Description: "raise the staking reward rate",
		Height:      1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "application/hal+json", resp.Header.Get("Content-Type"))
	require.Equal(t, float64(1), m["id"])
	require.Equal(t, "in_progress", m["status"])

	// vote
	resp, m = postJSON(t, ts.URL+"/api/v1/polls/1/votes", PostVoteRequest{
		Sender: voter,
		Vote:   governance.VoteOptionYes,
		Amount: common.Amount(100),
		Height: 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "yes", m["vote"])

	// read back
	resp, m = getJSON(t, ts.URL+"/api/v1/polls/1")
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "100", m["yes_votes"])

	// end
	resp, m = postJSON(t, ts.URL+"/api/v1/polls/1/end", PostHeightRequest{Height: 101})
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "passed", m["status"])

	// execute fails without actions, the poll stays passed
	resp, m = postJSON(t, ts.URL+"/api/v1/polls/1/execute", PostHeightRequest{Height: 151})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, m = getJSON(t, ts.URL+"/api/v1/polls/1")
	require.Equal(t, "passed", m["status"])
}

func TestAPIPollNotFound(t *testing.T) {
	genesis := governance.TestMakeGenesis()
	ts, _, _, _ := prepareAPIServer(genesis)
	defer ts.Close()

	resp, m := getJSON(t, ts.URL+"/api/v1/polls/1")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	require.Equal(t, "poll does not exist", m["title"])

	resp, _ = getJSON(t, ts.URL+"/api/v1/polls/abc")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIPollsByStatus(t *testing.T) {
	genesis := governance.TestMakeGenesis()
	ts, g, balances, _ := prepareAPIServer(genesis)
	defer ts.Close()

	for i := 0; i < 3; i++ {
		_, err := governance.TestCreatePoll(g, balances, genesis, governance.TestMakeAddress(), common.Amount(1000), nil, 1)
		require.Nil(t, err)
	}
	_, err := g.EndPoll(2, 101)
	require.Nil(t, err)

	_, m := getJSON(t, ts.URL+"/api/v1/polls/status/in_progress")
	embedded := m["_embedded"].(map[string]interface{})
	records := embedded["records"].([]interface{})
	require.Equal(t, 2, len(records))

	_, m = getJSON(t, ts.URL+"/api/v1/polls/status/rejected")
	embedded = m["_embedded"].(map[string]interface{})
	records = embedded["records"].([]interface{})
	require.Equal(t, 1, len(records))

	resp, err := http.Get(ts.URL + "/api/v1/polls/status/bogus")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIConfigAndState(t *testing.T) {
	genesis := governance.TestMakeGenesis()
	ts, _, _, _ := prepareAPIServer(genesis)
	defer ts.Close()

	resp, m := getJSON(t, ts.URL+"/api/v1/config")
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, genesis.Owner, m["owner"])
	require.Equal(t, "0.4", m["quorum"])

	resp, m = getJSON(t, ts.URL+"/api/v1/state")
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, genesis.ContractAddress, m["contract_address"])
	require.Equal(t, float64(0), m["poll_count"])
}

func TestAPIStakeAndWithdraw(t *testing.T) {
	genesis := governance.TestMakeGenesis()
	ts, _, balances, _ := prepareAPIServer(genesis)
	defer ts.Close()

	staker := governance.TestMakeAddress()

	resp, _ := getJSON(t, ts.URL+"/api/v1/stakers/"+staker)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	governance.TestFundContract(balances, genesis.ContractAddress, common.Amount(100))
	resp, m := postJSON(t, ts.URL+"/api/v1/stake", PostStakeRequest{
		Sender: genesis.Token,
		Staker: staker,
		Amount: common.Amount(100),
	})
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "100", m["share"])

	resp, m = getJSON(t, ts.URL+"/api/v1/stakers/"+staker)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "100", m["share"])

	amount := common.Amount(40)
	resp, m = postJSON(t, ts.URL+"/api/v1/withdraw", PostWithdrawRequest{
		Sender: staker,
		Amount: &amount,
	})
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "60", m["share"])

	// an unauthorized stake is rejected with 403
	resp, _ = postJSON(t, ts.URL+"/api/v1/stake", PostStakeRequest{
		Sender: governance.TestMakeAddress(),
		Staker: staker,
		Amount: common.Amount(10),
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPIVoterRecord(t *testing.T) {
	genesis := governance.TestMakeGenesis()
	ts, g, balances, _ := prepareAPIServer(genesis)
	defer ts.Close()

	voter := governance.TestMakeAddress()
	require.Nil(t, governance.TestStake(g, balances, genesis, voter, common.Amount(100)))

	pollID, err := governance.TestCreatePoll(g, balances, genesis, governance.TestMakeAddress(), common.Amount(1000), nil, 1)
	require.Nil(t, err)
	require.Nil(t, g.CastVote(voter, pollID, governance.VoteOptionNo, common.Amount(30), 10))

	url := fmt.Sprintf("%s/api/v1/polls/%d/voters/%s", ts.URL, pollID, voter)
	resp, m := getJSON(t, url)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "no", m["vote"])
	require.Equal(t, "30", m["balance"])

	resp, _ = getJSON(t, fmt.Sprintf("%s/api/v1/polls/%d/voters/%s", ts.URL, pollID, governance.TestMakeAddress()))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
