package api

import (
	"net/http/httptest"

	"github.com/gorilla/mux"

	"oceandao.io/gov/lib/governance"
	"oceandao.io/gov/lib/network/api/resource"
)

// prepareAPIServer wires a governance controller on in-memory storage
// behind a test HTTP server mounted at the v1 prefix.
func prepareAPIServer(genesis governance.Genesis) (*httptest.Server, *governance.Governance, *governance.StaticBalanceSource, *governance.RecordingDispatcher) {
	g, balances, dispatcher := governance.TestMakeGovernance(genesis)

	router := mux.NewRouter()
	apiHandler := NewNetworkHandlerAPI(g.Storage(), g)
	apiHandler.AddAPIHandlers(router.PathPrefix(resource.APIPrefix + resource.APIVersionV1).Subrouter())

	ts := httptest.NewServer(router)
	return ts, g, balances, dispatcher
}
