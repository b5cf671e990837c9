package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common/keypair"
)

var networkID []byte = []byte("congress-unittest")

const (
	QueryPattern = "cursor={cursor}&limit={limit}&reverse={reverse}"
)

func prepareAPIServer() (*httptest.Server, *campaign.Ledger, *keypair.Full) {
	admin := keypair.Random()
	lg := campaign.TestMakeLedger(admin.Address())
	apiHandler := NetworkHandlerAPI{ledger: lg}

	router := mux.NewRouter()
	router.HandleFunc(GetCampaignHandlerPattern, apiHandler.GetCampaignHandler).Methods("GET")
	router.HandleFunc(GetVotersHandlerPattern, apiHandler.GetVotersHandler).Methods("GET")
	router.HandleFunc(GetVoterChoiceHandlerPattern, apiHandler.GetVoterChoiceHandler).Methods("GET")
	router.HandleFunc(GetVoterHandlerPattern, apiHandler.GetVoterHandler).Methods("GET")
	router.HandleFunc(GetProposalsHandlerPattern, apiHandler.GetProposalsHandler).Methods("GET")
	router.HandleFunc(GetProposalHandlerPattern, apiHandler.GetProposalHandler).Methods("GET")
	router.HandleFunc(GetWinnerHandlerPattern, apiHandler.GetWinnerHandler).Methods("GET")
	router.HandleFunc(PostSubscribePattern, apiHandler.PostSubscribeHandler).Methods("POST")
	ts := httptest.NewServer(router)
	return ts, lg, admin
}

func request(ts *httptest.Server, url string, streaming bool, body ...[]byte) io.ReadCloser {
	// Do a Request
	url = ts.URL + url
	var req *http.Request
	var err error
	if len(body) > 0 {
		req, err = http.NewRequest("POST", url, bytes.NewReader(body[0]))
	} else {
		req, err = http.NewRequest("GET", url, nil)
	}
	if err != nil {
		panic(err)
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		panic(err)
	}
	return resp.Body
}
