package api

import (
	"net/http"

	"boscoin.io/congress/lib/network/httputils"
	"boscoin.io/congress/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetWinnerHandler(w http.ResponseWriter, r *http.Request) {
	readFunc := func() (payload interface{}, err error) {
		p, err := api.ledger.WinnerDetails()
		if err != nil {
			return nil, err
		}
		payload = resource.NewWinner(p)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
