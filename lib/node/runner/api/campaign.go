package api

import (
	"net/http"

	"boscoin.io/congress/lib/network/httputils"
	"boscoin.io/congress/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetCampaignHandler(w http.ResponseWriter, r *http.Request) {
	readFunc := func() (payload interface{}, err error) {
		c, err := api.ledger.Campaign()
		if err != nil {
			return nil, err
		}
		payload = resource.NewCampaign(c)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
