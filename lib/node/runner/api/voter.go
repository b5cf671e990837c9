package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/network/httputils"
	"boscoin.io/congress/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetVotersHandler(w http.ResponseWriter, r *http.Request) {
	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	// One more than the page so the key after the last record becomes
	// the next cursor; the iterator seek is cursor inclusive.
	var options = p.ListOptions().SetLimit(p.Limit() + 1)
	var firstCursor []byte
	var nextCursor []byte

	var rs []resource.Resource
	{
		var cnt uint64 = 1
		err := api.ledger.WalkVoters(options, func(v *campaign.Voter, key []byte) (bool, error) {
			if cnt > p.Limit() {
				nextCursor = append([]byte{}, key...)
				return false, nil
			}
			if cnt == 1 {
				firstCursor = append(firstCursor, key...)
			}
			rs = append(rs, resource.NewVoter(v))
			cnt++
			return true, nil
		})
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
	}

	list := p.ResourceList(rs, firstCursor, nextCursor)
	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetVoterHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		v, err := api.ledger.VoterStatus(address)
		if err != nil {
			return nil, err
		}
		payload = resource.NewVoter(v)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}

func (api NetworkHandlerAPI) GetVoterChoiceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		choice, err := api.ledger.VoterChoice(address)
		if err != nil {
			return nil, err
		}
		payload = resource.NewVoterChoice(address, choice)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
