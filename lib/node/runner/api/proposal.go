package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/network/httputils"
	"boscoin.io/congress/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
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
		err := api.ledger.WalkProposals(options, func(pr *campaign.Proposal, key []byte) (bool, error) {
			if cnt > p.Limit() {
				nextCursor = append([]byte{}, key...)
				return false, nil
			}
			if cnt == 1 {
				firstCursor = append(firstCursor, key...)
			}
			rs = append(rs, resource.NewProposal(pr))
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

func (api NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	index, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	readFunc := func() (payload interface{}, err error) {
		pr, err := api.ledger.ProposalByIndex(index)
		if err != nil {
			return nil, err
		}
		payload = resource.NewProposal(pr)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
