package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
)

// Winner is the tally outcome view of the winning proposal.
type Winner struct {
	p *campaign.Proposal
}

func NewWinner(p *campaign.Proposal) *Winner {
	r := &Winner{
		p: p,
	}
	return r
}

func (r Winner) GetMap() hal.Entry {
	return hal.Entry{
		"proposal_id": r.p.Index,
		"description": r.p.Description,
		"votes":       r.p.Votes,
	}
}

func (r Winner) Resource() *hal.Resource {
	index := strconv.FormatUint(r.p.Index, 10)

	h := hal.NewResource(r, r.LinkSelf())
	h.AddLink("proposal", hal.NewLink(strings.Replace(URLProposalByIndex, "{id}", index, -1)))
	return h
}

func (r Winner) LinkSelf() string {
	return URLWinner
}

func (r Winner) MarshalJSON() ([]byte, error) {
	h := r.Resource()
	return common.JSONMarshalWithoutEscapeHTML(h.GetMap())
}
