package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
)

type Proposal struct {
	p *campaign.Proposal
}

func NewProposal(p *campaign.Proposal) *Proposal {
	r := &Proposal{
		p: p,
	}
	return r
}

func (r Proposal) GetMap() hal.Entry {
	return hal.Entry{
		"index":       r.p.Index,
		"description": r.p.Description,
		"votes":       r.p.Votes,
		"proposer":    r.p.Proposer,
		"created":     r.p.Created,
	}
}

func (r Proposal) Resource() *hal.Resource {
	h := hal.NewResource(r, r.LinkSelf())
	h.AddLink("proposer", hal.NewLink(strings.Replace(URLVoterByAddress, "{id}", r.p.Proposer, -1)))
	return h
}

func (r Proposal) LinkSelf() string {
	index := strconv.FormatUint(r.p.Index, 10)
	return strings.Replace(URLProposalByIndex, "{id}", index, -1)
}

func (r Proposal) MarshalJSON() ([]byte, error) {
	h := r.Resource()
	return common.JSONMarshalWithoutEscapeHTML(h.GetMap())
}
