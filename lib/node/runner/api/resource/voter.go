package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
)

type Voter struct {
	v *campaign.Voter
}

func NewVoter(v *campaign.Voter) *Voter {
	r := &Voter{
		v: v,
	}
	return r
}

func (r Voter) GetMap() hal.Entry {
	return hal.Entry{
		"address":    r.v.Address,
		"registered": r.v.Registered,
		"voted":      r.v.Voted,
		"choice":     r.v.Choice,
		"created":    r.v.Created,
	}
}

func (r Voter) Resource() *hal.Resource {
	address := r.v.Address

	h := hal.NewResource(r, r.LinkSelf())
	h.AddLink("choice", hal.NewLink(strings.Replace(URLVoterChoice, "{id}", address, -1)))
	return h
}

func (r Voter) LinkSelf() string {
	address := r.v.Address
	return strings.Replace(URLVoterByAddress, "{id}", address, -1)
}

func (r Voter) MarshalJSON() ([]byte, error) {
	h := r.Resource()
	return common.JSONMarshalWithoutEscapeHTML(h.GetMap())
}
