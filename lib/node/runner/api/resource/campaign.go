package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
)

type Campaign struct {
	c *campaign.Campaign
}

func NewCampaign(c *campaign.Campaign) *Campaign {
	r := &Campaign{
		c: c,
	}
	return r
}

func (r Campaign) GetMap() hal.Entry {
	return hal.Entry{
		"admin":           r.c.Admin,
		"phase":           r.c.Phase.String(),
		"previous_phase":  r.c.PreviousPhase.String(),
		"generation":      r.c.Generation,
		"total_voters":    r.c.TotalVoters,
		"total_proposals": r.c.TotalProposals,
		"total_votes":     r.c.TotalVotes,
		"winner_elected":  r.c.WinnerElected,
		"created":         r.c.Created,
		"confirmed":       r.c.Confirmed,
	}
}

func (r Campaign) Resource() *hal.Resource {
	h := hal.NewResource(r, r.LinkSelf())
	h.AddLink("voters", hal.NewLink(URLVoters+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	h.AddLink("proposals", hal.NewLink(URLProposals+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true}))
	if r.c.WinnerElected {
		h.AddLink("winner", hal.NewLink(URLWinner))
	}
	return h
}

func (r Campaign) LinkSelf() string {
	return URLCampaign
}

func (r Campaign) MarshalJSON() ([]byte, error) {
	h := r.Resource()
	return common.JSONMarshalWithoutEscapeHTML(h.GetMap())
}
