package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/congress/lib/common"
)

// VoterChoice is the revealed ballot of one voter, served only after
// the voting session closed.
type VoterChoice struct {
	address string
	choice  uint64
}

func NewVoterChoice(address string, choice uint64) *VoterChoice {
	r := &VoterChoice{
		address: address,
		choice:  choice,
	}
	return r
}

func (r VoterChoice) GetMap() hal.Entry {
	return hal.Entry{
		"address": r.address,
		"choice":  r.choice,
	}
}

func (r VoterChoice) Resource() *hal.Resource {
	index := strconv.FormatUint(r.choice, 10)

	h := hal.NewResource(r, r.LinkSelf())
	h.AddLink("proposal", hal.NewLink(strings.Replace(URLProposalByIndex, "{id}", index, -1)))
	return h
}

func (r VoterChoice) LinkSelf() string {
	return strings.Replace(URLVoterChoice, "{id}", r.address, -1)
}

func (r VoterChoice) MarshalJSON() ([]byte, error) {
	h := r.Resource()
	return common.JSONMarshalWithoutEscapeHTML(h.GetMap())
}
