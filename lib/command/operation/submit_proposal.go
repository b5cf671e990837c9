package operation

import (
	"encoding/json"

	"boscoin.io/congress/lib/common"
)

// SubmitProposal puts a new proposal on the ballot. Any registered voter may
// issue it while the proposals registration window is open. An empty
// description is accepted; uniqueness is enforced by the ledger, not here.
type SubmitProposal struct {
	Description string `json:"description"`
}

func NewSubmitProposal(description string) SubmitProposal {
	return SubmitProposal{
		Description: description,
	}
}

func (o SubmitProposal) IsWellFormed(common.Config) (err error) {
	return
}

func (o SubmitProposal) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(o)
	return
}
