package operation

import (
	"encoding/json"

	"boscoin.io/congress/lib/common"
)

// CastVote spends the caller's single ballot on the proposal with the given
// index. The index is validated against the registry by the ledger.
type CastVote struct {
	ProposalId uint64 `json:"proposal-id"`
}

func NewCastVote(proposalId uint64) CastVote {
	return CastVote{
		ProposalId: proposalId,
	}
}

func (o CastVote) IsWellFormed(common.Config) (err error) {
	return
}

func (o CastVote) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(o)
	return
}
