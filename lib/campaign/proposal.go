package campaign

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/storage"
)

// Proposal is one submitted ballot line. A proposal's identity is its
// position in the submission order, assigned at insertion and never
// reused within a generation; the whole sequence is removed on reset.
// the storage should support,
//  * find by `Index`:
// 	- key: 'cp-index-<%020d Proposal.Index>': `Proposal`
//  * find by `Description`:
// 	- key: 'cp-desc-<base58 hash of Proposal.Description>': `Proposal.Index`

const ProposalPrefixIndex string = "cp-index-"
const ProposalPrefixDescription string = "cp-desc-"

const maxProposalIndexStringLength int = 20

type Proposal struct {
	Index       uint64 `json:"index"`
	Description string `json:"description"`
	Votes       uint64 `json:"votes"`
	Proposer    string `json:"proposer"`
	Created     string `json:"created"`
}

func NewProposal(index uint64, description, proposer string) *Proposal {
	return &Proposal{
		Index:       index,
		Description: description,
		Proposer:    proposer,
		Created:     common.NowISO8601(),
	}
}

func (p Proposal) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(p)
	return
}

func (p Proposal) String() string {
	encoded, _ := json.MarshalIndent(p, "", "  ")
	return string(encoded)
}

func GetProposalKey(index uint64) string {
	f := fmt.Sprintf("%%s%%0%dd", maxProposalIndexStringLength)
	return fmt.Sprintf(f, ProposalPrefixIndex, index)
}

func GetProposalDescriptionKey(description string) string {
	return fmt.Sprintf("%s%s", ProposalPrefixDescription, base58.Encode(common.MakeHash([]byte(description))))
}

func ExistsProposal(st *storage.LevelDBBackend, index uint64) (bool, error) {
	return st.Has(GetProposalKey(index))
}

func ExistsProposalDescription(st *storage.LevelDBBackend, description string) (bool, error) {
	return st.Has(GetProposalDescriptionKey(description))
}

func GetProposal(st *storage.LevelDBBackend, index uint64) (p *Proposal, err error) {
	if err = st.Get(GetProposalKey(index), &p); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ProposalDoesNotExist
		}
		return
	}

	return
}

func (p *Proposal) Save(st *storage.LevelDBBackend) (err error) {
	key := GetProposalKey(p.Index)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, p)
	} else {
		if err = st.New(key, p); err != nil {
			return
		}
		err = st.New(GetProposalDescriptionKey(p.Description), p.Index)
	}

	return
}

func (p *Proposal) Remove(st *storage.LevelDBBackend) (err error) {
	if err = st.Remove(GetProposalKey(p.Index)); err != nil {
		return
	}

	return st.Remove(GetProposalDescriptionKey(p.Description))
}

func GetProposalsByIndex(st *storage.LevelDBBackend, options storage.ListOptions) (
	func() (Proposal, bool, []byte),
	func(),
) {
	iterFunc, closeFunc := st.GetIterator(ProposalPrefixIndex, options)

	return (func() (Proposal, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return Proposal{}, false, item.Key
			}

			var p Proposal
			if err := json.Unmarshal(item.Value, &p); err != nil {
				return Proposal{}, false, item.Key
			}

			return p, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

func WalkProposalsByIndex(st *storage.LevelDBBackend, option *storage.WalkOption, walkFunc func(*Proposal) (bool, error)) error {
	return st.Walk(ProposalPrefixIndex, option, func(key, value []byte) (bool, error) {
		var p Proposal
		if err := json.Unmarshal(value, &p); err != nil {
			return false, err
		}

		return walkFunc(&p)
	})
}
