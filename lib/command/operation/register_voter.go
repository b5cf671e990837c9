package operation

import (
	"encoding/json"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
)

// RegisterVoter enrolls the target address as an eligible voter of the
// current generation. Only the administrator may issue it.
type RegisterVoter struct {
	Target string `json:"target"`
}

func NewRegisterVoter(target string) RegisterVoter {
	return RegisterVoter{
		Target: target,
	}
}

func (o RegisterVoter) IsWellFormed(common.Config) (err error) {
	if _, err = keypair.Parse(o.Target); err != nil {
		err = errors.BadPublicAddress
		return
	}

	return
}

func (o RegisterVoter) TargetAddress() string {
	return o.Target
}

func (o RegisterVoter) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(o)
	return
}
