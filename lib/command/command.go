package command

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
)

// Command is the signed envelope every campaign request travels in. The hash
// covers the body only; the signature covers the network id plus the hash, so
// a command signed for one network cannot be replayed on another.
type Command struct {
	T string
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type Body struct {
	Source    string              `json:"source"`
	Operation operation.Operation `json:"operation"`
}

func (cb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(cb)
}

func (cb Body) MakeHashString() string {
	return base58.Encode(cb.MakeHash())
}

func NewCommand(source string, opb operation.Body) (cmd Command, err error) {
	var op operation.Operation
	if op, err = operation.NewOperation(opb); err != nil {
		return
	}

	cmdBody := Body{
		Source:    source,
		Operation: op,
	}

	cmd = Command{
		T: "command",
		H: Header{
			Version: common.CommandVersion,
			Created: common.NowISO8601(),
			Hash:    cmdBody.MakeHashString(),
		},
		B: cmdBody,
	}

	return
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckType,
	CheckVersion,
	CheckCreatedTime,
	CheckSource,
	CheckOperation,
	CheckHash,
	CheckVerifySignature,
}

func (cmd Command) IsWellFormed(conf common.Config) (err error) {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		Conf:           conf,
		Command:        cmd,
	}
	if err = common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		return
	}

	return
}

func (cmd Command) GetType() string {
	return cmd.T
}

func (cmd Command) GetHash() string {
	return cmd.H.Hash
}

func (cmd Command) Source() string {
	return cmd.B.Source
}

func (cmd Command) OperationType() operation.OperationType {
	return cmd.B.Operation.H.Type
}

func (cmd Command) Equal(other Command) bool {
	return cmd.H.Hash == other.H.Hash
}

func (cmd Command) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(cmd)
	return
}

func (cmd Command) String() string {
	encoded, _ := json.MarshalIndent(cmd, "", "  ")
	return string(encoded)
}

func (cmd *Command) Sign(kp keypair.KP, networkID []byte) {
	cmd.H.Hash = cmd.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, cmd.H.Hash)

	cmd.H.Signature = base58.Encode(signature)

	return
}
