package runner

import (
	"encoding/json"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/command"
	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/node"
)

// CommandChecker carries one incoming command through unmarshalling, the
// well-formed checks and the ledger dispatch. `Result` ends up holding the
// campaign record the command produced.
type CommandChecker struct {
	common.DefaultChecker

	LocalNode *node.LocalNode
	Ledger    *campaign.Ledger
	NetworkID []byte
	Conf      common.Config
	Message   common.NetworkMessage
	Command   command.Command
	Result    common.Serializable

	Log logging.Logger
}

// CommandUnmarshal makes `Command` from common.NetworkMessage.
func CommandUnmarshal(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CommandChecker)

	var cmd command.Command
	if err = json.Unmarshal(checker.Message.Data, &cmd); err != nil {
		if _, ok := err.(*errors.Error); !ok {
			err = errors.InvalidMessage.Clone().SetData("error", err.Error())
		}
		return
	}

	checker.Command = cmd
	checker.Log = checker.Log.New(logging.Ctx{
		"command": cmd.GetHash(),
		"type":    cmd.OperationType(),
		"source":  cmd.Source(),
	})
	checker.Log.Debug("command is unmarshalled")

	return
}

// CommandVerifyWellFormed checks the command against the node
// configuration: version, created time, source address, operation body,
// hash and signature.
func CommandVerifyWellFormed(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CommandChecker)

	if err = checker.Command.IsWellFormed(checker.Conf); err != nil {
		checker.Log.Debug("command is not well-formed", "error", err)
		return
	}

	return
}

// CommandDispatch applies the operation to the ledger. The ledger runs its
// own guards, so a command which unmarshals and verifies fine can still be
// rejected here.
func CommandDispatch(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*CommandChecker)

	source := checker.Command.Source()
	switch opb := checker.Command.B.Operation.B.(type) {
	case operation.RegisterVoter:
		checker.Result, err = checker.Ledger.AddVoter(source, opb.Target)
	case operation.StartProposals:
		checker.Result, err = checker.Ledger.OpenProposalsRegistration(source)
	case operation.SubmitProposal:
		checker.Result, err = checker.Ledger.SubmitProposal(source, opb.Description)
	case operation.EndProposals:
		checker.Result, err = checker.Ledger.CloseProposalsRegistration(source)
	case operation.StartVoting:
		checker.Result, err = checker.Ledger.OpenVotingSession(source)
	case operation.CastVote:
		checker.Result, err = checker.Ledger.Vote(source, opb.ProposalId)
	case operation.EndVoting:
		checker.Result, err = checker.Ledger.CloseVotingSession(source)
	case operation.TallyVotes:
		checker.Result, err = checker.Ledger.StartCounting(source)
	case operation.ResetCampaign:
		checker.Result, err = checker.Ledger.Reset(source)
	default:
		err = errors.UnknownOperationType
	}

	if err != nil {
		return
	}

	checker.Log.Debug("command applied")

	return
}
