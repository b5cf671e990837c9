package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/command"
	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
)

func TestCommandChecker(t *testing.T) {
	nodeRunner, admin := MakeNodeRunner()

	runChecker := func(data []byte) (*CommandChecker, error) {
		checker := &CommandChecker{
			DefaultChecker: common.DefaultChecker{Funcs: HandleCommandCheckerFuncs},
			LocalNode:      nodeRunner.Node(),
			Ledger:         nodeRunner.Ledger(),
			NetworkID:      networkID,
			Conf:           nodeRunner.Conf,
			Message:        common.NetworkMessage{Type: common.CommandMessage, Data: data},
			Log:            nodeRunner.Log(),
		}
		err := common.RunChecker(checker, common.DefaultDeferFunc)

		return checker, err
	}

	{ // a well-formed `register-voter` from the admin ends up in the ledger
		target := keypair.Random()
		cmd := command.TestMakeCommandWithKeypair(networkID, admin, operation.NewRegisterVoter(target.Address()))
		data, err := cmd.Serialize()
		require.NoError(t, err)

		checker, err := runChecker(data)
		require.NoError(t, err)

		voter, ok := checker.Result.(*campaign.Voter)
		require.True(t, ok)
		require.Equal(t, target.Address(), voter.Address)
		require.True(t, voter.Registered)

		saved, err := nodeRunner.Ledger().VoterStatus(target.Address())
		require.NoError(t, err)
		require.True(t, saved.Registered)
	}

	{ // garbage which is not even a command
		_, err := runChecker([]byte("findme"))
		require.Error(t, err)

		e, ok := err.(*errors.Error)
		require.True(t, ok)
		require.Equal(t, errors.InvalidMessage.Code, e.Code)
	}

	{ // an operation type the node does not know
		target := keypair.Random()
		cmd := command.TestMakeCommandWithKeypair(networkID, admin, operation.NewRegisterVoter(target.Address()))
		data, _ := cmd.Serialize()
		data = []byte(strings.Replace(string(data), string(operation.TypeRegisterVoter), "eat-cookies", 1))

		_, err := runChecker(data)
		require.Error(t, err)

		e, ok := err.(*errors.Error)
		require.True(t, ok)
		require.Equal(t, errors.InvalidOperation.Code, e.Code)
	}

	{ // signed against another network id
		target := keypair.Random()
		cmd := command.TestMakeCommandWithKeypair([]byte("congress-othernet"), admin, operation.NewRegisterVoter(target.Address()))
		data, _ := cmd.Serialize()

		_, err := runChecker(data)
		require.Error(t, err)

		e, ok := err.(*errors.Error)
		require.True(t, ok)
		require.Equal(t, errors.SignatureVerificationFailed.Code, e.Code)

		_, err = nodeRunner.Ledger().VoterStatus(target.Address())
		require.Equal(t, errors.VoterDoesNotExist, err)
	}

	{ // phase operations stay admin-only
		kp, cmd := command.TestMakeCommand(networkID, operation.StartProposals{})
		require.NotEqual(t, admin.Address(), kp.Address())
		data, _ := cmd.Serialize()

		_, err := runChecker(data)
		require.Error(t, err)

		e, ok := err.(*errors.Error)
		require.True(t, ok)
		require.Equal(t, errors.Unauthorized.Code, e.Code)

		phase, err := nodeRunner.Ledger().CurrentPhase()
		require.NoError(t, err)
		require.Equal(t, campaign.PhaseRegisteringVoters, phase)
	}

	{ // ledger guards reject a duplicate registration
		target := keypair.Random()
		cmd := command.TestMakeCommandWithKeypair(networkID, admin, operation.NewRegisterVoter(target.Address()))
		data, _ := cmd.Serialize()

		_, err := runChecker(data)
		require.NoError(t, err)

		cmd = command.TestMakeCommandWithKeypair(networkID, admin, operation.NewRegisterVoter(target.Address()))
		data, _ = cmd.Serialize()

		_, err = runChecker(data)
		require.Error(t, err)

		e, ok := err.(*errors.Error)
		require.True(t, ok)
		require.Equal(t, errors.PreconditionNotMet.Code, e.Code)
	}
}
