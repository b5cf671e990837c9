package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
)

func TestCommandSignAndVerify(t *testing.T) {
	_, cmd := TestMakeCommand(networkID, operation.NewCastVote(0))

	require.NoError(t, cmd.IsWellFormed(common.NewTestConfig()))
}

func TestCommandSignedForAnotherNetwork(t *testing.T) {
	_, cmd := TestMakeCommand([]byte("congress-mainnet"), operation.NewCastVote(0))

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.SignatureVerificationFailed, err)
}

func TestCommandTamperedBody(t *testing.T) {
	_, cmd := TestMakeCommand(networkID, operation.NewSubmitProposal("lower the quorum"))

	cmd.B.Operation.B = operation.NewSubmitProposal("raise the quorum")

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.HashDoesNotMatch, err)
}

func TestCommandTamperedSignature(t *testing.T) {
	_, cmd := TestMakeCommand(networkID, operation.NewCastVote(2))

	// Re-sign with a key that does not own the source address.
	other := keypair.Random()
	cmd.Sign(other, networkID)

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.SignatureVerificationFailed, err)
}

func TestCommandVersionMismatch(t *testing.T) {
	_, cmd := TestMakeCommand(networkID, operation.NewCastVote(0))
	cmd.H.Version = "0"

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.MessageVersionNotMatched, err)
}

func TestCommandBadType(t *testing.T) {
	_, cmd := TestMakeCommand(networkID, operation.NewCastVote(0))
	cmd.T = "transaction"

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.InvalidMessage, err)
}

func TestCommandCreatedOutsideWindow(t *testing.T) {
	kp := keypair.Random()

	cmd, err := NewCommand(kp.Address(), operation.NewCastVote(0))
	require.NoError(t, err)

	cmd.H.Created = "2018-01-01T00:00:00.000000000Z"
	cmd.Sign(kp, networkID)

	err = cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.MessageHasIncorrectTime, err)
}

func TestCommandBadSource(t *testing.T) {
	_, cmd := TestMakeCommand(networkID, operation.NewCastVote(0))
	cmd.B.Source = "not-an-address"
	cmd.H.Hash = cmd.B.MakeHashString()

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.BadPublicAddress, err)
}

func TestCommandBodyTypeMismatch(t *testing.T) {
	kp, cmd := TestMakeCommand(networkID, operation.NewCastVote(0))

	cmd.B.Operation.H.Type = operation.TypeSubmitProposal
	cmd.Sign(kp, networkID)

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.TypeOperationBodyNotMatched, err)
}

func TestCommandSerializeRoundTrip(t *testing.T) {
	kp, cmd := TestMakeCommand(networkID, operation.NewRegisterVoter(keypair.Random().Address()))

	encoded, err := cmd.Serialize()
	require.NoError(t, err)

	var decoded Command
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	require.Equal(t, cmd.GetHash(), decoded.GetHash())
	require.Equal(t, kp.Address(), decoded.Source())
	require.Equal(t, operation.TypeRegisterVoter, decoded.OperationType())
	require.True(t, cmd.Equal(decoded))

	_, ok := decoded.B.Operation.B.(operation.RegisterVoter)
	require.True(t, ok)

	require.NoError(t, decoded.IsWellFormed(common.NewTestConfig()))
}

func TestCommandInvalidOperationBody(t *testing.T) {
	_, cmd := TestMakeCommand(networkID, operation.NewRegisterVoter("not-an-address"))

	err := cmd.IsWellFormed(common.NewTestConfig())
	require.Equal(t, errors.BadPublicAddress, err)
}
