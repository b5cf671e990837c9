package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/command"
	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
)

// TestNodeRunnerHandleCommandMessage drives one whole generation through
// the command pipeline a network message goes through.
func TestNodeRunnerHandleCommandMessage(t *testing.T) {
	nodeRunner, admin := MakeNodeRunner()
	defer nodeRunner.Storage().Close()

	apply := func(kp *keypair.Full, opb operation.Body) (common.Serializable, error) {
		cmd := command.TestMakeCommandWithKeypair(networkID, kp, opb)
		data, err := cmd.Serialize()
		require.NoError(t, err)

		return nodeRunner.handleCommandMessage(common.NetworkMessage{Type: common.CommandMessage, Data: data})
	}

	voters := []*keypair.Full{keypair.Random(), keypair.Random(), keypair.Random()}
	for _, kp := range voters {
		result, err := apply(admin, operation.NewRegisterVoter(kp.Address()))
		require.NoError(t, err)

		voter, ok := result.(*campaign.Voter)
		require.True(t, ok)
		require.Equal(t, kp.Address(), voter.Address)
	}

	_, err := apply(admin, operation.StartProposals{})
	require.NoError(t, err)

	_, err = apply(voters[0], operation.NewSubmitProposal("fund the library"))
	require.NoError(t, err)
	_, err = apply(voters[1], operation.NewSubmitProposal("repave the road"))
	require.NoError(t, err)

	_, err = apply(admin, operation.EndProposals{})
	require.NoError(t, err)
	_, err = apply(admin, operation.StartVoting{})
	require.NoError(t, err)

	_, err = apply(voters[0], operation.NewCastVote(1))
	require.NoError(t, err)
	_, err = apply(voters[1], operation.NewCastVote(1))
	require.NoError(t, err)
	_, err = apply(voters[2], operation.NewCastVote(0))
	require.NoError(t, err)

	_, err = apply(admin, operation.EndVoting{})
	require.NoError(t, err)

	result, err := apply(admin, operation.TallyVotes{})
	require.NoError(t, err)

	c, ok := result.(*campaign.Campaign)
	require.True(t, ok)
	require.Equal(t, campaign.PhaseVotesTallied, c.Phase)
	require.True(t, c.WinnerElected)
	require.Equal(t, uint64(1), c.WinningProposalId)

	winner, err := nodeRunner.Ledger().Winner()
	require.NoError(t, err)
	require.Equal(t, uint64(1), winner)
}

// TestNodeRunnerMemoryNetworkMessage sends a command over the memory
// network and waits for the runner to apply it.
func TestNodeRunnerMemoryNetworkMessage(t *testing.T) {
	nodeRunner, admin := MakeNodeRunner()
	defer nodeRunner.Storage().Close()

	go nodeRunner.Start()
	defer nodeRunner.Stop()

	client := nodeRunner.Network().GetClient(nodeRunner.Network().Endpoint())

	target := keypair.Random()
	cmd := command.TestMakeCommandWithKeypair(networkID, admin, operation.NewRegisterVoter(target.Address()))
	_, err := client.SendMessage(cmd)
	require.NoError(t, err)

	// the message path applies asynchronously
	var saved *campaign.Voter
	for i := 0; i < 100; i++ {
		if saved, err = nodeRunner.Ledger().VoterStatus(target.Address()); err == nil {
			break
		}
		time.Sleep(time.Millisecond * 10)
	}
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.True(t, saved.Registered)
}
