package campaign

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/storage"
)

func TestMakeGenesisCampaign(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	kp := keypair.Random()
	c, err := MakeGenesisCampaign(st, kp.Address())
	require.NoError(t, err)
	require.Equal(t, kp.Address(), c.Admin)
	require.Equal(t, PhaseRegisteringVoters, c.Phase)
	require.Equal(t, uint64(1), c.Generation)
	require.False(t, c.WinnerElected)

	fetched, err := GetCampaign(st)
	require.NoError(t, err)
	require.Equal(t, *c, *fetched)

	_, err = MakeGenesisCampaign(st, kp.Address())
	require.Equal(t, errors.CampaignAlreadyExists, err)
}

func TestGetCampaignAbsent(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetCampaign(st)
	require.Equal(t, errors.CampaignDoesNotExist, err)
}

func TestCampaignMoveTo(t *testing.T) {
	c := NewCampaign(keypair.Random().Address())

	require.NoError(t, c.MoveTo(PhaseProposalsRegistrationStarted))
	require.Equal(t, PhaseRegisteringVoters, c.PreviousPhase)
	require.Equal(t, PhaseProposalsRegistrationStarted, c.Phase)

	// no skipping
	err := c.MoveTo(PhaseVotingSessionStarted)
	require.Error(t, err)
	require.Equal(t, errors.InvalidTransition.Code, err.(*errors.Error).Code)
	require.Equal(t, PhaseProposalsRegistrationStarted, c.Phase)

	// no reset edge out of the initial phase
	fresh := NewCampaign(keypair.Random().Address())
	err = fresh.MoveTo(PhaseRegisteringVoters)
	require.Error(t, err)
	require.Equal(t, errors.InvalidTransition.Code, err.(*errors.Error).Code)

	require.NoError(t, c.MoveTo(PhaseRegisteringVoters))
	require.Equal(t, PhaseProposalsRegistrationStarted, c.PreviousPhase)
	require.Equal(t, PhaseRegisteringVoters, c.Phase)
}

func TestCampaignRecordsRoundTripRLP(t *testing.T) {
	c := NewCampaign(keypair.Random().Address())
	common.CheckRoundTripRLP(t, *c)

	v := NewVoter(keypair.Random().Address())
	v.Voted = true
	v.Choice = 3
	common.CheckRoundTripRLP(t, *v)

	common.CheckRoundTripRLP(t, *NewProposal(0, "lower the quorum", keypair.Random().Address()))
}
