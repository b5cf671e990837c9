package campaign

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/storage"
)

func requireErrorCode(t *testing.T, expected *errors.Error, err error) {
	require.Error(t, err)
	actual, ok := err.(*errors.Error)
	require.True(t, ok, "unexpected error type: %T", err)
	require.Equal(t, expected.Code, actual.Code, "expected %q, got %q", expected.Message, actual.Message)
}

func TestLedgerAddVoter(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	kp := keypair.Random()
	voter, err := lg.AddVoter(admin.Address(), kp.Address())
	require.NoError(t, err)
	require.True(t, voter.Registered)
	require.False(t, voter.Voted)

	// registering twice never works
	_, err = lg.AddVoter(admin.Address(), kp.Address())
	requireErrorCode(t, errors.PreconditionNotMet, err)

	// only the administrator registers voters
	_, err = lg.AddVoter(kp.Address(), keypair.Random().Address())
	requireErrorCode(t, errors.Unauthorized, err)

	c, err := lg.Campaign()
	require.NoError(t, err)
	require.Equal(t, uint64(1), c.TotalVoters)
}

func TestLedgerOpenProposalsRegistration(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	// an empty voter registry blocks the first transition
	_, err := lg.OpenProposalsRegistration(admin.Address())
	requireErrorCode(t, errors.PreconditionNotMet, err)

	phase, err := lg.CurrentPhase()
	require.NoError(t, err)
	require.Equal(t, PhaseRegisteringVoters, phase)

	_, err = lg.AddVoter(admin.Address(), keypair.Random().Address())
	require.NoError(t, err)

	c, err := lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)
	require.Equal(t, PhaseProposalsRegistrationStarted, c.Phase)
	require.Equal(t, PhaseRegisteringVoters, c.PreviousPhase)

	// registration closed now
	_, err = lg.AddVoter(admin.Address(), keypair.Random().Address())
	requireErrorCode(t, errors.InvalidTransition, err)
}

func TestLedgerUnauthorizedLeavesPhaseUntouched(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	_, err := lg.AddVoter(admin.Address(), keypair.Random().Address())
	require.NoError(t, err)

	_, err = lg.OpenProposalsRegistration(keypair.Random().Address())
	requireErrorCode(t, errors.Unauthorized, err)

	phase, err := lg.CurrentPhase()
	require.NoError(t, err)
	require.Equal(t, PhaseRegisteringVoters, phase)
}

func TestLedgerSubmitProposal(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	voter := keypair.Random()
	_, err := lg.AddVoter(admin.Address(), voter.Address())
	require.NoError(t, err)

	// not open yet
	_, err = lg.SubmitProposal(voter.Address(), "open the archive")
	requireErrorCode(t, errors.InvalidTransition, err)

	_, err = lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)

	// only registered voters submit; the administrator holds no ballot
	_, err = lg.SubmitProposal(admin.Address(), "open the archive")
	requireErrorCode(t, errors.PreconditionNotMet, err)

	p, err := lg.SubmitProposal(voter.Address(), "open the archive")
	require.NoError(t, err)
	require.Equal(t, uint64(0), p.Index)
	require.Equal(t, voter.Address(), p.Proposer)

	_, err = lg.SubmitProposal(voter.Address(), "open the archive")
	requireErrorCode(t, errors.PreconditionNotMet, err)

	p, err = lg.SubmitProposal(voter.Address(), "close the archive")
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.Index)
}

func TestLedgerCloseProposalsRequiresOne(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	_, err := lg.AddVoter(admin.Address(), keypair.Random().Address())
	require.NoError(t, err)
	_, err = lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)

	_, err = lg.CloseProposalsRegistration(admin.Address())
	requireErrorCode(t, errors.PreconditionNotMet, err)

	phase, err := lg.CurrentPhase()
	require.NoError(t, err)
	require.Equal(t, PhaseProposalsRegistrationStarted, phase)
}

func TestLedgerVote(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	alice := keypair.Random()
	bob := keypair.Random()
	for _, kp := range []*keypair.Full{alice, bob} {
		_, err := lg.AddVoter(admin.Address(), kp.Address())
		require.NoError(t, err)
	}

	_, err := lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)
	_, err = lg.SubmitProposal(alice.Address(), "first")
	require.NoError(t, err)
	_, err = lg.SubmitProposal(alice.Address(), "second")
	require.NoError(t, err)
	_, err = lg.CloseProposalsRegistration(admin.Address())
	require.NoError(t, err)

	// voting session not open yet
	_, err = lg.Vote(alice.Address(), 0)
	requireErrorCode(t, errors.InvalidTransition, err)

	_, err = lg.OpenVotingSession(admin.Address())
	require.NoError(t, err)

	// out of range ballot
	_, err = lg.Vote(alice.Address(), 2)
	requireErrorCode(t, errors.PreconditionNotMet, err)

	// never registered
	_, err = lg.Vote(keypair.Random().Address(), 0)
	requireErrorCode(t, errors.PreconditionNotMet, err)

	voter, err := lg.Vote(alice.Address(), 1)
	require.NoError(t, err)
	require.True(t, voter.Voted)
	require.Equal(t, uint64(1), voter.Choice)

	// one ballot per voter
	_, err = lg.Vote(alice.Address(), 0)
	requireErrorCode(t, errors.PreconditionNotMet, err)

	p, err := lg.ProposalByIndex(1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.Votes)

	_, err = lg.CloseVotingSession(admin.Address())
	require.NoError(t, err)

	_, err = lg.Vote(bob.Address(), 0)
	requireErrorCode(t, errors.InvalidTransition, err)
}

func TestLedgerEndToEnd(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	a, b, c := keypair.Random(), keypair.Random(), keypair.Random()
	for _, kp := range []*keypair.Full{a, b, c} {
		_, err := lg.AddVoter(admin.Address(), kp.Address())
		require.NoError(t, err)
	}

	_, err := lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)
	_, err = lg.SubmitProposal(a.Address(), "Alpha")
	require.NoError(t, err)
	_, err = lg.SubmitProposal(b.Address(), "Beta")
	require.NoError(t, err)
	_, err = lg.CloseProposalsRegistration(admin.Address())
	require.NoError(t, err)

	_, err = lg.OpenVotingSession(admin.Address())
	require.NoError(t, err)
	_, err = lg.Vote(a.Address(), 0)
	require.NoError(t, err)
	_, err = lg.Vote(b.Address(), 1)
	require.NoError(t, err)
	_, err = lg.Vote(c.Address(), 1)
	require.NoError(t, err)
	_, err = lg.CloseVotingSession(admin.Address())
	require.NoError(t, err)

	// no winner readable before the count
	_, err = lg.Winner()
	requireErrorCode(t, errors.NoWinnerAvailable, err)

	tallied, err := lg.StartCounting(admin.Address())
	require.NoError(t, err)
	require.Equal(t, PhaseVotesTallied, tallied.Phase)
	require.True(t, tallied.WinnerElected)

	winner, err := lg.Winner()
	require.NoError(t, err)
	require.Equal(t, uint64(1), winner)

	details, err := lg.WinnerDetails()
	require.NoError(t, err)
	require.Equal(t, "Beta", details.Description)
	require.Equal(t, uint64(2), details.Votes)

	choice, err := lg.VoterChoice(a.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(0), choice)
}

func TestLedgerTallyTie(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	_, err := TestDriveLedger(lg, admin.Address(), []string{"left", "right"}, []int{0, 1})
	require.NoError(t, err)

	c, err := lg.Campaign()
	require.NoError(t, err)
	require.Equal(t, PhaseVotesTallied, c.Phase)
	require.False(t, c.WinnerElected)
	require.Equal(t, uint64(1), c.MaxVotes)

	_, err = lg.Winner()
	requireErrorCode(t, errors.NoWinnerAvailable, err)
	_, err = lg.WinnerDetails()
	requireErrorCode(t, errors.NoWinnerAvailable, err)
}

func TestLedgerTallyWithoutVotes(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	_, err := TestDriveLedger(lg, admin.Address(), []string{"only"}, []int{-1, -1})
	require.NoError(t, err)

	c, err := lg.Campaign()
	require.NoError(t, err)
	require.False(t, c.WinnerElected)
	require.Equal(t, uint64(0), c.MaxVotes)

	_, err = lg.Winner()
	requireErrorCode(t, errors.NoWinnerAvailable, err)
}

func TestLedgerVoterChoiceGate(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	alice := keypair.Random()
	bob := keypair.Random()
	for _, kp := range []*keypair.Full{alice, bob} {
		_, err := lg.AddVoter(admin.Address(), kp.Address())
		require.NoError(t, err)
	}
	_, err := lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)
	_, err = lg.SubmitProposal(alice.Address(), "single")
	require.NoError(t, err)
	_, err = lg.CloseProposalsRegistration(admin.Address())
	require.NoError(t, err)
	_, err = lg.OpenVotingSession(admin.Address())
	require.NoError(t, err)
	_, err = lg.Vote(alice.Address(), 0)
	require.NoError(t, err)

	// choices stay sealed while the session runs
	_, err = lg.VoterChoice(alice.Address())
	requireErrorCode(t, errors.InvalidTransition, err)

	_, err = lg.CloseVotingSession(admin.Address())
	require.NoError(t, err)

	choice, err := lg.VoterChoice(alice.Address())
	require.NoError(t, err)
	require.Equal(t, uint64(0), choice)

	// bob abstained
	_, err = lg.VoterChoice(bob.Address())
	requireErrorCode(t, errors.PreconditionNotMet, err)

	// unknown target
	_, err = lg.VoterChoice(keypair.Random().Address())
	requireErrorCode(t, errors.PreconditionNotMet, err)
}

func TestLedgerReset(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	// no reset edge out of the initial phase
	_, err := lg.Reset(admin.Address())
	requireErrorCode(t, errors.InvalidTransition, err)

	voters, err := TestDriveLedger(lg, admin.Address(), []string{"Alpha", "Beta"}, []int{0, 1, 1})
	require.NoError(t, err)

	_, err = lg.Reset(keypair.Random().Address())
	requireErrorCode(t, errors.Unauthorized, err)

	c, err := lg.Reset(admin.Address())
	require.NoError(t, err)
	require.Equal(t, PhaseRegisteringVoters, c.Phase)
	require.Equal(t, PhaseVotesTallied, c.PreviousPhase)
	require.Equal(t, uint64(2), c.Generation)
	require.Equal(t, uint64(0), c.TotalVoters)
	require.Equal(t, uint64(0), c.TotalProposals)
	require.False(t, c.WinnerElected)

	// the proposals are gone
	var proposals int
	err = lg.WalkProposals(storage.NewDefaultListOptions(false, nil, 0), func(*Proposal, []byte) (bool, error) {
		proposals++
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, proposals)

	_, err = lg.Winner()
	requireErrorCode(t, errors.NoWinnerAvailable, err)

	// the identities survive with cleared flags
	var listed []Voter
	err = lg.WalkVoters(storage.NewDefaultListOptions(false, nil, 0), func(v *Voter, _ []byte) (bool, error) {
		listed = append(listed, *v)
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, len(voters), len(listed))
	for _, v := range listed {
		require.False(t, v.Registered)
		require.False(t, v.Voted)
		require.Equal(t, uint64(0), v.Choice)
	}

	// re-registration reuses the identity without a second entry in
	// the created order
	_, err = lg.AddVoter(admin.Address(), voters[0].Address())
	require.NoError(t, err)

	listed = listed[:0]
	err = lg.WalkVoters(storage.NewDefaultListOptions(false, nil, 0), func(v *Voter, _ []byte) (bool, error) {
		listed = append(listed, *v)
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, len(voters), len(listed))
	require.Equal(t, voters[0].Address(), listed[0].Address)
	require.True(t, listed[0].Registered)

	// a fresh generation can run through a whole campaign again
	_, err = lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)
	p, err := lg.SubmitProposal(voters[0].Address(), "Alpha")
	require.NoError(t, err)
	require.Equal(t, uint64(0), p.Index)
}

func TestLedgerProposalsLimit(t *testing.T) {
	admin := keypair.Random()
	conf := common.NewTestConfig()
	conf.ProposalsLimit = 2
	lg := TestMakeLedgerWithConfig(admin.Address(), conf)

	voter := keypair.Random()
	_, err := lg.AddVoter(admin.Address(), voter.Address())
	require.NoError(t, err)
	_, err = lg.OpenProposalsRegistration(admin.Address())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = lg.SubmitProposal(voter.Address(), fmt.Sprintf("proposal %d", i))
		require.NoError(t, err)
	}

	_, err = lg.SubmitProposal(voter.Address(), "one too many")
	requireErrorCode(t, errors.PreconditionNotMet, err)
}

func TestLedgerConcurrentRegistration(t *testing.T) {
	admin := keypair.Random()
	lg := TestMakeLedger(admin.Address())

	var mutex sync.Mutex
	var registered []string

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		kp := keypair.Random()
		g.Go(func() error {
			if _, err := lg.AddVoter(admin.Address(), kp.Address()); err != nil {
				return err
			}
			mutex.Lock()
			registered = append(registered, kp.Address())
			mutex.Unlock()

			_, err := lg.CurrentPhase()
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 20, len(registered))

	c, err := lg.Campaign()
	require.NoError(t, err)
	require.Equal(t, uint64(20), c.TotalVoters)
}
