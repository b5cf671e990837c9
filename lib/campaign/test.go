// Provides test utilities for the campaign package and the packages
// depending on it
package campaign

import (
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/storage"
)

func TestMakeLedger(admin string) *Ledger {
	return TestMakeLedgerWithConfig(admin, common.NewTestConfig())
}

func TestMakeLedgerWithConfig(admin string, conf common.Config) *Ledger {
	st := storage.NewTestStorage()
	if _, err := MakeGenesisCampaign(st, admin); err != nil {
		panic(err)
	}

	return NewLedger(st, conf)
}

// TestDriveLedger replays one whole generation on a fresh ledger: one
// voter is registered for every ballot, the descriptions are submitted
// by the first voter and the ballots are cast, moving the phases along
// until the votes are tallied. ballots[i] is the proposal index the
// i-th voter votes for; a negative ballot means the voter abstains. At
// least one ballot entry is required, voting or not.
func TestDriveLedger(lg *Ledger, admin string, descriptions []string, ballots []int) ([]*keypair.Full, error) {
	var voters []*keypair.Full
	for range ballots {
		kp := keypair.Random()
		if _, err := lg.AddVoter(admin, kp.Address()); err != nil {
			return nil, err
		}
		voters = append(voters, kp)
	}

	if _, err := lg.OpenProposalsRegistration(admin); err != nil {
		return nil, err
	}
	for _, description := range descriptions {
		if _, err := lg.SubmitProposal(voters[0].Address(), description); err != nil {
			return nil, err
		}
	}
	if _, err := lg.CloseProposalsRegistration(admin); err != nil {
		return nil, err
	}

	if _, err := lg.OpenVotingSession(admin); err != nil {
		return nil, err
	}
	for i, ballot := range ballots {
		if ballot < 0 {
			continue
		}
		if _, err := lg.Vote(voters[i].Address(), uint64(ballot)); err != nil {
			return nil, err
		}
	}
	if _, err := lg.CloseVotingSession(admin); err != nil {
		return nil, err
	}

	if _, err := lg.StartCounting(admin); err != nil {
		return nil, err
	}

	return voters, nil
}
