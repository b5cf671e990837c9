package campaign

import (
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/storage"
)

// GuardChecker runs the caller, phase and domain guards of one
// operation against the loaded campaign. The guards run strictly before
// any effect, so a rejected operation leaves the storage untouched.
type GuardChecker struct {
	common.DefaultChecker

	St       *storage.LevelDBBackend
	Conf     common.Config
	Campaign *Campaign

	Source      string
	Required    Phase
	Address     string
	Description string
	ProposalId  uint64

	Voter *Voter
}

var (
	AddVoterCheckerFuncs = []common.CheckerFunc{
		CheckSourceIsAdmin,
		CheckPhase,
		CheckVoterNotRegistered,
	}
	OpenProposalsCheckerFuncs = []common.CheckerFunc{
		CheckSourceIsAdmin,
		CheckPhase,
		CheckHasVoters,
	}
	SubmitProposalCheckerFuncs = []common.CheckerFunc{
		CheckPhase,
		CheckSourceEligible,
		CheckDescriptionUnique,
		CheckProposalsLimit,
	}
	CloseProposalsCheckerFuncs = []common.CheckerFunc{
		CheckSourceIsAdmin,
		CheckPhase,
		CheckHasProposals,
	}
	OpenVotingCheckerFuncs = []common.CheckerFunc{
		CheckSourceIsAdmin,
		CheckPhase,
	}
	CastVoteCheckerFuncs = []common.CheckerFunc{
		CheckPhase,
		CheckSourceEligible,
		CheckProposalIdValid,
	}
	CloseVotingCheckerFuncs = []common.CheckerFunc{
		CheckSourceIsAdmin,
		CheckPhase,
	}
	TallyVotesCheckerFuncs = []common.CheckerFunc{
		CheckSourceIsAdmin,
		CheckPhase,
	}
	ResetCampaignCheckerFuncs = []common.CheckerFunc{
		CheckSourceIsAdmin,
		CheckResettablePhase,
	}
)

// CheckSourceIsAdmin allows only the campaign administrator.
func CheckSourceIsAdmin(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	if checker.Campaign.Admin != checker.Source {
		return errors.Unauthorized
	}

	return
}

// CheckPhase requires the campaign to sit exactly at the phase the
// operation is defined for.
func CheckPhase(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	if checker.Campaign.Phase != checker.Required {
		return errors.InvalidTransition.Clone().
			SetData("phase", checker.Campaign.Phase.String()).
			SetData("required", checker.Required.String())
	}

	return
}

// CheckResettablePhase allows a reset from any phase except the initial
// one.
func CheckResettablePhase(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	if checker.Campaign.Phase == PhaseRegisteringVoters {
		return errors.InvalidTransition.Clone().
			SetData("phase", checker.Campaign.Phase.String())
	}

	return
}

// CheckVoterNotRegistered rejects a duplicate registration. An identity
// left over from a previous generation passes, as long as the reset
// cleared its eligibility flag; the loaded record is kept so that the
// re-registration does not append to the created order again.
func CheckVoterNotRegistered(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	voter, err := GetVoter(checker.St, checker.Address)
	if err == errors.VoterDoesNotExist {
		return nil
	} else if err != nil {
		return err
	}

	if voter.Registered {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "voter is already registered")
	}
	checker.Voter = voter

	return nil
}

// CheckSourceEligible loads the source voter and requires a registered,
// not-yet-voted one.
func CheckSourceEligible(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	voter, err := GetVoter(checker.St, checker.Source)
	if err == errors.VoterDoesNotExist {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "source is not a registered voter")
	} else if err != nil {
		return err
	}

	if !voter.Registered {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "source is not a registered voter")
	}
	if voter.Voted {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "source already voted")
	}
	checker.Voter = voter

	return nil
}

// CheckHasVoters requires at least one registered voter.
func CheckHasVoters(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	if checker.Campaign.TotalVoters < 1 {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "no voter is registered")
	}

	return
}

// CheckHasProposals requires at least one submitted proposal.
func CheckHasProposals(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	if checker.Campaign.TotalProposals < 1 {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "no proposal is submitted")
	}

	return
}

// CheckDescriptionUnique rejects a proposal whose description already
// exists in the current generation. The match is exact and
// case-sensitive.
func CheckDescriptionUnique(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	exists, err := ExistsProposalDescription(checker.St, checker.Description)
	if err != nil {
		return err
	}
	if exists {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "proposal description already exists")
	}

	return nil
}

// CheckProposalsLimit caps the proposals of one generation.
func CheckProposalsLimit(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	if checker.Conf.ProposalsLimit > 0 && checker.Campaign.TotalProposals >= uint64(checker.Conf.ProposalsLimit) {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "proposals limit reached").
			SetData("limit", checker.Conf.ProposalsLimit)
	}

	return
}

// CheckProposalIdValid requires the ballot to point inside the proposal
// sequence of the current generation.
func CheckProposalIdValid(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*GuardChecker)

	if checker.ProposalId >= checker.Campaign.TotalProposals {
		return errors.PreconditionNotMet.Clone().
			SetData("reason", "proposal id is out of range").
			SetData("proposal-id", checker.ProposalId)
	}

	return
}
