package campaign

import (
	"math"
	"strconv"
	"sync"
	"time"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/observer"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/metrics"
	"boscoin.io/congress/lib/storage"
)

// Ledger owns the campaign state machine. Every operation runs with
// serializable, single-writer semantics behind one RWMutex: the guards
// run strictly before the effects and the effects of one operation are
// applied in one storage transaction, so no caller observes a partially
// applied state.
type Ledger struct {
	sync.RWMutex

	st   *storage.LevelDBBackend
	conf common.Config
}

func NewLedger(st *storage.LevelDBBackend, conf common.Config) *Ledger {
	return &Ledger{
		st:   st,
		conf: conf,
	}
}

func (lg *Ledger) Storage() *storage.LevelDBBackend {
	return lg.st
}

func (lg *Ledger) check(c *Campaign, funcs []common.CheckerFunc, checker *GuardChecker, operation string) error {
	checker.DefaultChecker = common.DefaultChecker{Funcs: funcs}
	checker.St = lg.st
	checker.Conf = lg.conf
	checker.Campaign = c

	if err := common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		metrics.Campaign.AddOperationError(operation)
		log.Debug("operation rejected", "operation", operation, "source", checker.Source, "error", err)
		return err
	}

	return nil
}

// AddVoter registers a new voter identity while registration is open.
func (lg *Ledger) AddVoter(source, address string) (*Voter, error) {
	lg.Lock()
	defer lg.Unlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return nil, err
	}

	checker := &GuardChecker{
		Source:   source,
		Required: PhaseRegisteringVoters,
		Address:  address,
	}
	if err := lg.check(c, AddVoterCheckerFuncs, checker, "register-voter"); err != nil {
		return nil, err
	}

	voter := checker.Voter
	if voter == nil {
		voter = NewVoter(address)
	} else {
		voter.Registered = true
	}
	c.TotalVoters++

	ts, err := lg.st.OpenTransaction()
	if err != nil {
		return nil, err
	}
	if err := voter.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := c.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		ts.Discard()
		return nil, err
	}

	lg.triggerVoter(voter)
	metrics.Campaign.AddOperation("register-voter")
	metrics.Campaign.SetVoters(c.TotalVoters)
	log.Debug("voter registered", "address", address, "generation", c.Generation)

	return voter, nil
}

// SubmitProposal appends a new proposal while proposals registration is
// open. The new proposal takes the next index of the submission order.
func (lg *Ledger) SubmitProposal(source, description string) (*Proposal, error) {
	lg.Lock()
	defer lg.Unlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return nil, err
	}

	checker := &GuardChecker{
		Source:      source,
		Required:    PhaseProposalsRegistrationStarted,
		Description: description,
	}
	if err := lg.check(c, SubmitProposalCheckerFuncs, checker, "submit-proposal"); err != nil {
		return nil, err
	}

	proposal := NewProposal(c.TotalProposals, description, source)
	c.TotalProposals++

	ts, err := lg.st.OpenTransaction()
	if err != nil {
		return nil, err
	}
	if err := proposal.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := c.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		ts.Discard()
		return nil, err
	}

	lg.triggerProposal(proposal)
	metrics.Campaign.AddOperation("submit-proposal")
	metrics.Campaign.SetProposals(c.TotalProposals)
	log.Debug("proposal submitted", "index", proposal.Index, "proposer", source)

	return proposal, nil
}

// Vote records the choice of the source voter and increments the vote
// count of the chosen proposal.
func (lg *Ledger) Vote(source string, proposalId uint64) (*Voter, error) {
	lg.Lock()
	defer lg.Unlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return nil, err
	}

	checker := &GuardChecker{
		Source:     source,
		Required:   PhaseVotingSessionStarted,
		ProposalId: proposalId,
	}
	if err := lg.check(c, CastVoteCheckerFuncs, checker, "cast-vote"); err != nil {
		return nil, err
	}

	proposal, err := GetProposal(lg.st, proposalId)
	if err != nil {
		return nil, err
	}

	voter := checker.Voter
	voter.Voted = true
	voter.Choice = proposalId
	proposal.Votes++
	c.TotalVotes++

	ts, err := lg.st.OpenTransaction()
	if err != nil {
		return nil, err
	}
	if err := voter.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := proposal.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := c.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		ts.Discard()
		return nil, err
	}

	lg.triggerVoter(voter)
	lg.triggerProposal(proposal)
	metrics.Campaign.AddOperation("cast-vote")
	metrics.Campaign.SetVotes(c.TotalVotes)
	log.Debug("vote cast", "address", source, "proposal", proposalId)

	return voter, nil
}

func (lg *Ledger) OpenProposalsRegistration(source string) (*Campaign, error) {
	return lg.advance(source, "start-proposals", OpenProposalsCheckerFuncs, PhaseRegisteringVoters, PhaseProposalsRegistrationStarted)
}

func (lg *Ledger) CloseProposalsRegistration(source string) (*Campaign, error) {
	return lg.advance(source, "end-proposals", CloseProposalsCheckerFuncs, PhaseProposalsRegistrationStarted, PhaseProposalsRegistrationEnded)
}

func (lg *Ledger) OpenVotingSession(source string) (*Campaign, error) {
	return lg.advance(source, "start-voting", OpenVotingCheckerFuncs, PhaseProposalsRegistrationEnded, PhaseVotingSessionStarted)
}

func (lg *Ledger) CloseVotingSession(source string) (*Campaign, error) {
	return lg.advance(source, "end-voting", CloseVotingCheckerFuncs, PhaseVotingSessionStarted, PhaseVotingSessionEnded)
}

func (lg *Ledger) advance(source, operation string, funcs []common.CheckerFunc, required, next Phase) (*Campaign, error) {
	lg.Lock()
	defer lg.Unlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return nil, err
	}

	checker := &GuardChecker{
		Source:   source,
		Required: required,
	}
	if err := lg.check(c, funcs, checker, operation); err != nil {
		return nil, err
	}

	if err := c.MoveTo(next); err != nil {
		return nil, err
	}

	ts, err := lg.st.OpenTransaction()
	if err != nil {
		return nil, err
	}
	if err := c.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		ts.Discard()
		return nil, err
	}

	lg.triggerPhase(c)
	metrics.Campaign.AddOperation(operation)
	metrics.Campaign.SetPhase(uint(c.Phase))
	log.Info("phase moved", "previous", c.PreviousPhase, "phase", c.Phase, "operation", operation)

	return c, nil
}

// StartCounting moves the campaign into its terminal phase and counts
// the votes in the same unit of work.
func (lg *Ledger) StartCounting(source string) (*Campaign, error) {
	lg.Lock()
	defer lg.Unlock()

	begin := time.Now()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return nil, err
	}

	checker := &GuardChecker{
		Source:   source,
		Required: PhaseVotingSessionEnded,
	}
	if err := lg.check(c, TallyVotesCheckerFuncs, checker, "tally-votes"); err != nil {
		return nil, err
	}

	votes := make([]uint64, c.TotalProposals)
	err = WalkProposalsByIndex(lg.st, storage.NewWalkOption("", math.MaxUint64, false), func(p *Proposal) (bool, error) {
		if p.Index < uint64(len(votes)) {
			votes[p.Index] = p.Votes
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	result := Tally(votes)
	c.MaxVotes = result.MaxVotes
	if result.Elected {
		c.WinnerElected = true
		c.WinningProposalId = result.Winner
	}

	if err := c.MoveTo(PhaseVotesTallied); err != nil {
		return nil, err
	}

	ts, err := lg.st.OpenTransaction()
	if err != nil {
		return nil, err
	}
	if err := c.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		ts.Discard()
		return nil, err
	}

	lg.triggerPhase(c)
	lg.triggerWinner(c)
	metrics.Campaign.AddOperation("tally-votes")
	metrics.Campaign.SetPhase(uint(c.Phase))
	metrics.Campaign.ObserveTallySeconds(begin)
	log.Info("votes tallied",
		"max-votes", result.MaxVotes,
		"leaders", result.Leaders,
		"elected", result.Elected,
	)

	return c, nil
}

// Reset closes the current generation and returns the campaign to the
// initial phase. The proposals are removed; the voter identities stay
// enumerable and only lose their eligibility flags.
func (lg *Ledger) Reset(source string) (*Campaign, error) {
	lg.Lock()
	defer lg.Unlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return nil, err
	}

	checker := &GuardChecker{
		Source: source,
	}
	if err := lg.check(c, ResetCampaignCheckerFuncs, checker, "reset-campaign"); err != nil {
		return nil, err
	}

	var addresses []string
	err = WalkVoterAddressesByCreated(lg.st, storage.NewWalkOption("", math.MaxUint64, false), func(address string, key []byte) (bool, error) {
		addresses = append(addresses, address)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	var proposals []*Proposal
	err = WalkProposalsByIndex(lg.st, storage.NewWalkOption("", math.MaxUint64, false), func(p *Proposal) (bool, error) {
		proposals = append(proposals, p)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	ts, err := lg.st.OpenTransaction()
	if err != nil {
		return nil, err
	}
	for _, address := range addresses {
		voter, err := GetVoter(lg.st, address)
		if err != nil {
			ts.Discard()
			return nil, err
		}
		voter.Registered = false
		voter.Voted = false
		voter.Choice = 0
		if err := voter.Save(ts); err != nil {
			ts.Discard()
			return nil, err
		}
	}
	for _, proposal := range proposals {
		if err := proposal.Remove(ts); err != nil {
			ts.Discard()
			return nil, err
		}
	}

	c.Generation++
	c.TotalVoters = 0
	c.TotalProposals = 0
	c.TotalVotes = 0
	c.WinnerElected = false
	c.WinningProposalId = 0
	c.MaxVotes = 0
	if err := c.MoveTo(PhaseRegisteringVoters); err != nil {
		ts.Discard()
		return nil, err
	}

	if err := c.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		ts.Discard()
		return nil, err
	}

	lg.triggerPhase(c)
	metrics.Campaign.AddOperation("reset-campaign")
	metrics.Campaign.SetPhase(uint(c.Phase))
	metrics.Campaign.SetGeneration(c.Generation)
	metrics.Campaign.SetVoters(0)
	metrics.Campaign.SetProposals(0)
	metrics.Campaign.SetVotes(0)
	log.Info("campaign reset", "generation", c.Generation, "voters", len(addresses), "proposals", len(proposals))

	return c, nil
}

func (lg *Ledger) Campaign() (*Campaign, error) {
	lg.RLock()
	defer lg.RUnlock()

	return GetCampaign(lg.st)
}

func (lg *Ledger) CurrentPhase() (Phase, error) {
	lg.RLock()
	defer lg.RUnlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return PhaseRegisteringVoters, err
	}

	return c.Phase, nil
}

func (lg *Ledger) VoterStatus(address string) (*Voter, error) {
	lg.RLock()
	defer lg.RUnlock()

	return GetVoter(lg.st, address)
}

func (lg *Ledger) ProposalByIndex(index uint64) (*Proposal, error) {
	lg.RLock()
	defer lg.RUnlock()

	return GetProposal(lg.st, index)
}

// VoterChoice reveals the recorded choice of a voter. The choices only
// become readable once the voting session is over, and only for a
// voter which is still registered and has voted in this generation.
func (lg *Ledger) VoterChoice(address string) (uint64, error) {
	lg.RLock()
	defer lg.RUnlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return 0, err
	}
	if c.Phase < PhaseVotingSessionEnded {
		return 0, errors.InvalidTransition.Clone().
			SetData("phase", c.Phase.String())
	}

	voter, err := GetVoter(lg.st, address)
	if err == errors.VoterDoesNotExist {
		return 0, errors.PreconditionNotMet.Clone().
			SetData("reason", "target is not a registered voter")
	} else if err != nil {
		return 0, err
	}

	if !voter.Registered {
		return 0, errors.PreconditionNotMet.Clone().
			SetData("reason", "target is not a registered voter")
	}
	if !voter.Voted {
		return 0, errors.PreconditionNotMet.Clone().
			SetData("reason", "target has not voted")
	}

	return voter.Choice, nil
}

// Winner returns the index of the elected proposal. It fails with
// NoWinnerAvailable until the votes are tallied, and after a tallying
// which elected no winner.
func (lg *Ledger) Winner() (uint64, error) {
	lg.RLock()
	defer lg.RUnlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return 0, err
	}
	if c.Phase != PhaseVotesTallied || !c.WinnerElected {
		return 0, errors.NoWinnerAvailable
	}

	return c.WinningProposalId, nil
}

func (lg *Ledger) WinnerDetails() (*Proposal, error) {
	lg.RLock()
	defer lg.RUnlock()

	c, err := GetCampaign(lg.st)
	if err != nil {
		return nil, err
	}
	if c.Phase != PhaseVotesTallied || !c.WinnerElected {
		return nil, errors.NoWinnerAvailable
	}

	return GetProposal(lg.st, c.WinningProposalId)
}

func (lg *Ledger) WalkVoters(options storage.ListOptions, walkFunc func(*Voter, []byte) (bool, error)) error {
	lg.RLock()
	defer lg.RUnlock()

	iterFunc, closeFunc := GetVotersByCreated(lg.st, options)
	defer closeFunc()
	for {
		v, hasNext, key := iterFunc()
		if !hasNext {
			break
		}
		if next, err := walkFunc(&v, key); err != nil {
			return err
		} else if !next {
			break
		}
	}

	return nil
}

func (lg *Ledger) WalkProposals(options storage.ListOptions, walkFunc func(*Proposal, []byte) (bool, error)) error {
	lg.RLock()
	defer lg.RUnlock()

	iterFunc, closeFunc := GetProposalsByIndex(lg.st, options)
	defer closeFunc()
	for {
		p, hasNext, key := iterFunc()
		if !hasNext {
			break
		}
		if next, err := walkFunc(&p, key); err != nil {
			return err
		} else if !next {
			break
		}
	}

	return nil
}

func (lg *Ledger) triggerPhase(c *Campaign) {
	t := observer.ResourceObserver.Trigger
	cond := observer.NewCondition

	t(cond(observer.Camp, observer.All).Event(), c)
	t(cond(observer.Camp, observer.Phase).Event(), c)
	t(cond(observer.Camp, observer.Phase, c.Phase.String()).Event(), c)
}

func (lg *Ledger) triggerVoter(v *Voter) {
	t := observer.ResourceObserver.Trigger
	cond := observer.NewCondition

	t(cond(observer.Vt, observer.All).Event(), v)
	t(cond(observer.Vt, observer.Identifier, v.Address).Event(), v)
}

func (lg *Ledger) triggerProposal(p *Proposal) {
	t := observer.ResourceObserver.Trigger
	cond := observer.NewCondition

	t(cond(observer.Pr, observer.All).Event(), p)
	t(cond(observer.Pr, observer.Identifier, strconv.FormatUint(p.Index, 10)).Event(), p)
}

func (lg *Ledger) triggerWinner(c *Campaign) {
	t := observer.ResourceObserver.Trigger
	cond := observer.NewCondition

	t(cond(observer.Win, observer.All).Event(), c)
}
