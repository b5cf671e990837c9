package campaign

import (
	"encoding/json"

	"boscoin.io/congress/lib/errors"
)

// Phase is the workflow status of the campaign. The phases are strictly
// ordered and only move along the single forward edge, except the reset
// edge which returns the campaign to PhaseRegisteringVoters from any
// later phase.
type Phase uint

const (
	PhaseRegisteringVoters Phase = iota
	PhaseProposalsRegistrationStarted
	PhaseProposalsRegistrationEnded
	PhaseVotingSessionStarted
	PhaseVotingSessionEnded
	PhaseVotesTallied
)

var phaseNames = map[Phase]string{
	PhaseRegisteringVoters:            "registering-voters",
	PhaseProposalsRegistrationStarted: "proposals-registration-started",
	PhaseProposalsRegistrationEnded:   "proposals-registration-ended",
	PhaseVotingSessionStarted:         "voting-session-started",
	PhaseVotingSessionEnded:           "voting-session-ended",
	PhaseVotesTallied:                 "votes-tallied",
}

func (p Phase) String() string {
	if name, found := phaseNames[p]; found {
		return name
	}

	return "unknown"
}

func (p Phase) IsValid() bool {
	_, found := phaseNames[p]
	return found
}

// CanTransitTo reports whether the edge from p to next exists. Forward
// edges never skip a phase and PhaseVotesTallied has no forward edge;
// the only way back to PhaseRegisteringVoters is the reset edge, which
// does not exist in the initial phase.
func (p Phase) CanTransitTo(next Phase) bool {
	if !p.IsValid() || !next.IsValid() {
		return false
	}
	if next == PhaseRegisteringVoters {
		return p != PhaseRegisteringVoters
	}

	return next == p+1
}

func ParsePhase(name string) (Phase, error) {
	for phase, phaseName := range phaseNames {
		if phaseName == name {
			return phase, nil
		}
	}

	return Phase(0), errors.InvalidMessage.Clone().SetData("phase", name)
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	parsed, err := ParsePhase(name)
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}
