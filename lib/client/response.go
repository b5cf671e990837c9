package client

import (
	"strconv"
	"strings"
)

// Problem mirrors the RFC 7807 document the api answers errors with. The
// coded errors of the node carry their code in the tail of Type.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// ErrorCode picks the coded-error number out of the problem type URI; it
// returns 0 when the problem does not carry one.
func (p Problem) ErrorCode() uint64 {
	i := strings.LastIndex(p.Type, "/")
	if i < 0 {
		return 0
	}
	code, err := strconv.ParseUint(p.Type[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return code
}

type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	return e.Problem.Title
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Campaign struct {
	Links struct {
		Self      Link `json:"self"`
		Voters    Link `json:"voters"`
		Proposals Link `json:"proposals"`
		Winner    Link `json:"winner"`
	} `json:"_links"`

	Admin          string `json:"admin"`
	Phase          string `json:"phase"`
	PreviousPhase  string `json:"previous_phase"`
	Generation     uint64 `json:"generation"`
	TotalVoters    uint64 `json:"total_voters"`
	TotalProposals uint64 `json:"total_proposals"`
	TotalVotes     uint64 `json:"total_votes"`
	WinnerElected  bool   `json:"winner_elected"`
	Created        string `json:"created"`
	Confirmed      string `json:"confirmed"`
}

type Voter struct {
	Links struct {
		Self   Link `json:"self"`
		Choice Link `json:"choice"`
	} `json:"_links"`

	Address    string `json:"address"`
	Registered bool   `json:"registered"`
	Voted      bool   `json:"voted"`
	Choice     uint64 `json:"choice"`
	Created    string `json:"created"`
}

type VotersPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Voter `json:"records"`
	} `json:"_embedded"`
}

type VoterChoice struct {
	Links struct {
		Self     Link `json:"self"`
		Proposal Link `json:"proposal"`
	} `json:"_links"`

	Address string `json:"address"`
	Choice  uint64 `json:"choice"`
}

type Proposal struct {
	Links struct {
		Self     Link `json:"self"`
		Proposer Link `json:"proposer"`
	} `json:"_links"`

	Index       uint64 `json:"index"`
	Description string `json:"description"`
	Votes       uint64 `json:"votes"`
	Proposer    string `json:"proposer"`
	Created     string `json:"created"`
}

type ProposalsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Proposal `json:"records"`
	} `json:"_embedded"`
}

type Winner struct {
	Links struct {
		Self     Link `json:"self"`
		Proposal Link `json:"proposal"`
	} `json:"_links"`

	ProposalId  uint64 `json:"proposal_id"`
	Description string `json:"description"`
	Votes       uint64 `json:"votes"`
}

// CommandPost is the acknowledgement for an applied command.
type CommandPost struct {
	Links struct {
		Self     Link `json:"self"`
		Campaign Link `json:"campaign"`
	} `json:"_links"`

	Hash   string `json:"hash"`
	Type   string `json:"type"`
	Source string `json:"source"`
	Status string `json:"status"`
}
