package operation

import (
	"boscoin.io/congress/lib/common"
)

// The phase operations carry no payload; the operation type alone names the
// transition. Guards run in the ledger against the stored campaign.

type StartProposals struct{}

func (o StartProposals) IsWellFormed(common.Config) (err error) {
	return
}

type EndProposals struct{}

func (o EndProposals) IsWellFormed(common.Config) (err error) {
	return
}

type StartVoting struct{}

func (o StartVoting) IsWellFormed(common.Config) (err error) {
	return
}

type EndVoting struct{}

func (o EndVoting) IsWellFormed(common.Config) (err error) {
	return
}

type TallyVotes struct{}

func (o TallyVotes) IsWellFormed(common.Config) (err error) {
	return
}

type ResetCampaign struct{}

func (o ResetCampaign) IsWellFormed(common.Config) (err error) {
	return
}
