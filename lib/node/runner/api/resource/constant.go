package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLCampaign        = APIPrefix + APIVersionV1 + "/campaign"
	URLVoters          = APIPrefix + APIVersionV1 + "/voters"
	URLVoterByAddress  = APIPrefix + APIVersionV1 + "/voters/{id}"
	URLVoterChoice     = APIPrefix + APIVersionV1 + "/voters/{id}/choice"
	URLProposals       = APIPrefix + APIVersionV1 + "/proposals"
	URLProposalByIndex = APIPrefix + APIVersionV1 + "/proposals/{id}"
	URLWinner          = APIPrefix + APIVersionV1 + "/winner"
	URLCommands        = APIPrefix + APIVersionV1 + "/commands"
)
