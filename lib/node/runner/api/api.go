package api

import (
	"fmt"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/network"
	"boscoin.io/congress/lib/node"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetCampaignHandlerPattern    = "/campaign"
	GetVotersHandlerPattern      = "/voters"
	GetVoterHandlerPattern       = "/voters/{id}"
	GetVoterChoiceHandlerPattern = "/voters/{id}/choice"
	GetProposalsHandlerPattern   = "/proposals"
	GetProposalHandlerPattern    = "/proposals/{id}"
	GetWinnerHandlerPattern      = "/winner"
	PostCommandsPattern          = "/commands"
	GetNodeInfoPattern           = "/"
	PostSubscribePattern         = "/subscribe"
)

type NetworkHandlerAPI struct {
	localNode *node.LocalNode
	network   network.Network
	ledger    *campaign.Ledger
	urlPrefix string
	version   string
	nodeInfo  node.NodeInfo
}

func NewNetworkHandlerAPI(localNode *node.LocalNode, network network.Network, ledger *campaign.Ledger, urlPrefix string, nodeInfo node.NodeInfo) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		localNode: localNode,
		network:   network,
		ledger:    ledger,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
		nodeInfo:  nodeInfo,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}
