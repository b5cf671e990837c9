package api

import (
	"fmt"
	"net/http"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/network/httputils"
	"boscoin.io/congress/lib/node"
)

// GetNodeInfoHandler serves the static node document refreshed with the
// live node state and the campaign summary of the moment. When the node
// was configured without a published endpoint, the URL the client used
// fills the gap.
func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	nodeInfo := api.nodeInfo
	nodeInfo.Node.State = api.localNode.State()

	if nodeInfo.Node.Endpoint == nil {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}

		endpoint, err := common.NewEndpointFromString(fmt.Sprintf("%s://%s", scheme, r.Host))
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		nodeInfo.Node.Endpoint = endpoint
	}

	if c, err := api.ledger.Campaign(); err == nil {
		nodeInfo.Campaign = node.NodeCampaignInfo{
			Admin:      c.Admin,
			Phase:      c.Phase.String(),
			Generation: c.Generation,
			Voters:     c.TotalVoters,
			Proposals:  c.TotalProposals,
			Votes:      c.TotalVotes,
		}
	}

	httputils.MustWriteJSON(w, 200, nodeInfo)
}
