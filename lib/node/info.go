package node

import (
	"encoding/json"

	"boscoin.io/congress/lib/common"
)

type NodeInfo struct {
	Node     NodeInfoNode     `json:"node"`
	Policy   NodePolicy       `json:"policy"`
	Campaign NodeCampaignInfo `json:"campaign"`
}

type NodeInfoNode struct {
	Version  NodeVersion      `json:"version"`
	Started  string           `json:"started"`
	State    State            `json:"state"`
	Alias    string           `json:"alias"`
	Address  string           `json:"address"`
	Endpoint *common.Endpoint `json:"endpoint"`
}

type NodePolicy struct {
	NetworkID         string `json:"network-id"`
	CommandVersion    string `json:"command-version"`
	ProposalsLimit    int    `json:"proposals-limit"` // proposals limit in a generation; 0 means unlimited
	RateLimitRuleAPI  string `json:"rate-limit-api"`
	RateLimitRuleNode string `json:"rate-limit-node"`
}

// NodeCampaignInfo carries the campaign summary of the moment the info was
// served; it goes stale the moment an operation lands.
type NodeCampaignInfo struct {
	Admin      string `json:"admin"`
	Phase      string `json:"phase"`
	Generation uint64 `json:"generation"`
	Voters     uint64 `json:"voters"`
	Proposals  uint64 `json:"proposals"`
	Votes      uint64 `json:"votes"`
}

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}

func NewNodeInfoFromJSON(b []byte) (nodeInfo NodeInfo, err error) {
	err = json.Unmarshal(b, &nodeInfo)
	return
}
