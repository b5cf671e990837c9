package runner

import (
	"fmt"
	"time"

	"github.com/ulule/limiter"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/node"
	"boscoin.io/congress/lib/version"
)

// NewNodeInfo builds the static node document behind `GET /`. The live
// parts, the node state and the campaign summary, are refreshed by the API
// handler at serving time.
func NewNodeInfo(nr *NodeRunner) node.NodeInfo {
	localNode := nr.Node()

	var endpoint *common.Endpoint
	if localNode.PublishEndpoint() != nil {
		endpoint = localNode.PublishEndpoint()
	}

	nv := node.NodeVersion{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		GitState:  version.GitState,
		BuildDate: version.BuildDate,
	}

	nd := node.NodeInfoNode{
		Version:  nv,
		Started:  common.NowISO8601(),
		State:    localNode.State(),
		Alias:    localNode.Alias(),
		Address:  localNode.Address(),
		Endpoint: endpoint,
	}

	policy := node.NodePolicy{
		NetworkID:         string(nr.NetworkID()),
		CommandVersion:    nr.Conf.CommandVersion,
		ProposalsLimit:    nr.Conf.ProposalsLimit,
		RateLimitRuleAPI:  FormatRateLimitRule(nr.Conf.RateLimitRuleAPI),
		RateLimitRuleNode: FormatRateLimitRule(nr.Conf.RateLimitRuleNode),
	}

	return node.NodeInfo{
		Node:   nd,
		Policy: policy,
	}
}

// FormatRateLimitRule renders the default rate of a rule in the notation
// of `limiter.NewRateFromFormatted`, like "100-M".
func FormatRateLimitRule(rule common.RateLimitRule) string {
	return FormatRate(rule.Default)
}

func FormatRate(rate limiter.Rate) string {
	if len(rate.Formatted) > 0 {
		return rate.Formatted
	}

	var period string
	switch rate.Period {
	case time.Second:
		period = "S"
	case time.Minute:
		period = "M"
	case time.Hour:
		period = "H"
	default:
		return fmt.Sprintf("%d-%s", rate.Limit, rate.Period)
	}

	return fmt.Sprintf("%d-%s", rate.Limit, period)
}
