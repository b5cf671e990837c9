package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter"

	"boscoin.io/congress/lib/common"
)

func TestFormatRate(t *testing.T) {
	require.Equal(t, "100-M", FormatRate(limiter.Rate{Period: time.Minute, Limit: 100}))
	require.Equal(t, "100-S", FormatRate(limiter.Rate{Period: time.Second, Limit: 100}))
	require.Equal(t, "10-H", FormatRate(limiter.Rate{Period: time.Hour, Limit: 10}))

	// an already formatted rate keeps its notation
	rate, err := limiter.NewRateFromFormatted("7-M")
	require.NoError(t, err)
	require.Equal(t, "7-M", FormatRate(rate))
}

func TestNewNodeInfo(t *testing.T) {
	nodeRunner, _ := MakeNodeRunner()
	defer nodeRunner.Storage().Close()

	nodeInfo := NewNodeInfo(nodeRunner)

	require.Equal(t, nodeRunner.Node().Alias(), nodeInfo.Node.Alias)
	require.Equal(t, nodeRunner.Node().Address(), nodeInfo.Node.Address)
	require.Nil(t, nodeInfo.Node.Endpoint)

	require.Equal(t, string(nodeRunner.NetworkID()), nodeInfo.Policy.NetworkID)
	require.Equal(t, common.CommandVersion, nodeInfo.Policy.CommandVersion)
	require.Equal(t, common.DefaultProposalsLimit, nodeInfo.Policy.ProposalsLimit)
	require.Equal(t, "100-M", nodeInfo.Policy.RateLimitRuleAPI)
	require.Equal(t, "100-S", nodeInfo.Policy.RateLimitRuleNode)
}

func TestNewNodeInfoPublishEndpoint(t *testing.T) {
	nodeRunner, _ := MakeNodeRunner()
	defer nodeRunner.Storage().Close()

	publishEndpoint := common.MustParseEndpoint("https://committee.example.com:12345")
	nodeRunner.Node().SetPublishEndpoint(publishEndpoint)

	nodeInfo := NewNodeInfo(nodeRunner)
	require.Equal(t, publishEndpoint, nodeInfo.Node.Endpoint)
}
