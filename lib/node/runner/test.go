package runner

import (
	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/network"
)

var networkID []byte = []byte("congress-unittest")

// MakeNodeRunner makes a running-ready NodeRunner over a memory network
// with a fresh genesis campaign. The returned keypair is the campaign
// administrator.
func MakeNodeRunner() (*NodeRunner, *keypair.Full) {
	n, localNode := network.CreateMemoryNetwork(nil)

	admin := keypair.Random()
	conf := common.NewTestConfig()
	lg := campaign.TestMakeLedgerWithConfig(admin.Address(), conf)

	nodeRunner, err := NewNodeRunner(localNode, n, lg, conf)
	if err != nil {
		panic(err)
	}

	return nodeRunner, admin
}
