package network

import (
	"boscoin.io/congress/lib/common"
)

type MemoryNetworkClient struct {
	endpoint *common.Endpoint

	server *MemoryNetwork
}

func NewMemoryNetworkClient(endpoint *common.Endpoint, server *MemoryNetwork) *MemoryNetworkClient {
	return &MemoryNetworkClient{
		endpoint: endpoint,
		server:   server,
	}
}

func (m *MemoryNetworkClient) Endpoint() *common.Endpoint {
	return m.endpoint
}

func (m *MemoryNetworkClient) Connect(node common.Serializable) (b []byte, err error) {
	b = m.server.GetNodeInfo()
	return
}

func (m *MemoryNetworkClient) GetNodeInfo() (b []byte, err error) {
	b = m.server.GetNodeInfo()
	return
}

func (m *MemoryNetworkClient) SendMessage(message common.Serializable) (b []byte, err error) {
	var s []byte
	if s, err = message.Serialize(); err != nil {
		return
	}
	err = m.server.Send(common.CommandMessage, s)

	return
}
