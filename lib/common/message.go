package common

type MessageType string

const (
	ConnectMessage MessageType = "connect"
	CommandMessage MessageType = "command"
)

// NetworkMessage is the raw message the network layer hands over to the
// node runner.
type NetworkMessage struct {
	Type MessageType
	Data []byte
}

func (t NetworkMessage) String() string {
	return string(t.Data)
}

func (t NetworkMessage) IsEmpty() bool {
	return len(t.Data) < 1
}

func (t NetworkMessage) Head(n int) NetworkMessage {
	s := t.Data
	if len(s) > n {
		s = s[:n]
	}

	return NetworkMessage{Type: t.Type, Data: s}
}

func NewNetworkMessage(mt MessageType, data []byte) NetworkMessage {
	return NetworkMessage{Type: mt, Data: data}
}
