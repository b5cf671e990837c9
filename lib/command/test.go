package command

import (
	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common/keypair"
)

// Matches the network id of common.NewTestConfig so signed test commands
// verify against the test config.
var networkID []byte = []byte("congress-unittest")

func TestMakeCommand(networkID []byte, opb operation.Body) (kp *keypair.Full, cmd Command) {
	kp = keypair.Random()

	cmd, _ = NewCommand(kp.Address(), opb)
	cmd.Sign(kp, networkID)

	return
}

func TestMakeCommandWithKeypair(networkID []byte, kp *keypair.Full, opb operation.Body) (cmd Command) {
	cmd, _ = NewCommand(kp.Address(), opb)
	cmd.Sign(kp, networkID)

	return
}
