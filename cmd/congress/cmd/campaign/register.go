package campaign

import (
	"fmt"

	"github.com/spf13/cobra"

	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common/keypair"

	cmdcommon "boscoin.io/congress/cmd/congress/common"
)

var RegisterCmd *cobra.Command

func init() {
	RegisterCmd = &cobra.Command{
		Use:   "register <voter public key> <administrator secret seed>",
		Short: "Register a voter identity",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			target, err := keypair.Parse(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<voter public key>", err)
			}
			if _, ok := target.(*keypair.Full); ok {
				cmdcommon.PrintFlagsError(c, "<voter public key>", fmt.Errorf("provided key is a secret seed, not an address"))
			}

			kp := parseSecretSeed(c, "<administrator secret seed>", args[1])
			submit(c, kp, operation.NewRegisterVoter(target.Address()))
		},
	}
	addClientFlags(RegisterCmd)
}
