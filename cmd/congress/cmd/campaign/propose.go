package campaign

import (
	"github.com/spf13/cobra"

	"boscoin.io/congress/lib/command/operation"
)

var ProposeCmd *cobra.Command

func init() {
	ProposeCmd = &cobra.Command{
		Use:   "propose <description> <proposer secret seed>",
		Short: "Submit a new proposal",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			kp := parseSecretSeed(c, "<proposer secret seed>", args[1])
			submit(c, kp, operation.NewSubmitProposal(args[0]))
		},
	}
	addClientFlags(ProposeCmd)
}
