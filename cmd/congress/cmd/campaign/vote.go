package campaign

import (
	"strconv"

	"github.com/spf13/cobra"

	"boscoin.io/congress/lib/command/operation"

	cmdcommon "boscoin.io/congress/cmd/congress/common"
)

var VoteCmd *cobra.Command

func init() {
	VoteCmd = &cobra.Command{
		Use:   "vote <proposal index> <voter secret seed>",
		Short: "Cast a ballot for a proposal",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			proposalId, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<proposal index>", err)
			}

			kp := parseSecretSeed(c, "<voter secret seed>", args[1])
			submit(c, kp, operation.NewCastVote(proposalId))
		},
	}
	addClientFlags(VoteCmd)
}
