package campaign

import (
	"github.com/spf13/cobra"

	"boscoin.io/congress/lib/command/operation"
)

var (
	StartProposalsCmd *cobra.Command
	EndProposalsCmd   *cobra.Command
	StartVotingCmd    *cobra.Command
	EndVotingCmd      *cobra.Command
	TallyCmd          *cobra.Command
	ResetCmd          *cobra.Command
)

// newPhaseCmd makes one administrator-only command advancing the
// workflow with the given operation.
func newPhaseCmd(use, short string, opb operation.Body) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <administrator secret seed>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			kp := parseSecretSeed(c, "<administrator secret seed>", args[0])
			submit(c, kp, opb)
		},
	}
	addClientFlags(c)

	return c
}

func init() {
	StartProposalsCmd = newPhaseCmd("start-proposals", "Open the proposals registration", operation.StartProposals{})
	EndProposalsCmd = newPhaseCmd("end-proposals", "Close the proposals registration", operation.EndProposals{})
	StartVotingCmd = newPhaseCmd("start-voting", "Open the voting session", operation.StartVoting{})
	EndVotingCmd = newPhaseCmd("end-voting", "Close the voting session", operation.EndVoting{})
	TallyCmd = newPhaseCmd("tally", "Count the ballots and elect the winner", operation.TallyVotes{})
	ResetCmd = newPhaseCmd("reset", "Reset the campaign for a new generation", operation.ResetCampaign{})
}
