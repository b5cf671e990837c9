package cmd

import (
	"boscoin.io/congress/cmd/congress/cmd/campaign"

	"github.com/spf13/cobra"
)

var (
	campaignCmd *cobra.Command
)

func init() {
	campaignCmd = &cobra.Command{
		Use:   "campaign",
		Short: "CLI for driving a remote campaign",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaign.ShowCmd)
	campaignCmd.AddCommand(campaign.RegisterCmd)
	campaignCmd.AddCommand(campaign.ProposeCmd)
	campaignCmd.AddCommand(campaign.VoteCmd)
	campaignCmd.AddCommand(campaign.StartProposalsCmd)
	campaignCmd.AddCommand(campaign.EndProposalsCmd)
	campaignCmd.AddCommand(campaign.StartVotingCmd)
	campaignCmd.AddCommand(campaign.EndVotingCmd)
	campaignCmd.AddCommand(campaign.TallyCmd)
	campaignCmd.AddCommand(campaign.ResetCmd)
}
