package campaign

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/congress/lib/client"

	cmdcommon "boscoin.io/congress/cmd/congress/common"
)

var ShowCmd *cobra.Command

var flagFormat string = "prettyjson"

type campaignView struct {
	Campaign client.Campaign `json:"campaign"`
	Winner   *client.Winner  `json:"winner,omitempty"`
}

func init() {
	ShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the campaign state",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			encode, found := cmdcommon.DefaultEncodes[flagFormat]
			if !found {
				var availables []string
				for name := range cmdcommon.DefaultEncodes {
					availables = append(availables, name)
				}
				sort.Strings(availables)
				cmdcommon.PrintFlagsError(c, "--format", fmt.Errorf("unknown format; one of %s", strings.Join(availables, " ")))
			}

			cli := newClient(c)
			summary, err := cli.LoadCampaign()
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load the campaign: %v\n", err)
				os.Exit(1)
			}

			view := campaignView{Campaign: summary}
			if summary.WinnerElected {
				winner, err := cli.LoadWinner()
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to load the winner: %v\n", err)
					os.Exit(1)
				}
				view.Winner = &winner
			}

			if err := encode(view, os.Stdout); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}
	ShowCmd.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node to talk to")
	ShowCmd.Flags().StringVar(&flagFormat, "format", flagFormat, "output format {json, prettyjson, yaml}")
}
