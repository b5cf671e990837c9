package campaign

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/congress/lib/client"
	"boscoin.io/congress/lib/command"
	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"

	cmdcommon "boscoin.io/congress/cmd/congress/common"
)

var (
	flagNetworkID string = common.GetENVValue("CONGRESS_NETWORK_ID", "")
	flagEndpoint  string = common.GetENVValue("CONGRESS_ENDPOINT", "https://127.0.0.1:12345")
)

func addClientFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node to talk to")
	c.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
}

// parseSecretSeed parses a positional secret seed argument; the matching
// public address becomes the command source.
func parseSecretSeed(c *cobra.Command, name, seed string) *keypair.Full {
	kp, err := keypair.Parse(seed)
	if err != nil {
		cmdcommon.PrintFlagsError(c, name, err)
	}
	full, ok := kp.(*keypair.Full)
	if !ok {
		cmdcommon.PrintFlagsError(c, name, fmt.Errorf("provided key is an address, not a secret seed"))
	}

	return full
}

func newClient(c *cobra.Command) *client.Client {
	endpoint, err := common.ParseEndpoint(flagEndpoint)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "--endpoint", err)
	}

	return client.NewClient(endpoint.String())
}

// submit signs one operation with kp and posts it to the node. Flag
// mistakes exit through the usage printer; a rejection or a network
// failure goes to stderr with the problem the node answered.
func submit(c *cobra.Command, kp *keypair.Full, opb operation.Body) {
	if len(flagNetworkID) == 0 {
		cmdcommon.PrintFlagsError(c, "--network-id", fmt.Errorf("a --network-id needs to be provided"))
	}

	cmd, err := command.NewCommand(kp.Address(), opb)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}
	cmd.Sign(kp, []byte(flagNetworkID))

	body, err := cmd.Serialize()
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	ack, err := newClient(c).SubmitCommand(body)
	if err != nil {
		if rejected, ok := err.(client.Error); ok {
			fmt.Fprintf(os.Stderr, "command rejected: %s (code=%d)\n", rejected.Problem.Title, rejected.Problem.ErrorCode())
			if len(rejected.Problem.Detail) > 0 {
				fmt.Fprintln(os.Stderr, rejected.Problem.Detail)
			}
		} else {
			fmt.Fprintf(os.Stderr, "network error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("%s %s: hash=%s source=%s\n", ack.Type, ack.Status, ack.Hash, ack.Source)
}
