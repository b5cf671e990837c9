package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/storage"

	cmdcommon "boscoin.io/congress/cmd/congress/common"
)

var genesisCmd *cobra.Command

func init() {
	genesisCmd = &cobra.Command{
		Use:   "genesis <admin public key>",
		Short: "initialize a new campaign",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			flagName, err := MakeCampaignGenesis(args[0], flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully created the genesis campaign")
		},
	}

	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")

	rootCmd.AddCommand(genesisCmd)
}

//
// Create the genesis campaign record owned by the given administrator
//
// This function is separate, and public, to allow it to be used from other
// commands (at the moment, only `node --genesis`) so it can provide the same
// behavior (defaults, error messages).
//
// Params:
//   addressStr    = public address of the account administering the campaign
//   storageString = `--storage` argument; when empty the env value and then
//                   the current directory are tried, in that order
//
// Returns:
//   If an error happened, returns a tuple of (string, error).
//   The string argument represents the name of the flag which errored,
//   and error is the more detailed error.
//   Note that only one needs be non-`nil` for it to be considered an error.
//
func MakeCampaignGenesis(addressStr, storageString string) (string, error) {
	var err error

	var kp keypair.KP
	if kp, err = keypair.Parse(addressStr); err != nil {
		return "<admin public key>", err
	}

	// Use the default value
	if len(storageString) == 0 {
		// We try to get the env value first, before doing IO which could fail
		storageString = common.GetENVValue("CONGRESS_STORAGE", "")
		// No env, use the default (current directory)
		if len(storageString) == 0 {
			if currentDirectory, err := os.Getwd(); err == nil {
				if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
					storageString = fmt.Sprintf("file://%s/db", currentDirectory)
				}
			}
			// If any of the previous condition failed
			if len(storageString) == 0 {
				return "--storage", err
			}
		}
	}

	var storageConfig *storage.Config
	if storageConfig, err = storage.NewConfigFromString(storageString); err != nil {
		return "--storage", err
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return "--storage", fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer st.Close()

	if _, err = campaign.MakeGenesisCampaign(st, kp.Address()); err != nil {
		return "<admin public key>", err
	}

	return "", nil
}
