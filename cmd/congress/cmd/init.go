package cmd

import (
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/congress/cmd/congress/common"
)

var rootCmd = &cobra.Command{
	Use:   os.Args[0],
	Short: "congress",
	Run: func(c *cobra.Command, args []string) {
		if len(args) < 1 {
			c.Usage()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cmdcommon.PrintFlagsError(rootCmd, "", err)
	}
}

func SetArgs(s []string) {
	rootCmd.SetArgs(s)
}
