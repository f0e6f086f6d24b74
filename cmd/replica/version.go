package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/replica"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of replica",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "replica version %s\n", strings.TrimSpace(replica.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
