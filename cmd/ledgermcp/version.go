package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftware/ledgermcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ledgermcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ledgermcp version %s\n", ledgermcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
