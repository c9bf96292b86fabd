package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/bones"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bones version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "bonesview", bones.Version)
	},
}
