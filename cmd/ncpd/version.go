package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ncpd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ncpd " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
