// Command ncpd runs an NMOS control-protocol device endpoint: it builds the
// object tree, starts the event fanout task, and binds the WebSocket control
// channel and the IS-04 discovery surface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ncpd",
	Short: "NMOS control-protocol device endpoint",
	Long: `ncpd serves the NMOS Control Protocol (MS-05 over IS-12) for a single
device: a WebSocket control channel for commands, subscriptions, and
property-changed notifications, plus a read-only IS-04 node discovery
surface.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
