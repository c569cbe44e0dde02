package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ringback",
	Short: "Missed-call text-back backend",
	Long: `ringback runs the onboarding and access API for the missed-call text-back product.

Subcommands:
  serve      - Start the HTTP API
  industries - Print the supported industry catalog
  classify   - Check whether a setup would need manual provisioning`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, industriesCmd, classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
