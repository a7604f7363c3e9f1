// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "strix",
	Short: "Strix - Live traffic annotator for ARP and ICMP echo exchanges",
	Long: `Strix listens on a network interface (or replays a capture file), decodes
Ethernet, ARP, IPv4 and ICMP traffic, pairs requests with their replies and
prints an annotated, human-readable timeline of every exchange.

Features:
  - ARP request/reply correlation with resolution latency
  - ICMP echo request/reply correlation with round-trip times
  - Timeout detection for unanswered requests
  - Live capture (libpcap or AF_PACKET) and offline pcap replay
  - Ping statistics summary and optional Prometheus metrics`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml",
		"config file path")
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
