package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"firestige.xyz/strix/internal/config"
)

var startDevice string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start live capture on a network interface",
	Long: `
Start live capture and print the annotated traffic timeline.

The capture source, interface and BPF filter come from the config file;
the --device flag overrides the configured interface. Press Ctrl-C to stop;
pending exchanges are flushed and the ping statistics summary is printed.

Examples:
  strix start                     # Capture using config.yaml
  strix start -c strix.yaml       # Capture using strix.yaml
  strix start -d eth0             # Capture on eth0, other settings from config
`,
	Run: func(cmd *cobra.Command, args []string) {
		pid := os.Getpid()
		if err := os.WriteFile("/tmp/strix.pid", []byte(strconv.Itoa(pid)), 0644); err != nil {
			exitWithError("failed to write pid file", err)
		}
		defer os.Remove("/tmp/strix.pid")

		err := runCapture(func(cfg *config.Config) {
			if startDevice != "" {
				cfg.Capture.Device = startDevice
			}
			if cfg.Capture.Source == "file" {
				// start is live-only; replay handles capture files.
				cfg.Capture.Source = "pcap"
			}
		})
		if err != nil {
			exitWithError("capture failed", err)
		}
	},
}

func init() {
	startCmd.Flags().StringVarP(&startDevice, "device", "d", "", "network interface to capture on")
	rootCmd.AddCommand(startCmd)
}
