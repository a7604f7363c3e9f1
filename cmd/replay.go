package cmd

import (
	"github.com/spf13/cobra"

	"firestige.xyz/strix/internal/config"
)

var replayFile string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a pcap capture file",
	Long: `
Replay a previously recorded pcap file and print the annotated timeline,
using the recorded timestamps for offsets and round-trip times.

Examples:
  strix replay -f ping.pcap
  strix replay -f ping.pcap -c strix.yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runCapture(func(cfg *config.Config) {
			cfg.Capture.Source = "file"
			if replayFile != "" {
				cfg.Capture.FilePath = replayFile
			}
		})
		if err != nil {
			exitWithError("replay failed", err)
		}
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayFile, "file", "f", "", "pcap file to replay")
	rootCmd.AddCommand(replayCmd)
}
