package cmd

import (
	"fmt"

	"github.com/google/gopacket/pcap"
	"github.com/spf13/cobra"
)

var ifacesCmd = &cobra.Command{
	Use:   "ifaces",
	Short: "List capture-capable network interfaces",
	Run: func(cmd *cobra.Command, args []string) {
		devs, err := pcap.FindAllDevs()
		if err != nil {
			exitWithError("failed to list interfaces", err)
		}
		for _, dev := range devs {
			fmt.Printf("%s", dev.Name)
			if dev.Description != "" {
				fmt.Printf("  (%s)", dev.Description)
			}
			fmt.Println()
			for _, addr := range dev.Addresses {
				fmt.Printf("    %s\n", addr.IP)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(ifacesCmd)
}
