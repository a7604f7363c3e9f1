package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/strix/internal/config"
	"firestige.xyz/strix/internal/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the configuration file without starting a capture.

Prints the effective configuration (defaults applied) on success. This is
useful for pre-checking a config before deploying it.

Examples:
  strix validate
  strix validate -c strix.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadAndValidate(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}

		out, err := yaml.Marshal(struct {
			Strix *config.Config `yaml:"strix"`
		}{cfg})
		if err != nil {
			exitWithError("failed to render effective config", err)
		}

		fmt.Printf("VALID: %s\n\n%s", configFile, out)
	},
}

// loadAndValidate loads the config and additionally compiles the BPF
// filter, which config.Validate leaves to the capture sources.
func loadAndValidate(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateFilter(cfg.Capture.BpfFilter, cfg.Capture.SnapLen); err != nil {
		return nil, fmt.Errorf("capture.bpf_filter: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
