package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pdsc",
	Short: "CMSIS-Pack PDSC Device Catalog Parser",
	Long: `Parses CMSIS-Pack device descriptions (PDSC) into a flat catalog of
microcontroller devices: memory maps, flash algorithms, processors, and
debug access ports, with family/subFamily/device/variant inheritance
fully resolved.

Examples:
  pdsc parse Keil.STM32F4xx_DFP.pdsc                  # Dump the catalog as JSON
  pdsc parse --format yaml --device STM32F407VG x.pdsc
  pdsc info packs/                                    # Summarize all packs in a directory`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
