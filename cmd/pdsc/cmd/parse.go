package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTracePack/pkg/pdsc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat string
	deviceName   string
)

var parseCmd = &cobra.Command{
	Use:   "parse <pdsc-file>",
	Short: "Parse a PDSC file and dump the resolved device catalog",
	Long: `Parse a PDSC file, resolve the device hierarchy, and dump the flat
catalog. By default the whole catalog is written as JSON; --device selects
a single record.

Examples:
  pdsc parse Keil.STM32F4xx_DFP.pdsc
  pdsc parse --format yaml pack.pdsc
  pdsc parse --device STM32H745ZI pack.pdsc`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", "json",
		"output format: json or yaml")
	parseCmd.Flags().StringVarP(&deviceName, "device", "d", "",
		"dump a single device by name")
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if verbose {
		fmt.Printf("Parsing PDSC file: %s\n\n", filename)
	}

	parser := pdsc.NewParser()
	devices, err := parser.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	var payload any = devices
	if deviceName != "" {
		dev, ok := devices[deviceName]
		if !ok {
			return fmt.Errorf("no device %q in %s", deviceName, filename)
		}
		payload = dev
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", outputFormat)
	}
}
