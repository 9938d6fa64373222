package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTracePack/pkg/pdsc"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <pdsc-file-or-directory>",
	Short: "Summarize the devices in one or more PDSC files",
	Long: `Print one summary line per device found in a PDSC file, or in every
.pdsc file under a directory.

Examples:
  pdsc info Keil.STM32F4xx_DFP.pdsc
  pdsc info packs/`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	target := args[0]

	stat, err := os.Stat(target)
	if err != nil {
		return err
	}

	var paths []string
	if stat.IsDir() {
		err := filepath.WalkDir(target, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdsc") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .pdsc files under %s", target)
		}
	} else {
		paths = []string{target}
	}

	parser := pdsc.NewParser()
	for _, path := range paths {
		devices, err := parser.ParseFile(path)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
			}
			continue
		}

		fmt.Printf("%s: %d device(s)\n", path, len(devices))
		for _, name := range devices.Names() {
			dev := devices[name]
			fmt.Printf("  %-24s family=%s%s cores=%s memories=%d algorithms=%d\n",
				dev.Name, dev.Family, subFamilySuffix(dev), coreList(dev),
				len(dev.Memories), len(dev.Algorithms))
		}
	}
	return nil
}

func subFamilySuffix(dev pdsc.Device) string {
	if dev.SubFamily == "" {
		return ""
	}
	return "/" + dev.SubFamily
}

// coreList renders the device's cores, collapsing repeated units of the
// same core into a xN count.
func coreList(dev pdsc.Device) string {
	counts := make(map[pdsc.Core]int)
	var order []pdsc.Core
	for _, proc := range dev.Processors {
		if counts[proc.Core] == 0 {
			order = append(order, proc.Core)
		}
		counts[proc.Core]++
	}

	parts := make([]string, 0, len(order))
	for _, core := range order {
		if n := counts[core]; n > 1 {
			parts = append(parts, fmt.Sprintf("%sx%d", core, n))
		} else {
			parts = append(parts, core.String())
		}
	}
	return strings.Join(parts, ",")
}
