// Package cmd wires the RoofTally CLI: measurement import, geometry
// validation, material takeoff, document rendering, and exports.
package cmd

import (
	"fmt"
	"os"

	"github.com/rooftally/rooftally/internal/version"
	"github.com/spf13/cobra"
)

var quotesDir string

var rootCmd = &cobra.Command{
	Use:   "rooftally",
	Short: "Roofing measurement takeoff and estimating tool",
	Long: `rooftally - Roofing Material Takeoff

A CLI tool for roofing contractors that turns roof measurement reports
into validated, priced material lists.

This tool helps estimators perform:
  - Measurement report import (CSV / Excel)
  - Footprint geometry validation and consistency checks
  - Packaged material quantity derivation with waste
  - Estimate PDF, supplier order, and footprint drawing export
  - Document snippet rendering from takeoff scalars`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Printf("  rooftally v%s\n", version.Version)
		fmt.Println("  Roofing Material Takeoff")
		fmt.Println()
		fmt.Println("  Import a measurement report, validate the roof geometry,")
		fmt.Println("  and derive a priced material order in one pass.")
		fmt.Println()
		fmt.Println("  Use 'rooftally --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&quotesDir, "quotes-dir", "", "Directory quotes are stored in (default ~/.rooftally/quotes)")
}
