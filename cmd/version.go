package cmd

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rooftally",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rooftally v%s\n", version.Version)
		fmt.Println("Roofing Material Takeoff")
		if version.GitCommit != "unknown" {
			fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
