package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "fusionbench",
	Short: "Decode quantum error-correction syndromes via minimum-weight matching",
	Long: `fusionbench runs a minimum-weight perfect matching decoder over
a syndrome graph, serially or partitioned across a fusion tree, and
reports per-round timing in the profile format this tool defines.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
