// ABOUTME: Root cobra command for ltctool
// ABOUTME: Registers subcommands and the shared config flag
package commands

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ltctool",
	Short: "LTC frame and configuration utility",
	Long: `ltctool inspects and builds raw LTC frames, computes frame alignment
for a sample rate and manages the LTCSync configuration file.

Configuration is stored in ~/.ltcsync/config.yaml`,
	SilenceUsage: true,
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ltcsync/config.yaml)")

	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
