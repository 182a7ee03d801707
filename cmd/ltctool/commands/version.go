// ABOUTME: version subcommand for ltctool
// ABOUTME: Prints the product name and version
package commands

import (
	"fmt"
	"runtime"

	"github.com/ltcsync/ltcsync-go/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintf(cmd.OutOrStdout(), "  go: %s\n", runtime.Version())
	},
}
