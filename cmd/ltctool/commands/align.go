// ABOUTME: align subcommand for ltctool
// ABOUTME: Prints samples per frame and the LTC to video frame alignment
package commands

import (
	"fmt"

	"github.com/ltcsync/ltcsync-go/pkg/ltc"
	"github.com/spf13/cobra"
)

var (
	alignSPF      float64
	alignRate     int
	alignFPS      float64
	alignStandard string
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Show how many samples LTC frames trail video frames",
	Long: `Show how many samples the start of an LTC frame trails the start of the
video frame it belongs to. Pass --spf directly, or --rate and --fps.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if alignFPS <= 0 {
			return fmt.Errorf("--fps must be positive")
		}

		spf := alignSPF
		if spf == 0 {
			if alignRate <= 0 {
				return fmt.Errorf("either --spf or --rate is required")
			}
			spf = float64(alignRate) / alignFPS
		}
		if spf < 0 {
			return fmt.Errorf("--spf must be positive")
		}

		std := ltc.StandardForFPS(alignFPS)
		if alignStandard != "" {
			var err error
			if std, err = ltc.ParseStandard(alignStandard); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "standard:          %s\n", std)
		fmt.Fprintf(out, "samples per frame: %.3f\n", spf)
		fmt.Fprintf(out, "samples per bit:   %.3f\n", spf/ltc.FrameBits)
		fmt.Fprintf(out, "alignment:         %d samples\n", ltc.FrameAlignment(spf, std))
		return nil
	},
}

func init() {
	alignCmd.Flags().Float64Var(&alignSPF, "spf", 0, "audio samples per video frame")
	alignCmd.Flags().IntVar(&alignRate, "rate", 0, "audio sample rate")
	alignCmd.Flags().Float64Var(&alignFPS, "fps", 25, "video frame rate")
	alignCmd.Flags().StringVar(&alignStandard, "standard", "", "TV standard (default derived from --fps)")
}
