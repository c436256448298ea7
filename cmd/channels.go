package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/eegplot-cli/internal/channels"
	"github.com/spf13/cobra"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Show the column naming rules used to detect channels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		labels := channels.EEGLabels()
		fmt.Fprintf(out, "EEG labels (%d, exact match):\n  %s\n", len(labels), strings.Join(labels, " "))
		fmt.Fprintln(out, "Time: first column whose lower-cased name starts with \"time\"")
		fmt.Fprintln(out, "ECG:  columns starting with X1 or X2, or containing LEOG or REOG (case-insensitive)")
		fmt.Fprintln(out, "CM:   first column named \"cm\" (case-insensitive)")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}
