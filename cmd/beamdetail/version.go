package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/schedule"
	"github.com/piwi3910/BeamDetail/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of beamdetail",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		fmt.Fprintln(out, "Reinforced concrete beam detailing")
		fmt.Fprintf(out, "Label languages: %v\n", schedule.Languages())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
