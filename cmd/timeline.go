package cmd

import "github.com/spf13/cobra"

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the timed running order as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport("timeline-csv")
	},
}
