package cmd

import "github.com/spf13/cobra"

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Print the allocation matrix as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport("csv")
	},
}
