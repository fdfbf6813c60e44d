package main

import (
	"github.com/spf13/cobra"

	"github.com/tkoskela/toolgate/pkg/catalog"
	"github.com/tkoskela/toolgate/pkg/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the requirement catalog without probing anything",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	output.PrintCatalog(cmd.OutOrStdout(), catalog.Default())
	return nil
}
