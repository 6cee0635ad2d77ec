package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "buurtstemming",
		Short:        "Neighbourhood poll: one vote per house number, live results, shareable summary",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCmd(), newRollCmd())
	return rootCmd
}

func newRollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll",
		Short: "Print the house numbers allowed to vote",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), voterRoll().String())
		},
	}
}
