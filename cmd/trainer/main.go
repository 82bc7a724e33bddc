package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "trainer",
		Short: "Marking Day - Bubble Sort trainer",
		Long: `trainer lets you sort a random class by grade one comparison at a time.

For each adjacent pair, decide Swap or Don't swap. At the end you see
whether the list is sorted and how often your decisions matched the
Bubble Sort rule.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		newPlayCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the trainer version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trainer %s\n", version)
		},
	}
}
