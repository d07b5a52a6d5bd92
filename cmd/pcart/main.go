// Command pcart searches for Bayesian decision trees.
//
//	pcart demo [--max-rows N] [--seed S] [--plot scores.png]
//	pcart optimize --config search.yaml [--dot tree.svg] [--verify]
//	pcart enumerate --config search.yaml
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/pcart/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "pcart",
		Short:         "Exact Bayesian search over decision tree structures",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newDemoCmd(), newOptimizeCmd(), newEnumerateCmd())
	return root
}
