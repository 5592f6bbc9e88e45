package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "decision-tree",
		Short: "decision-tree trains and evaluates decision trees",
		Long:  `A tool to train decision trees on datasets with numeric and categorical features, and to classify new points with a trained tree.`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), trainCmd(config), testCmd(config))
	return rootCmd
}
