// Package cli implements the sumrank command line.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "sumrank",
	Short: "Extractive text summarizer",
	Long: `sumrank ranks the sentences of a document with a BM25-weighted TextRank
graph and prints the most important, non-redundant ones in document order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
