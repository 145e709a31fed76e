package main

import (
	"github.com/spf13/cobra"
	lexrain "github.com/whale4rain/lexRain"
)

var (
	cfgDBPath  string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "lexrain",
	Short: "lexRain - spaced repetition vocabulary trainer",
	Long: `lexRain is a personal vocabulary trainer built on SM-2 spaced
repetition.

Import a wordlist, learn new words, and review them on the schedule the
algorithm computes. All data lives in a local SQLite database.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDBPath, "db", "", "Path to vocabulary database (default: ~/.lexrain/lexrain.db)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON where applicable")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(wordbookCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
}

func loadConfig() lexrain.Config {
	cfg := lexrain.ConfigFromEnv()

	// Flags win over environment
	if cfgDBPath != "" {
		cfg.DBPath = cfgDBPath
	}

	return cfg
}

func newClient() (*lexrain.Client, error) {
	return lexrain.New(loadConfig())
}
