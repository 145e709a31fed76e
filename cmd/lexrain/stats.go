package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vocabulary statistics",
	Long: `Display the dashboard numbers: word counts, review pressure and
today's progress against the daily goal.

Example:
  lexrain stats
  lexrain stats --json`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	stats, err := client.Stats()
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Vocabulary")
	fmt.Fprintln(out, "----------")
	fmt.Fprintf(out, "Total words:    %d\n", stats.TotalWords)
	fmt.Fprintf(out, "Tracked:        %d\n", stats.Tracked)
	fmt.Fprintf(out, "Mastered:       %d\n", stats.Mastered)
	fmt.Fprintf(out, "Due now:        %d\n", stats.Due)
	fmt.Fprintf(out, "Reviewed today: %d / %d\n", stats.ReviewedToday, stats.DailyGoal)
	if stats.CheckedInToday {
		printSuccess(out, "Daily goal reached - checked in.")
	}
	return nil
}
