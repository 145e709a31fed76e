package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int
var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reviews",
	Long: `List the most recent review records, newest first.

Example:
  lexrain history
  lexrain history --limit 50
  lexrain history curve
  lexrain history daily --days 14`,
	RunE: runHistory,
}

var historyCurveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Show average recall quality by interval",
	RunE:  runHistoryCurve,
}

var historyDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show review counts per day",
	RunE:  runHistoryDaily,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records")
	historyDailyCmd.Flags().IntVar(&historyDays, "days", 7, "Number of days to show")
	historyCmd.AddCommand(historyCurveCmd)
	historyCmd.AddCommand(historyDailyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	entries, err := client.Store().RecentHistory(historyLimit)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		printMuted(cmd.OutOrStdout(), "No reviews recorded yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %-6s rep %d, interval %dd, EF %.2f\n",
			e.Record.ReviewedAt.Format("2006-01-02 15:04"),
			e.Spelling, e.Record.Quality,
			e.Record.Repetition, e.Record.IntervalDays, e.Record.EaseFactor)
	}
	return nil
}

func runHistoryCurve(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	stats, err := client.Store().IntervalStats()
	if err != nil {
		return fmt.Errorf("interval stats: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	if len(stats) == 0 {
		printMuted(cmd.OutOrStdout(), "No reviews recorded yet.")
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Interval  Avg quality  Reviews")
	for _, st := range stats {
		bar := strings.Repeat("#", int(st.AvgQuality*5+0.5))
		fmt.Fprintf(out, "%7dd  %11.2f  %7d  %s\n", st.IntervalDays, st.AvgQuality, st.Count, bar)
	}
	return nil
}

func runHistoryDaily(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	counts, err := client.Store().DailyCounts(historyDays)
	if err != nil {
		return fmt.Errorf("daily counts: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	out := cmd.OutOrStdout()
	for _, c := range counts {
		fmt.Fprintf(out, "%s  %4d  %s\n", c.Date, c.Count, strings.Repeat("#", c.Count))
	}
	return nil
}
