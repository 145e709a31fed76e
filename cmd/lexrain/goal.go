package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [n]",
	Short: "Show or set the daily review goal",
	Long: `With no argument, show the current daily goal and today's
progress. With a number, set the goal.

Example:
  lexrain goal
  lexrain goal 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGoal,
}

func runGoal(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal %q", args[0])
		}
		if err := client.Store().SetDailyGoal(n); err != nil {
			return fmt.Errorf("set goal: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Daily goal set to %d.", n)
		return nil
	}

	goal, err := client.Store().DailyGoal()
	if err != nil {
		return fmt.Errorf("get goal: %w", err)
	}
	today, err := client.Store().TodayCompleted()
	if err != nil {
		return fmt.Errorf("today's count: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %d (today: %d)\n", goal, today)

	days, err := client.Store().CheckedInDays(7)
	if err == nil && len(days) > 0 {
		printMuted(cmd.OutOrStdout(), "Recent check-ins: %d in the last 7 shown", len(days))
	}
	return nil
}
