package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the full store as JSON",
	Long: `Write every word, memory state and review record to a versioned
JSON file. Use "-" to write to stdout.

Example:
  lexrain export backup.json
  lexrain export -`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	if args[0] == "-" {
		return client.ExportJSON(cmd.OutOrStdout())
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := client.ExportJSON(f); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	printSuccess(cmd.OutOrStdout(), "Exported to %s", args[0])
	return nil
}
