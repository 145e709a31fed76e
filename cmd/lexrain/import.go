package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a wordlist",
	Long: `Load words from a .csv or .xlsx file into the dictionary.

Expected columns: spelling, phonetic, definition, translation, tags.
Only spelling is required. Existing spellings are skipped.

Example:
  lexrain import cet4.csv
  lexrain import vocabulary.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	result, err := client.ImportFile(args[0])
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	printSuccess(cmd.OutOrStdout(), "Imported %d of %d words (%d skipped).",
		result.Created, result.Total, result.Skipped)
	for _, e := range result.Errors {
		printWarning(os.Stderr, "%s", e)
	}
	return nil
}
