package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	lexrain "github.com/whale4rain/lexRain"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Browse the dictionary",
}

var wordsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search words by spelling, definition or translation",
	Args:  cobra.ExactArgs(1),
	RunE:  runWordsSearch,
}

var wordsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single word",
	Args:  cobra.ExactArgs(1),
	RunE:  runWordsShow,
}

var wordsFavCmd = &cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle a word's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runWordsFav,
}

var wordsFavsCmd = &cobra.Command{
	Use:   "favs",
	Short: "List favorited words",
	RunE:  runWordsFavs,
}

var wordsBooksCmd = &cobra.Command{
	Use:   "books",
	Short: "List wordbooks (tags) and their sizes",
	RunE:  runWordsBooks,
}

func init() {
	wordsCmd.AddCommand(wordsSearchCmd)
	wordsCmd.AddCommand(wordsShowCmd)
	wordsCmd.AddCommand(wordsFavCmd)
	wordsCmd.AddCommand(wordsFavsCmd)
	wordsCmd.AddCommand(wordsBooksCmd)
}

func parseWordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid word id %q", arg)
	}
	return id, nil
}

func runWordsSearch(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	words, err := client.Store().Search(args[0])
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(words)
	}

	if len(words) == 0 {
		printMuted(cmd.OutOrStdout(), "No matching words.")
		return nil
	}
	for _, w := range words {
		printWordLine(cmd, &w)
	}
	return nil
}

func runWordsShow(cmd *cobra.Command, args []string) error {
	id, err := parseWordID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	w, err := client.Store().Lookup(id)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(w)
	}

	out := cmd.OutOrStdout()
	printWordLine(cmd, w)
	if w.Definition != "" {
		fmt.Fprintf(out, "    %s\n", w.Definition)
	}
	if w.Translation != "" {
		fmt.Fprintf(out, "    %s\n", w.Translation)
	}
	if tags := w.TagList(); len(tags) > 0 {
		printMuted(out, "    tags: %s", strings.Join(tags, ", "))
	}

	// Show schedule when the word is being learned
	if st, err := client.Store().State(id); err == nil {
		printMuted(out, "    %s, rep %d, interval %dd, due %s",
			st.Mastery, st.Repetition, st.IntervalDays, st.NextDue.Format("2006-01-02"))
	}
	return nil
}

func runWordsFav(cmd *cobra.Command, args []string) error {
	id, err := parseWordID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	fav, err := client.Store().ToggleFavorite(id)
	if err != nil {
		return fmt.Errorf("toggle favorite: %w", err)
	}
	if fav {
		printSuccess(cmd.OutOrStdout(), "Word %d favorited.", id)
	} else {
		printInfo(cmd.OutOrStdout(), "Word %d unfavorited.", id)
	}
	return nil
}

func runWordsFavs(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	words, err := client.Store().Favorites()
	if err != nil {
		return fmt.Errorf("favorites: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(words)
	}

	if len(words) == 0 {
		printMuted(cmd.OutOrStdout(), "No favorites yet; use 'lexrain words fav <id>'.")
		return nil
	}
	for _, w := range words {
		printWordLine(cmd, &w)
	}
	return nil
}

func runWordsBooks(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	books, err := client.Store().Wordbooks()
	if err != nil {
		return fmt.Errorf("wordbooks: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	}

	if len(books) == 0 {
		printMuted(cmd.OutOrStdout(), "No wordbooks; import words with tags first.")
		return nil
	}
	for _, b := range books {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d\n", b.Tag, b.Count)
	}
	return nil
}

func printWordLine(cmd *cobra.Command, w *lexrain.Word) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[%d] %s", w.ID, renderSpelling(w.Spelling))
	if w.Phonetic != "" {
		fmt.Fprintf(out, "  /%s/", strings.Trim(w.Phonetic, "/"))
	}
	if w.Favorite {
		fmt.Fprint(out, "  *")
	}
	fmt.Fprintln(out)
}
