package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	lexrain "github.com/whale4rain/lexRain"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the words that are due",
	Long: `Start an interactive review session over every word whose next
review date has passed.

Example:
  lexrain review`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(lexrain.DueReview())
	},
}

var learnLimit int

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Learn new words",
	Long: `Start an interactive session over words you have not studied yet.

Example:
  lexrain learn
  lexrain learn --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := learnLimit
		if limit <= 0 {
			limit = loadConfig().NewWordLimit
		}
		return runSession(lexrain.LearnNew(limit))
	},
}

var wordbookShuffle bool

var wordbookCmd = &cobra.Command{
	Use:   "wordbook <tag>",
	Short: "Review a tagged wordbook",
	Long: `Start an interactive session over every word carrying the given
tag, regardless of schedule.

Example:
  lexrain wordbook cet4
  lexrain wordbook cet4 --shuffle`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(lexrain.Wordbook(args[0], wordbookShuffle))
	},
}

func init() {
	learnCmd.Flags().IntVar(&learnLimit, "limit", 0, "Maximum number of new words (default: 20)")
	wordbookCmd.Flags().BoolVar(&wordbookShuffle, "shuffle", false, "Shuffle the queue")
}

// runSession drives the shared interactive loop: show the spelling, Enter
// reveals the answer, 1-4 grades it, q abandons. An empty queue is a normal
// exit; a persistence failure aborts the whole session.
func runSession(mode lexrain.ReviewMode) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	session := client.NewReview()
	started, err := session.Start(mode)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if !started {
		printInfo(os.Stdout, "Nothing to review.")
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	for !session.IsComplete() {
		item, ok := session.Current()
		if !ok {
			break
		}

		done, total := session.Progress()
		fmt.Println()
		printMuted(os.Stdout, "[%d/%d]", done+1, total)
		fmt.Printf("  %s", renderSpelling(item.Word.Spelling))
		if item.Word.Phonetic != "" {
			fmt.Printf("  /%s/", strings.Trim(item.Word.Phonetic, "/"))
		}
		fmt.Println()
		printMuted(os.Stdout, "  Enter to reveal, q to quit")

		if quit, err := waitForReveal(reader); err != nil {
			return err
		} else if quit {
			session.Abandon()
			printInfo(os.Stdout, "Session abandoned after %d of %d.", done, total)
			return nil
		}

		if err := session.RevealAnswer(); err != nil {
			return err
		}
		if item.Word.Definition != "" {
			fmt.Printf("  %s\n", item.Word.Definition)
		}
		if item.Word.Translation != "" {
			fmt.Printf("  %s\n", item.Word.Translation)
		}
		printMuted(os.Stdout, "  1 Forgot  2 Hard  3 Good  4 Easy  (q to quit)")

		quality, quit, err := readGrade(reader)
		if err != nil {
			return err
		}
		if quit {
			session.Abandon()
			printInfo(os.Stdout, "Session abandoned after %d of %d.", done, total)
			return nil
		}

		if _, err := session.Grade(quality); err != nil {
			var perr *lexrain.PersistError
			if errors.As(err, &perr) {
				// The store is no longer trustworthy mid-session.
				return fmt.Errorf("session aborted: %w", err)
			}
			return err
		}
	}

	completed, total := session.Progress()
	fmt.Println()
	printSuccess(os.Stdout, "Session complete: %d of %d reviewed.", completed, total)

	if stats, err := client.Stats(); err == nil {
		printMuted(os.Stdout, "Today: %d/%d reviews", stats.ReviewedToday, stats.DailyGoal)
		if stats.CheckedInToday {
			printSuccess(os.Stdout, "Daily goal reached - checked in!")
		}
	}
	return nil
}

func waitForReveal(reader *bufio.Reader) (quit bool, err error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line) == "q", nil
}

func readGrade(reader *bufio.Reader) (lexrain.Quality, bool, error) {
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, false, fmt.Errorf("read input: %w", err)
		}
		switch strings.TrimSpace(line) {
		case "q":
			return 0, true, nil
		case "1":
			return lexrain.QualityForgot, false, nil
		case "2":
			return lexrain.QualityHard, false, nil
		case "3":
			return lexrain.QualityGood, false, nil
		case "4":
			return lexrain.QualityEasy, false, nil
		default:
			printWarning(os.Stdout, "Enter 1-4, or q to quit.")
		}
	}
}
