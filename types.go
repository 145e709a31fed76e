package lexrain

import (
	"fmt"
	"strings"
	"time"
)

// Word is a single dictionary entry. Words are read-only to the review
// core; only the import path creates them and only the favorite flag is
// ever mutated.
type Word struct {
	ID          int64  `json:"id"`
	Spelling    string `json:"spelling"`
	Phonetic    string `json:"phonetic,omitempty"`
	Definition  string `json:"definition,omitempty"`
	Translation string `json:"translation,omitempty"`
	Tags        string `json:"tags,omitempty"` // space-separated, e.g. "cet4 cet6 ky"
	Favorite    bool   `json:"favorite,omitempty"`
}

// TagList splits the space-separated tag field into individual tags.
func (w *Word) TagList() []string {
	return strings.Fields(w.Tags)
}

// MasteryStatus is the cached classification of how well a word is known.
type MasteryStatus int

const (
	MasteryNew      MasteryStatus = 0
	MasteryLearning MasteryStatus = 1
	MasteryMastered MasteryStatus = 2
)

// String returns "New", "Learning" or "Mastered".
func (m MasteryStatus) String() string {
	switch m {
	case MasteryNew:
		return "New"
	case MasteryLearning:
		return "Learning"
	case MasteryMastered:
		return "Mastered"
	default:
		return fmt.Sprintf("MasteryStatus(%d)", int(m))
	}
}

// Quality is the user's self-reported recall grade for one review.
type Quality int

const (
	QualityForgot Quality = iota + 1 // No recall at all.
	QualityHard                      // Recalled with significant difficulty.
	QualityGood                      // Recalled with some effort.
	QualityEasy                      // Recalled effortlessly.
)

// IsValid reports whether q is within the supported 1-4 range.
func (q Quality) IsValid() bool {
	return q >= QualityForgot && q <= QualityEasy
}

// Passing reports whether q counts as a successful recall.
func (q Quality) Passing() bool {
	return q >= QualityGood
}

var qualityNames = [...]string{QualityForgot: "Forgot", QualityHard: "Hard", QualityGood: "Good", QualityEasy: "Easy"}

// String returns the grade name ("Forgot", "Hard", "Good", "Easy").
func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// Scheduling constants. The ease-factor formula itself lives in sm2.go.
const (
	// DefaultEaseFactor is the ease factor assigned to freshly tracked words.
	DefaultEaseFactor = 2.5

	// MinEaseFactor is the floor enforced on every update; it prevents
	// intervals from collapsing for chronically difficult words.
	MinEaseFactor = 1.3

	// MasteredIntervalDays is the interval beyond which a successfully
	// reviewed word is classified as mastered.
	MasteredIntervalDays = 21

	// DefaultNewWordLimit caps how many unseen words a learn session pulls.
	DefaultNewWordLimit = 20

	// DefaultDailyGoal is the review count that earns a daily check-in.
	DefaultDailyGoal = 20
)

// MemoryState is the per-word spaced-repetition state. There is exactly one
// row per tracked word; it is updated once per grading action and never
// deleted.
type MemoryState struct {
	WordID       int64         `json:"word_id"`
	Repetition   int           `json:"repetition"`
	IntervalDays int           `json:"interval_days"`
	EaseFactor   float64       `json:"ease_factor"`
	NextDue      time.Time     `json:"next_due"`
	Mastery      MasteryStatus `json:"mastery"`
}

// NewMemoryState returns the default state for a word first selected for
// learning: due immediately, default ease factor, nothing reviewed yet.
func NewMemoryState(wordID int64, now time.Time) *MemoryState {
	return &MemoryState{
		WordID:     wordID,
		EaseFactor: DefaultEaseFactor,
		NextDue:    now,
		Mastery:    MasteryNew,
	}
}

// HistoryRecord is one immutable entry in the review audit trail. It
// snapshots the memory state produced by the grading action.
type HistoryRecord struct {
	ID           string    `json:"id"` // ULID, assigned on append
	WordID       int64     `json:"word_id"`
	ReviewedAt   time.Time `json:"reviewed_at"`
	Quality      Quality   `json:"quality"`
	Repetition   int       `json:"repetition"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
}

// ReviewItem pairs a word with its current memory state for one pass
// through a review queue.
type ReviewItem struct {
	Word  Word
	State MemoryState
}

// ModeKind selects where a review session pulls its queue from.
type ModeKind int

const (
	ModeDue      ModeKind = iota // everything past its next_due timestamp
	ModeNew                      // unseen words, up to a limit
	ModeWordbook                 // words carrying a given tag
)

// ReviewMode configures one review session. Use the constructors below.
type ReviewMode struct {
	Kind    ModeKind
	Limit   int    // ModeNew, ModeWordbook; <= 0 means the mode default
	Tag     string // ModeWordbook
	Shuffle bool   // ModeWordbook
}

// DueReview reviews every word whose next_due has passed.
func DueReview() ReviewMode {
	return ReviewMode{Kind: ModeDue}
}

// LearnNew introduces up to limit previously unseen words.
func LearnNew(limit int) ReviewMode {
	if limit <= 0 {
		limit = DefaultNewWordLimit
	}
	return ReviewMode{Kind: ModeNew, Limit: limit}
}

// Wordbook reviews the words carrying tag, optionally in shuffled order.
func Wordbook(tag string, shuffle bool) ReviewMode {
	return ReviewMode{Kind: ModeWordbook, Tag: tag, Shuffle: shuffle}
}

// Stats summarizes the store for the dashboard.
type Stats struct {
	TotalWords     int  `json:"total_words"`
	Tracked        int  `json:"tracked"`
	Mastered       int  `json:"mastered"`
	Due            int  `json:"due"`
	ReviewedToday  int  `json:"reviewed_today"`
	DailyGoal      int  `json:"daily_goal"`
	CheckedInToday bool `json:"checked_in_today"`
}

// HistoryEntry is a history record joined with its word for display.
type HistoryEntry struct {
	Record   HistoryRecord `json:"record"`
	Spelling string        `json:"spelling"`
}

// IntervalStat aggregates review outcomes by interval length; the series
// approximates a forgetting curve.
type IntervalStat struct {
	IntervalDays int     `json:"interval_days"`
	AvgQuality   float64 `json:"avg_quality"`
	Count        int     `json:"count"`
}

// DailyCount is the number of reviews completed on one calendar day (UTC).
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// WordbookInfo describes one tag grouping available for review.
type WordbookInfo struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ImportResult reports the outcome of a wordlist import.
type ImportResult struct {
	Total   int      `json:"total"`
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
