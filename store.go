package lexrain

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pressly/goose/v3"
	"github.com/whale4rain/lexRain/internal/store/migrations"
	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

const dailyGoalKey = "daily_goal"

// Store manages the local SQLite vocabulary database. It serves both sides
// of the review core: the read-only dictionary and the mutable progress
// records, plus the analytics and settings the CLI surfaces.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// Compile-time interface checks.
var (
	_ Dictionary    = (*Store)(nil)
	_ ProgressStore = (*Store)(nil)
	_ GoalTracker   = (*Store)(nil)
)

// NewStore opens or creates a vocabulary store at path.
func NewStore(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("store: set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "."); err != nil {
		return fmt.Errorf("store: run migrations: %w", err)
	}

	// Set schema version if not set
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', ?)
	`, schemaVersion)
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database. Further calls return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.closed = true
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// dayKey returns the UTC calendar day used for history grouping and
// check-ins. It must agree with the substr() grouping in SQL, which is why
// timestamps are stored in RFC3339 UTC text.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

const wordColumns = "id, spelling, phonetic, definition, translation, tags, favorite"

func scanWord(row interface{ Scan(...any) error }) (*Word, error) {
	var w Word
	var fav int
	err := row.Scan(&w.ID, &w.Spelling, &w.Phonetic, &w.Definition, &w.Translation, &w.Tags, &fav)
	if err != nil {
		return nil, err
	}
	w.Favorite = fav != 0
	return &w, nil
}

// Lookup returns the word with the given id.
func (s *Store) Lookup(id int64) (*Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRow("SELECT "+wordColumns+" FROM words WHERE id = ?", id)
	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: lookup word: %w", err)
	}
	return w, nil
}

// Search returns words whose spelling, definition or translation contains
// query (case-insensitive for ASCII, SQLite LIKE semantics).
func (s *Store) Search(query string) ([]Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT `+wordColumns+` FROM words
		WHERE spelling LIKE ? OR definition LIKE ? OR translation LIKE ?
		ORDER BY spelling
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("store: search words: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// WordsByTag returns words carrying tag, in id order. limit <= 0 means all.
func (s *Store) WordsByTag(tag string, limit int) ([]Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(`
		SELECT `+wordColumns+` FROM words
		WHERE instr(' ' || tags || ' ', ' ' || ? || ' ') > 0
		ORDER BY id LIMIT ?
	`, tag, limit)
	if err != nil {
		return nil, fmt.Errorf("store: words by tag: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

// Favorites returns all favorited words.
func (s *Store) Favorites() ([]Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query("SELECT " + wordColumns + " FROM words WHERE favorite = 1 ORDER BY spelling")
	if err != nil {
		return nil, fmt.Errorf("store: favorites: %w", err)
	}
	defer rows.Close()

	return collectWords(rows)
}

func collectWords(rows *sql.Rows) ([]Word, error) {
	var words []Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan word: %w", err)
		}
		words = append(words, *w)
	}
	return words, rows.Err()
}

// AddWord inserts a word, keyed by spelling. It reports whether a new row
// was created; an existing spelling is left untouched and the returned word
// carries the existing id.
func (s *Store) AddWord(w *Word) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrStoreClosed
	}
	if strings.TrimSpace(w.Spelling) == "" {
		return false, &ValidationError{Field: "spelling", Message: "must not be empty"}
	}

	fav := 0
	if w.Favorite {
		fav = 1
	}
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO words (spelling, phonetic, definition, translation, tags, favorite)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.Spelling, w.Phonetic, w.Definition, w.Translation, w.Tags, fav)
	if err != nil {
		return false, fmt.Errorf("store: add word: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: add word: %w", err)
	}
	if n > 0 {
		w.ID, err = res.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("store: add word: %w", err)
		}
		return true, nil
	}

	// Duplicate spelling: resolve the existing id so callers can still
	// reference the word.
	err = s.db.QueryRow("SELECT id FROM words WHERE spelling = ?", w.Spelling).Scan(&w.ID)
	if err != nil {
		return false, fmt.Errorf("store: resolve existing word: %w", err)
	}
	return false, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	res, err := s.db.Exec("UPDATE words SET favorite = 1 - favorite WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("store: toggle favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: toggle favorite: %w", err)
	}
	if n == 0 {
		return false, ErrWordNotFound
	}

	var fav int
	if err := s.db.QueryRow("SELECT favorite FROM words WHERE id = ?", id).Scan(&fav); err != nil {
		return false, fmt.Errorf("store: toggle favorite: %w", err)
	}
	return fav != 0, nil
}

// Wordbooks returns the distinct tags in use with their word counts, sorted
// by count descending. Tags are space-separated in the words table, so the
// split happens here rather than in SQL.
func (s *Store) Wordbooks() ([]WordbookInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query("SELECT tags FROM words WHERE tags != ''")
	if err != nil {
		return nil, fmt.Errorf("store: wordbooks: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, fmt.Errorf("store: scan tags: %w", err)
		}
		for _, tag := range strings.Fields(tags) {
			counts[tag]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	books := make([]WordbookInfo, 0, len(counts))
	for tag, count := range counts {
		books = append(books, WordbookInfo{Tag: tag, Count: count})
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].Count != books[j].Count {
			return books[i].Count > books[j].Count
		}
		return books[i].Tag < books[j].Tag
	})
	return books, nil
}

const itemColumns = `w.id, w.spelling, w.phonetic, w.definition, w.translation, w.tags, w.favorite,
	ms.repetition, ms.interval_days, ms.ease_factor, ms.next_due, ms.mastery`

func scanItem(rows *sql.Rows) (ReviewItem, error) {
	var item ReviewItem
	var fav int
	var rep, interval sql.NullInt64
	var ease sql.NullFloat64
	var nextDue sql.NullString
	var mastery sql.NullInt64

	err := rows.Scan(
		&item.Word.ID, &item.Word.Spelling, &item.Word.Phonetic,
		&item.Word.Definition, &item.Word.Translation, &item.Word.Tags, &fav,
		&rep, &interval, &ease, &nextDue, &mastery,
	)
	if err != nil {
		return ReviewItem{}, err
	}
	item.Word.Favorite = fav != 0

	if nextDue.Valid {
		item.State = MemoryState{
			WordID:       item.Word.ID,
			Repetition:   int(rep.Int64),
			IntervalDays: int(interval.Int64),
			EaseFactor:   ease.Float64,
			NextDue:      parseTime(nextDue.String),
			Mastery:      MasteryStatus(mastery.Int64),
		}
	}
	return item, nil
}

// DueItems returns every tracked word whose next_due is at or before now,
// soonest first, joined with its word.
func (s *Store) DueItems(now time.Time) ([]ReviewItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT `+itemColumns+`
		FROM memory_state ms
		JOIN words w ON w.id = ms.word_id
		WHERE ms.next_due <= ?
		ORDER BY ms.next_due
	`, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("store: due items: %w", err)
	}
	defer rows.Close()

	var items []ReviewItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan due item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// NewItems returns up to limit words that are not yet being learned:
// untracked words plus tracked words still classified New. Untracked words
// get a default memory state inserted so the grading path can assume a row
// exists (lookup idempotence: calling this twice yields the same states).
func (s *Store) NewItems(limit int) ([]ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = DefaultNewWordLimit
	}

	return s.materializeItems(`
		SELECT `+itemColumns+`
		FROM words w
		LEFT JOIN memory_state ms ON ms.word_id = w.id
		WHERE ms.word_id IS NULL OR ms.mastery = 0
		ORDER BY w.id LIMIT ?
	`, limit)
}

// TagItems returns the words carrying tag joined with their memory state,
// materializing default states for untracked ones. limit <= 0 means all.
func (s *Store) TagItems(tag string, limit int) ([]ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = -1
	}

	return s.materializeItems(`
		SELECT `+itemColumns+`
		FROM words w
		LEFT JOIN memory_state ms ON ms.word_id = w.id
		WHERE instr(' ' || w.tags || ' ', ' ' || ? || ' ') > 0
		ORDER BY w.id LIMIT ?
	`, tag, limit)
}

// materializeItems runs a words-left-join-state query and inserts a default
// memory state for every row that has none. The select and the inserts
// share one transaction so two concurrent pulls cannot double-insert.
// Caller must hold the write lock.
func (s *Store) materializeItems(query string, args ...any) ([]ReviewItem, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: load items: %w", err)
	}

	// Truncate so the returned state matches what RFC3339 text round-trips.
	now := time.Now().UTC().Truncate(time.Second)
	var items []ReviewItem
	var fresh []int64
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan item: %w", err)
		}
		if item.State.NextDue.IsZero() {
			item.State = *NewMemoryState(item.Word.ID, now)
			fresh = append(fresh, item.Word.ID)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, id := range fresh {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO memory_state (word_id, repetition, interval_days, ease_factor, next_due, mastery)
			VALUES (?, 0, 0, ?, ?, ?)
		`, id, DefaultEaseFactor, formatTime(now), int(MasteryNew))
		if err != nil {
			return nil, fmt.Errorf("store: init memory state: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit items: %w", err)
	}
	return items, nil
}

// State returns the memory state for a word, or ErrWordNotFound when the
// word is untracked.
func (s *Store) State(wordID int64) (*MemoryState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var st MemoryState
	var nextDue string
	err := s.db.QueryRow(`
		SELECT word_id, repetition, interval_days, ease_factor, next_due, mastery
		FROM memory_state WHERE word_id = ?
	`, wordID).Scan(&st.WordID, &st.Repetition, &st.IntervalDays, &st.EaseFactor, &nextDue, &st.Mastery)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load state: %w", err)
	}
	st.NextDue = parseTime(nextDue)
	return &st, nil
}

// UpdateState overwrites the memory state row for st.WordID.
func (s *Store) UpdateState(st *MemoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	res, err := s.db.Exec(`
		UPDATE memory_state
		SET repetition = ?, interval_days = ?, ease_factor = ?, next_due = ?, mastery = ?
		WHERE word_id = ?
	`, st.Repetition, st.IntervalDays, st.EaseFactor, formatTime(st.NextDue), int(st.Mastery), st.WordID)
	if err != nil {
		return fmt.Errorf("store: update state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update state: %w", err)
	}
	if n == 0 {
		return ErrWordNotFound
	}
	return nil
}

// AppendHistory inserts an immutable review record, assigning a ULID id
// when the record carries none.
func (s *Store) AppendHistory(rec *HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if rec.ID == "" {
		rec.ID = ulid.Make().String()
	}

	_, err := s.db.Exec(`
		INSERT INTO review_history (id, word_id, reviewed_at, quality, repetition, interval_days, ease_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.WordID, formatTime(rec.ReviewedAt), int(rec.Quality), rec.Repetition, rec.IntervalDays, rec.EaseFactor)
	if err != nil {
		return fmt.Errorf("store: append history: %w", err)
	}
	return nil
}

// RecentHistory returns the most recent review records joined with their
// spellings, newest first.
func (s *Store) RecentHistory(limit int) ([]HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT h.id, h.word_id, h.reviewed_at, h.quality, h.repetition, h.interval_days, h.ease_factor, w.spelling
		FROM review_history h
		JOIN words w ON w.id = h.word_id
		ORDER BY h.reviewed_at DESC, h.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var reviewedAt string
		err := rows.Scan(&e.Record.ID, &e.Record.WordID, &reviewedAt, &e.Record.Quality,
			&e.Record.Repetition, &e.Record.IntervalDays, &e.Record.EaseFactor, &e.Spelling)
		if err != nil {
			return nil, fmt.Errorf("store: scan history: %w", err)
		}
		e.Record.ReviewedAt = parseTime(reviewedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// IntervalStats aggregates review quality by the interval the review was
// scheduled at. Plotted, the series approximates a forgetting curve.
func (s *Store) IntervalStats() ([]IntervalStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT interval_days, AVG(quality), COUNT(*)
		FROM review_history
		GROUP BY interval_days
		ORDER BY interval_days
	`)
	if err != nil {
		return nil, fmt.Errorf("store: interval stats: %w", err)
	}
	defer rows.Close()

	var stats []IntervalStat
	for rows.Next() {
		var st IntervalStat
		if err := rows.Scan(&st.IntervalDays, &st.AvgQuality, &st.Count); err != nil {
			return nil, fmt.Errorf("store: scan interval stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// DailyCounts returns per-day review counts for the last days calendar
// days (UTC), oldest first, including zero-count days.
func (s *Store) DailyCounts(days int) ([]DailyCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if days <= 0 {
		days = 7
	}

	today := time.Now().UTC()
	start := today.AddDate(0, 0, -(days - 1))

	rows, err := s.db.Query(`
		SELECT substr(reviewed_at, 1, 10) AS day, COUNT(*)
		FROM review_history
		WHERE substr(reviewed_at, 1, 10) >= ?
		GROUP BY day
	`, dayKey(start))
	if err != nil {
		return nil, fmt.Errorf("store: daily counts: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("store: scan daily count: %w", err)
		}
		byDay[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts := make([]DailyCount, 0, days)
	for i := 0; i < days; i++ {
		day := dayKey(start.AddDate(0, 0, i))
		counts = append(counts, DailyCount{Date: day, Count: byDay[day]})
	}
	return counts, nil
}

// TodayCompleted returns the number of reviews recorded today (UTC).
func (s *Store) TodayCompleted() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}
	return s.todayCompletedLocked(time.Now())
}

func (s *Store) todayCompletedLocked(now time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM review_history WHERE substr(reviewed_at, 1, 10) = ?
	`, dayKey(now)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("store: today completed: %w", err)
	}
	return count, nil
}

// DailyGoal returns the configured daily review goal (default 20).
func (s *Store) DailyGoal() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}
	return s.dailyGoalLocked()
}

func (s *Store) dailyGoalLocked() (int, error) {
	var goal int
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", dailyGoalKey).Scan(&goal)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultDailyGoal, nil
	}
	if err != nil {
		return 0, fmt.Errorf("store: daily goal: %w", err)
	}
	return goal, nil
}

// SetDailyGoal updates the daily review goal. Accepts 1 to 1000.
func (s *Store) SetDailyGoal(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if n < 1 || n > 1000 {
		return &ValidationError{Field: "daily_goal", Message: "must be between 1 and 1000"}
	}

	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, dailyGoalKey, n)
	if err != nil {
		return fmt.Errorf("store: set daily goal: %w", err)
	}
	return nil
}

// ReviewCompleted records a check-in for now's day once the daily goal is
// reached. Implements GoalTracker; sessions call it after every persisted
// grade, so the insert is idempotent.
func (s *Store) ReviewCompleted(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	goal, err := s.dailyGoalLocked()
	if err != nil {
		return err
	}
	count, err := s.todayCompletedLocked(now)
	if err != nil {
		return err
	}
	if count < goal {
		return nil
	}

	_, err = s.db.Exec("INSERT OR IGNORE INTO checkins (day) VALUES (?)", dayKey(now))
	if err != nil {
		return fmt.Errorf("store: record check-in: %w", err)
	}
	return nil
}

// CheckedInDays returns the most recent check-in days, newest first.
func (s *Store) CheckedInDays(limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.db.Query("SELECT day FROM checkins ORDER BY day DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("store: checked-in days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("store: scan check-in: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// Stats summarizes the store for the dashboard.
func (s *Store) Stats() (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	now := time.Now()
	var st Stats

	if err := s.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&st.TotalWords); err != nil {
		return nil, fmt.Errorf("store: count words: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM memory_state").Scan(&st.Tracked); err != nil {
		return nil, fmt.Errorf("store: count tracked: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM memory_state WHERE mastery = ?", int(MasteryMastered)).Scan(&st.Mastered); err != nil {
		return nil, fmt.Errorf("store: count mastered: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM memory_state WHERE next_due <= ?", formatTime(now)).Scan(&st.Due); err != nil {
		return nil, fmt.Errorf("store: count due: %w", err)
	}

	var err error
	st.ReviewedToday, err = s.todayCompletedLocked(now)
	if err != nil {
		return nil, err
	}
	st.DailyGoal, err = s.dailyGoalLocked()
	if err != nil {
		return nil, err
	}

	var checked int
	err = s.db.QueryRow("SELECT COUNT(*) FROM checkins WHERE day = ?", dayKey(now)).Scan(&checked)
	if err != nil {
		return nil, fmt.Errorf("store: check-in today: %w", err)
	}
	st.CheckedInToday = checked > 0

	return &st, nil
}
