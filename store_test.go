package lexrain

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "lexrain.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addTestWord(t *testing.T, s *Store, spelling, tags string) int64 {
	t.Helper()
	w := &Word{Spelling: spelling, Definition: "def of " + spelling, Tags: tags}
	created, err := s.AddWord(w)
	if err != nil {
		t.Fatalf("AddWord(%s) failed: %v", spelling, err)
	}
	if !created {
		t.Fatalf("AddWord(%s): expected new row", spelling)
	}
	return w.ID
}

func TestStoreOpenAndClose(t *testing.T) {
	s := newTestStore(t)

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := s.Lookup(1); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Lookup after close: error = %v, want ErrStoreClosed", err)
	}
	if err := s.Close(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("double close: error = %v, want ErrStoreClosed", err)
	}
}

func TestStoreAddAndLookup(t *testing.T) {
	s := newTestStore(t)

	id := addTestWord(t, s, "rain", "weather")
	w, err := s.Lookup(id)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if w.Spelling != "rain" || w.Tags != "weather" {
		t.Errorf("got %+v", w)
	}

	if _, err := s.Lookup(9999); !errors.Is(err, ErrWordNotFound) {
		t.Errorf("missing word: error = %v, want ErrWordNotFound", err)
	}
}

func TestStoreAddWordDuplicate(t *testing.T) {
	s := newTestStore(t)

	id := addTestWord(t, s, "rain", "")
	dup := &Word{Spelling: "rain", Definition: "other"}
	created, err := s.AddWord(dup)
	if err != nil {
		t.Fatalf("AddWord failed: %v", err)
	}
	if created {
		t.Error("duplicate spelling reported as created")
	}
	if dup.ID != id {
		t.Errorf("duplicate resolved to id %d, want %d", dup.ID, id)
	}

	// The original definition survives.
	w, _ := s.Lookup(id)
	if w.Definition != "def of rain" {
		t.Errorf("duplicate insert overwrote the word: %+v", w)
	}
}

func TestStoreAddWordEmptySpelling(t *testing.T) {
	s := newTestStore(t)

	var verr *ValidationError
	if _, err := s.AddWord(&Word{Spelling: "  "}); !errors.As(err, &verr) {
		t.Errorf("error = %v, want *ValidationError", err)
	}
}

func TestStoreSearch(t *testing.T) {
	s := newTestStore(t)
	addTestWord(t, s, "rain", "")
	addTestWord(t, s, "rainbow", "")
	addTestWord(t, s, "sun", "")

	words, err := s.Search("rain")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("got %d results, want 2", len(words))
	}

	// Definitions match too.
	words, err = s.Search("def of sun")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(words) != 1 || words[0].Spelling != "sun" {
		t.Errorf("definition search got %+v", words)
	}
}

func TestStoreToggleFavorite(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")

	fav, err := s.ToggleFavorite(id)
	if err != nil || !fav {
		t.Fatalf("ToggleFavorite = (%v, %v), want (true, nil)", fav, err)
	}
	fav, err = s.ToggleFavorite(id)
	if err != nil || fav {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", fav, err)
	}
	if _, err := s.ToggleFavorite(9999); !errors.Is(err, ErrWordNotFound) {
		t.Errorf("missing word: error = %v, want ErrWordNotFound", err)
	}
}

func TestStoreFavorites(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")
	addTestWord(t, s, "sun", "")

	if _, err := s.ToggleFavorite(id); err != nil {
		t.Fatal(err)
	}
	words, err := s.Favorites()
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(words) != 1 || words[0].ID != id {
		t.Errorf("favorites = %+v", words)
	}
}

func TestStoreWordbooks(t *testing.T) {
	s := newTestStore(t)
	addTestWord(t, s, "rain", "cet4 weather")
	addTestWord(t, s, "sun", "cet4")
	addTestWord(t, s, "plain", "")

	books, err := s.Wordbooks()
	if err != nil {
		t.Fatalf("Wordbooks failed: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d wordbooks, want 2: %+v", len(books), books)
	}
	if books[0].Tag != "cet4" || books[0].Count != 2 {
		t.Errorf("first wordbook = %+v, want cet4/2", books[0])
	}
}

func TestStoreNewItemsMaterializes(t *testing.T) {
	s := newTestStore(t)
	addTestWord(t, s, "rain", "")
	addTestWord(t, s, "sun", "")
	addTestWord(t, s, "moon", "")

	items, err := s.NewItems(2)
	if err != nil {
		t.Fatalf("NewItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, item := range items {
		if item.State.EaseFactor != DefaultEaseFactor {
			t.Errorf("item %d: ease = %v, want default", item.Word.ID, item.State.EaseFactor)
		}
		if item.State.Mastery != MasteryNew {
			t.Errorf("item %d: mastery = %s, want New", item.Word.ID, item.State.Mastery)
		}
	}

	// Lookup idempotence: a second pull finds the same persisted states.
	again, err := s.NewItems(2)
	if err != nil {
		t.Fatalf("second NewItems failed: %v", err)
	}
	for i := range items {
		if !again[i].State.NextDue.Equal(items[i].State.NextDue) {
			t.Errorf("item %d: next_due changed across pulls", items[i].Word.ID)
		}
	}
}

func TestStoreDueItems(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")
	addTestWord(t, s, "sun", "")

	if _, err := s.NewItems(10); err != nil {
		t.Fatalf("NewItems failed: %v", err)
	}

	now := time.Now()
	items, err := s.DueItems(now.Add(time.Hour))
	if err != nil {
		t.Fatalf("DueItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d due items, want 2", len(items))
	}

	// Push one into the future; it drops out.
	st := items[0].State
	if st.WordID != id {
		st = items[1].State
	}
	st.NextDue = now.AddDate(0, 0, 6)
	st.Repetition = 2
	st.IntervalDays = 6
	if err := s.UpdateState(&st); err != nil {
		t.Fatalf("UpdateState failed: %v", err)
	}

	items, err = s.DueItems(now.Add(time.Hour))
	if err != nil {
		t.Fatalf("DueItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d due items after reschedule, want 1", len(items))
	}
	if items[0].Word.ID == id {
		t.Error("rescheduled word still reported due")
	}
}

func TestStoreTagItems(t *testing.T) {
	s := newTestStore(t)
	addTestWord(t, s, "rain", "cet4 weather")
	addTestWord(t, s, "sun", "weather")
	addTestWord(t, s, "verb", "cet4")

	items, err := s.TagItems("weather", 0)
	if err != nil {
		t.Fatalf("TagItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, item := range items {
		if item.State.EaseFactor != DefaultEaseFactor {
			t.Errorf("item %d: state not materialized", item.Word.ID)
		}
	}

	// Tag matching is whole-token: "weath" matches nothing.
	items, err = s.TagItems("weath", 0)
	if err != nil {
		t.Fatalf("TagItems failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("partial tag matched %d items, want 0", len(items))
	}
}

func TestStoreUpdateStateUntracked(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")

	st := NewMemoryState(id, time.Now())
	if err := s.UpdateState(st); !errors.Is(err, ErrWordNotFound) {
		t.Errorf("error = %v, want ErrWordNotFound for untracked word", err)
	}
}

func TestStoreAppendHistoryAssignsID(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")

	rec := &HistoryRecord{WordID: id, ReviewedAt: time.Now(), Quality: QualityGood, Repetition: 1, IntervalDays: 1, EaseFactor: 2.36}
	if err := s.AppendHistory(rec); err != nil {
		t.Fatalf("AppendHistory failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("AppendHistory left the id empty")
	}

	entries, err := s.RecentHistory(10)
	if err != nil {
		t.Fatalf("RecentHistory failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Spelling != "rain" {
		t.Errorf("got %+v", entries)
	}
}

func TestStoreIntervalStats(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")

	now := time.Now()
	for _, q := range []Quality{QualityGood, QualityEasy} {
		rec := &HistoryRecord{WordID: id, ReviewedAt: now, Quality: q, IntervalDays: 6, EaseFactor: 2.3}
		if err := s.AppendHistory(rec); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.IntervalStats()
	if err != nil {
		t.Fatalf("IntervalStats failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d buckets, want 1", len(stats))
	}
	if stats[0].IntervalDays != 6 || stats[0].Count != 2 || stats[0].AvgQuality != 3.5 {
		t.Errorf("got %+v", stats[0])
	}
}

func TestStoreDailyCounts(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")

	now := time.Now().UTC()
	for _, at := range []time.Time{now, now, now.AddDate(0, 0, -1)} {
		rec := &HistoryRecord{WordID: id, ReviewedAt: at, Quality: QualityGood}
		if err := s.AppendHistory(rec); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := s.DailyCounts(3)
	if err != nil {
		t.Fatalf("DailyCounts failed: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("got %d days, want 3", len(counts))
	}
	if counts[2].Count != 2 {
		t.Errorf("today = %d reviews, want 2", counts[2].Count)
	}
	if counts[1].Count != 1 {
		t.Errorf("yesterday = %d reviews, want 1", counts[1].Count)
	}
	if counts[0].Count != 0 {
		t.Errorf("two days ago = %d reviews, want 0", counts[0].Count)
	}
}

func TestStoreDailyGoal(t *testing.T) {
	s := newTestStore(t)

	goal, err := s.DailyGoal()
	if err != nil {
		t.Fatalf("DailyGoal failed: %v", err)
	}
	if goal != DefaultDailyGoal {
		t.Errorf("default goal = %d, want %d", goal, DefaultDailyGoal)
	}

	if err := s.SetDailyGoal(5); err != nil {
		t.Fatalf("SetDailyGoal failed: %v", err)
	}
	goal, _ = s.DailyGoal()
	if goal != 5 {
		t.Errorf("goal = %d, want 5", goal)
	}

	var verr *ValidationError
	if err := s.SetDailyGoal(0); !errors.As(err, &verr) {
		t.Errorf("SetDailyGoal(0): error = %v, want *ValidationError", err)
	}
	if err := s.SetDailyGoal(1001); !errors.As(err, &verr) {
		t.Errorf("SetDailyGoal(1001): error = %v, want *ValidationError", err)
	}
}

func TestStoreCheckIn(t *testing.T) {
	s := newTestStore(t)
	id := addTestWord(t, s, "rain", "")
	if err := s.SetDailyGoal(2); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	record := func() {
		rec := &HistoryRecord{WordID: id, ReviewedAt: now, Quality: QualityGood}
		if err := s.AppendHistory(rec); err != nil {
			t.Fatal(err)
		}
		if err := s.ReviewCompleted(now); err != nil {
			t.Fatal(err)
		}
	}

	record()
	days, err := s.CheckedInDays(10)
	if err != nil {
		t.Fatalf("CheckedInDays failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("checked in below goal: %v", days)
	}

	record()
	record() // past the goal, still one check-in
	days, _ = s.CheckedInDays(10)
	if len(days) != 1 {
		t.Fatalf("got %d check-ins, want 1", len(days))
	}
	if days[0] != dayKey(now) {
		t.Errorf("check-in day = %s, want %s", days[0], dayKey(now))
	}
}

func TestStoreStats(t *testing.T) {
	s := newTestStore(t)
	addTestWord(t, s, "rain", "")
	addTestWord(t, s, "sun", "")
	id := addTestWord(t, s, "moon", "")

	if _, err := s.NewItems(10); err != nil {
		t.Fatal(err)
	}

	// Master the third word directly.
	st := &MemoryState{WordID: id, Repetition: 5, IntervalDays: 30, EaseFactor: 2.5,
		NextDue: time.Now().AddDate(0, 0, 30), Mastery: MasteryMastered}
	if err := s.UpdateState(st); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalWords != 3 {
		t.Errorf("total = %d, want 3", stats.TotalWords)
	}
	if stats.Tracked != 3 {
		t.Errorf("tracked = %d, want 3", stats.Tracked)
	}
	if stats.Mastered != 1 {
		t.Errorf("mastered = %d, want 1", stats.Mastered)
	}
	if stats.Due != 2 {
		t.Errorf("due = %d, want 2", stats.Due)
	}
	if stats.DailyGoal != DefaultDailyGoal {
		t.Errorf("goal = %d, want default", stats.DailyGoal)
	}
}

func TestStoreSessionIntegration(t *testing.T) {
	s := newTestStore(t)
	addTestWord(t, s, "rain", "cet4")
	addTestWord(t, s, "sun", "cet4")

	session := NewSession(s, WithGoalTracker(s))
	started, err := session.Start(LearnNew(10))
	if err != nil || !started {
		t.Fatalf("Start = (%v, %v)", started, err)
	}

	for !session.IsComplete() {
		if err := session.RevealAnswer(); err != nil {
			t.Fatal(err)
		}
		if _, err := session.Grade(QualityGood); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.ReviewedToday != 2 {
		t.Errorf("reviewed today = %d, want 2", stats.ReviewedToday)
	}

	entries, err := s.RecentHistory(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("history entries = %d, want 2", len(entries))
	}
}
