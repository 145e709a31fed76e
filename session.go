package lexrain

import (
	"fmt"
	"math/rand"
	"time"
)

// Dictionary provides read-only word lookups. Implemented by *Store; the
// interface exists so sessions and callers can be tested against fakes.
type Dictionary interface {
	Lookup(id int64) (*Word, error)
	Search(query string) ([]Word, error)
	WordsByTag(tag string, limit int) ([]Word, error)
}

// ProgressStore owns the per-word memory state and the append-only review
// history. Items returned by the pull methods carry the word joined in, so
// a session never needs a second dictionary round trip per item.
type ProgressStore interface {
	DueItems(now time.Time) ([]ReviewItem, error)
	NewItems(limit int) ([]ReviewItem, error)
	TagItems(tag string, limit int) ([]ReviewItem, error)
	UpdateState(st *MemoryState) error
	AppendHistory(rec *HistoryRecord) error
	Stats() (*Stats, error)
}

// GoalTracker is notified after every successfully persisted grade so an
// external collaborator can run daily-goal bookkeeping. Failures are
// ignored; goal tracking never blocks a review.
type GoalTracker interface {
	ReviewCompleted(now time.Time) error
}

// SessionState is the review-session machine state.
type SessionState int

const (
	SessionIdle     SessionState = iota // no queue loaded
	SessionQuestion                     // item shown, answer hidden
	SessionAnswer                       // answer revealed, awaiting grade
	SessionComplete                     // queue exhausted
)

// String returns a short name for the state.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "Idle"
	case SessionQuestion:
		return "Question"
	case SessionAnswer:
		return "Answer"
	case SessionComplete:
		return "Complete"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session drives one review pass over a queue of items: it serves one item
// at a time through Question -> Answer -> grade, persists each outcome, and
// reports completion. Sessions are single-threaded by contract and are
// discarded after use; abandoning one loses nothing but the unreviewed
// remainder of its queue.
type Session struct {
	progress  ProgressStore
	goals     GoalTracker
	queue     []ReviewItem
	current   *ReviewItem
	state     SessionState
	total     int
	completed int
	now       func() time.Time
	rng       *rand.Rand
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithGoalTracker attaches a daily-goal collaborator.
func WithGoalTracker(g GoalTracker) SessionOption {
	return func(s *Session) { s.goals = g }
}

// WithClock overrides the session's time source. Used in tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithShuffleSeed makes shuffled queue order deterministic. Used in tests.
func WithShuffleSeed(seed int64) SessionOption {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// NewSession creates an idle session over the given progress store.
func NewSession(progress ProgressStore, opts ...SessionOption) *Session {
	s := &Session{
		progress: progress,
		state:    SessionIdle,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the queue for mode and serves the first item. It returns
// false, leaving the session idle, when there is nothing to review; that is
// the normal "all done" outcome, not an error. A session that finished (or
// was never started) may be started again.
func (s *Session) Start(mode ReviewMode) (bool, error) {
	if s.state == SessionQuestion || s.state == SessionAnswer {
		return false, fmt.Errorf("%w: start while a review is in progress", ErrSessionState)
	}

	var (
		items []ReviewItem
		err   error
	)
	switch mode.Kind {
	case ModeDue:
		items, err = s.progress.DueItems(s.now())
	case ModeNew:
		limit := mode.Limit
		if limit <= 0 {
			limit = DefaultNewWordLimit
		}
		items, err = s.progress.NewItems(limit)
	case ModeWordbook:
		items, err = s.progress.TagItems(mode.Tag, mode.Limit)
	default:
		return false, fmt.Errorf("%w: unknown review mode %d", ErrSessionState, int(mode.Kind))
	}
	if err != nil {
		return false, fmt.Errorf("load review queue: %w", err)
	}
	if len(items) == 0 {
		s.state = SessionIdle
		return false, nil
	}

	if mode.Shuffle {
		s.rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}

	s.queue = items
	s.total = len(items)
	s.completed = 0
	s.advance()
	return true, nil
}

// advance pops the next item off the end of the queue, or completes the
// session when none remains. The queue is consumed from the end: the most
// recently loaded item is reviewed first.
func (s *Session) advance() {
	if len(s.queue) == 0 {
		s.current = nil
		s.state = SessionComplete
		return
	}
	last := len(s.queue) - 1
	item := s.queue[last]
	s.queue = s.queue[:last]
	s.current = &item
	s.state = SessionQuestion
}

// Current returns the item being served, if any.
func (s *Session) Current() (ReviewItem, bool) {
	if s.current == nil {
		return ReviewItem{}, false
	}
	return *s.current, true
}

// RevealAnswer transitions the current item from Question to Answer. It has
// no persistence side effect.
func (s *Session) RevealAnswer() error {
	if s.state != SessionQuestion {
		return fmt.Errorf("%w: reveal from %s", ErrSessionState, s.state)
	}
	s.state = SessionAnswer
	return nil
}

// Grade records the outcome of the current item and advances to the next
// one. It returns true once the queue is exhausted.
//
// An invalid quality is rejected before anything is consumed: the session
// stays in Answer and the item remains current. Persistence failures are a
// different matter: by then the item has already left the queue, so the
// queue advances regardless and the error comes back wrapped in
// *PersistError. Callers must treat that as fatal to the session;
// retrying would re-apply the scheduler to stale state.
func (s *Session) Grade(quality Quality) (bool, error) {
	if s.state != SessionAnswer {
		return false, fmt.Errorf("%w: grade from %s", ErrSessionState, s.state)
	}

	item := s.current
	now := s.now()
	if err := applyReview(&item.State, quality, now); err != nil {
		return false, err
	}

	s.completed++
	s.advance()

	if err := s.progress.UpdateState(&item.State); err != nil {
		return s.state == SessionComplete, &PersistError{Op: "update state", WordID: item.Word.ID, Err: err}
	}

	rec := &HistoryRecord{
		WordID:       item.Word.ID,
		ReviewedAt:   now,
		Quality:      quality,
		Repetition:   item.State.Repetition,
		IntervalDays: item.State.IntervalDays,
		EaseFactor:   item.State.EaseFactor,
	}
	if err := s.progress.AppendHistory(rec); err != nil {
		return s.state == SessionComplete, &PersistError{Op: "append history", WordID: item.Word.ID, Err: err}
	}

	if s.goals != nil {
		_ = s.goals.ReviewCompleted(now)
	}

	return s.state == SessionComplete, nil
}

// IsComplete reports whether the queue has been exhausted.
func (s *Session) IsComplete() bool {
	return s.state == SessionComplete
}

// State returns the current machine state.
func (s *Session) State() SessionState {
	return s.state
}

// Progress returns how many items have been graded and the queue's
// original size.
func (s *Session) Progress() (completed, total int) {
	return s.completed, s.total
}

// Abandon discards the in-memory queue without persisting anything and
// returns the session to idle. Already-graded items keep their persisted
// updates.
func (s *Session) Abandon() {
	s.queue = nil
	s.current = nil
	s.total = 0
	s.completed = 0
	s.state = SessionIdle
}
