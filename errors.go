package lexrain

import (
	"errors"
	"fmt"
)

// Common errors returned by the lexRain library.
var (
	// ErrWordNotFound is returned when a word id does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrInvalidQuality is returned for grades outside the 1-4 range.
	// The scheduler rejects these instead of clamping so that UI bugs
	// surface immediately.
	ErrInvalidQuality = errors.New("quality grade out of range")

	// ErrInvalidRepetition is returned for a negative repetition count.
	ErrInvalidRepetition = errors.New("repetition count must be non-negative")

	// ErrSessionState is returned when a session operation is called from
	// the wrong state (e.g. grading before the answer was revealed).
	ErrSessionState = errors.New("invalid session state")
)

// ValidationError is returned when configuration validation fails.
// Extractable via errors.As().
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// PersistError is returned when a mid-session write fails. It is fatal to
// the session: the graded item has already left the queue, and retrying
// would re-apply the scheduler computation to stale state. Supports
// Unwrap().
type PersistError struct {
	Op     string
	WordID int64
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist: %s for word %d: %v", e.Op, e.WordID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
