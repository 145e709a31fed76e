package lexrain

import (
	"fmt"
	"math"
	"time"
)

// NextState computes the next memory state from a graded review using the
// SuperMemo-2 update. It is pure: no I/O, deterministic, and total over
// valid inputs.
//
// On a passing grade the interval progresses 1 day, 6 days, then
// round(repetition * easeFactor); a lapse resets the repetition count and
// schedules a retry for tomorrow. The ease factor is adjusted on every
// review, lapse or not, from the original quality.
func NextState(repetition int, easeFactor float64, quality Quality) (newRepetition, intervalDays int, newEase float64, err error) {
	if !quality.IsValid() {
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrInvalidQuality, int(quality))
	}
	if repetition < 0 {
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrInvalidRepetition, repetition)
	}

	if quality.Passing() {
		switch repetition {
		case 0:
			intervalDays = 1
		case 1:
			intervalDays = 6
		default:
			intervalDays = int(math.Round(float64(repetition) * easeFactor))
		}
		newRepetition = repetition + 1
	} else {
		newRepetition = 0
		intervalDays = 1
	}

	// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), floored at 1.3.
	// The constants assume a 0-5 grading scale while grades arrive on 1-4,
	// so even an Easy answer never earns the full +0.1 boost. Kept as-is
	// for interval compatibility with existing decks; rescaling is a
	// product decision, not a bug fix.
	d := float64(5 - int(quality))
	newEase = easeFactor + (0.1 - d*(0.08+d*0.02))
	if newEase < MinEaseFactor {
		newEase = MinEaseFactor
	}

	return newRepetition, intervalDays, newEase, nil
}

// applyReview folds one graded review into st: scheduler update, next due
// date, and the cached mastery classification. A passing grade whose
// interval exceeds MasteredIntervalDays marks the word mastered; anything
// else, including every lapse, leaves it in Learning.
func applyReview(st *MemoryState, quality Quality, now time.Time) error {
	rep, interval, ease, err := NextState(st.Repetition, st.EaseFactor, quality)
	if err != nil {
		return err
	}

	st.Repetition = rep
	st.IntervalDays = interval
	st.EaseFactor = ease
	st.NextDue = now.AddDate(0, 0, interval)

	if quality.Passing() && interval > MasteredIntervalDays {
		st.Mastery = MasteryMastered
	} else {
		st.Mastery = MasteryLearning
	}
	return nil
}
