package lexrain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNextStateFirstSuccess(t *testing.T) {
	rep, interval, ease, err := NextState(0, DefaultEaseFactor, QualityGood)
	if err != nil {
		t.Fatalf("NextState failed: %v", err)
	}
	if rep != 1 {
		t.Errorf("repetition = %d, want 1", rep)
	}
	if interval != 1 {
		t.Errorf("interval = %d, want 1", interval)
	}
	if ease >= DefaultEaseFactor {
		t.Errorf("ease = %v, want reduced from %v on a Good answer", ease, DefaultEaseFactor)
	}
}

func TestNextStateSecondSuccess(t *testing.T) {
	_, interval, _, err := NextState(1, DefaultEaseFactor, QualityGood)
	if err != nil {
		t.Fatalf("NextState failed: %v", err)
	}
	if interval != 6 {
		t.Errorf("interval = %d, want 6", interval)
	}
}

func TestNextStateLapseResets(t *testing.T) {
	for _, q := range []Quality{QualityForgot, QualityHard} {
		rep, interval, _, err := NextState(7, 2.8, q)
		if err != nil {
			t.Fatalf("NextState(%s) failed: %v", q, err)
		}
		if rep != 0 {
			t.Errorf("%s: repetition = %d, want 0", q, rep)
		}
		if interval != 1 {
			t.Errorf("%s: interval = %d, want 1", q, interval)
		}
	}
}

func TestNextStateLapseStillAdjustsEase(t *testing.T) {
	_, _, ease, err := NextState(3, 2.5, QualityForgot)
	if err != nil {
		t.Fatalf("NextState failed: %v", err)
	}
	// q=1: delta = 0.1 - 4*(0.08 + 4*0.02) = -0.54
	want := 2.5 - 0.54
	if math.Abs(ease-want) > 1e-9 {
		t.Errorf("ease = %v, want %v", ease, want)
	}
}

func TestNextStateEaseFloor(t *testing.T) {
	for rep := 0; rep < 5; rep++ {
		for q := QualityForgot; q <= QualityEasy; q++ {
			_, _, ease, err := NextState(rep, MinEaseFactor, q)
			if err != nil {
				t.Fatalf("NextState(%d, %s) failed: %v", rep, q, err)
			}
			if ease < MinEaseFactor {
				t.Errorf("NextState(%d, %s): ease %v below floor", rep, q, ease)
			}
		}
	}
}

func TestNextStateEasyKeepsEase(t *testing.T) {
	// The formula's constants assume a 0-5 scale, so q=4 yields exactly
	// zero adjustment.
	_, _, ease, err := NextState(2, 2.5, QualityEasy)
	if err != nil {
		t.Fatalf("NextState failed: %v", err)
	}
	if ease != 2.5 {
		t.Errorf("ease = %v, want 2.5 unchanged", ease)
	}
}

// TestNextStateGradeSequence is a regression fixture: a fresh word graded
// Good, Good, Easy must walk through exactly these states.
func TestNextStateGradeSequence(t *testing.T) {
	steps := []struct {
		quality      Quality
		wantRep      int
		wantInterval int
		wantEase     float64
	}{
		{QualityGood, 1, 1, 2.36},
		{QualityGood, 2, 6, 2.2199999999999998},
		{QualityEasy, 3, 4, 2.2199999999999998},
	}

	rep, ease := 0, DefaultEaseFactor
	for i, step := range steps {
		var interval int
		var err error
		rep, interval, ease, err = NextState(rep, ease, step.quality)
		if err != nil {
			t.Fatalf("step %d: NextState failed: %v", i, err)
		}
		if rep != step.wantRep {
			t.Errorf("step %d: repetition = %d, want %d", i, rep, step.wantRep)
		}
		if interval != step.wantInterval {
			t.Errorf("step %d: interval = %d, want %d", i, interval, step.wantInterval)
		}
		if ease != step.wantEase {
			t.Errorf("step %d: ease = %v, want %v", i, ease, step.wantEase)
		}
	}
}

func TestNextStateRejectsInvalidQuality(t *testing.T) {
	for _, q := range []Quality{0, 5, -1, 42} {
		_, _, _, err := NextState(0, DefaultEaseFactor, q)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("NextState(quality %d): error = %v, want ErrInvalidQuality", int(q), err)
		}
	}
}

func TestNextStateRejectsNegativeRepetition(t *testing.T) {
	_, _, _, err := NextState(-1, DefaultEaseFactor, QualityGood)
	if !errors.Is(err, ErrInvalidRepetition) {
		t.Errorf("error = %v, want ErrInvalidRepetition", err)
	}
}

func TestApplyReviewMastery(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Interval 11 * 2.2 rounds to 24 > 21: mastered.
	st := &MemoryState{WordID: 1, Repetition: 11, EaseFactor: 2.2}
	if err := applyReview(st, QualityGood, now); err != nil {
		t.Fatalf("applyReview failed: %v", err)
	}
	if st.IntervalDays <= MasteredIntervalDays {
		t.Fatalf("interval = %d, expected above mastery threshold", st.IntervalDays)
	}
	if st.Mastery != MasteryMastered {
		t.Errorf("mastery = %s, want Mastered", st.Mastery)
	}
	if got := st.NextDue; !got.Equal(now.AddDate(0, 0, st.IntervalDays)) {
		t.Errorf("next due = %v, want now + %d days", got, st.IntervalDays)
	}

	// A lapse drops it straight back to Learning.
	if err := applyReview(st, QualityForgot, now); err != nil {
		t.Fatalf("applyReview failed: %v", err)
	}
	if st.Mastery != MasteryLearning {
		t.Errorf("mastery after lapse = %s, want Learning", st.Mastery)
	}
	if st.Repetition != 0 || st.IntervalDays != 1 {
		t.Errorf("state after lapse = rep %d interval %d, want 0/1", st.Repetition, st.IntervalDays)
	}
}

func TestApplyReviewShortIntervalStaysLearning(t *testing.T) {
	now := time.Now()
	st := NewMemoryState(1, now)
	if err := applyReview(st, QualityEasy, now); err != nil {
		t.Fatalf("applyReview failed: %v", err)
	}
	if st.Mastery != MasteryLearning {
		t.Errorf("mastery = %s, want Learning for a 1-day interval", st.Mastery)
	}
}
