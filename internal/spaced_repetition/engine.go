package spaced_repetition

import (
	"time"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// ScheduleState is the slice of a stored schedule the algorithm reads.
type ScheduleState struct {
	Repetitions   int
	IntervalDays  int
	EaseFactor    float64
	CorrectStreak int
}

// NewItemState returns the state assumed for an item that was never reviewed.
func NewItemState() ScheduleState {
	return ScheduleState{
		Repetitions:   0,
		IntervalDays:  InitialIntervalDays,
		EaseFactor:    InitialEaseFactor,
		CorrectStreak: 0,
	}
}

// ScheduleUpdate is the complete next-schedule produced by one attempt.
type ScheduleUpdate struct {
	Repetitions   int
	IntervalDays  int
	EaseFactor    float64
	CorrectStreak int
	LastResult    int
	NextReviewAt  time.Time
}

// ComputeNextSchedule derives the next review state from the previous one and
// the outcome of an attempt. prev == nil means the item has never been
// reviewed. The caller reads the clock once per logical operation and passes
// it in, so the computation itself is deterministic.
func ComputeNextSchedule(prev *ScheduleState, rctx models.ReviewContext, now time.Time) ScheduleUpdate {
	state := NewItemState()
	if prev != nil {
		state = *prev
	}

	quality := Quality(rctx.Correct, rctx.Confidence)
	ease := NextEaseFactor(state.EaseFactor, quality)

	repetitions := 0
	if quality >= PassThreshold {
		repetitions = state.Repetitions + 1
	}

	base := BaseInterval(repetitions, state.IntervalDays, ease, quality)

	streak := 0
	if rctx.Correct {
		streak = state.CorrectStreak + 1
	}

	interval := AdjustInterval(base, rctx, quality, streak)

	return ScheduleUpdate{
		Repetitions:   repetitions,
		IntervalDays:  interval,
		EaseFactor:    ease,
		CorrectStreak: streak,
		LastResult:    quality,
		NextReviewAt:  now.AddDate(0, 0, interval),
	}
}
