package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestComputeNextScheduleNewItem(t *testing.T) {
	rctx := models.ReviewContext{
		Correct:    true,
		Confidence: models.ConfidenceCertainty,
		Room:       models.RoomDeveloping,
		Difficulty: models.DifficultyMedium,
	}

	update := ComputeNextSchedule(nil, rctx, testNow)

	assert.Equal(t, 5, update.LastResult)
	assert.Equal(t, 1, update.Repetitions)
	assert.InDelta(t, 2.6, update.EaseFactor, 1e-9)
	assert.Equal(t, 5, update.IntervalDays) // base 6 for first repetition, scaled by 0.85
	assert.Equal(t, 1, update.CorrectStreak)
	assert.Equal(t, testNow.AddDate(0, 0, 5), update.NextReviewAt)
}

func TestComputeNextScheduleEstablishedItem(t *testing.T) {
	prev := &ScheduleState{Repetitions: 2, IntervalDays: 10, EaseFactor: 2.0, CorrectStreak: 4}
	rctx := models.ReviewContext{
		Correct:    true,
		Confidence: models.ConfidenceCertainty,
		Room:       models.RoomMastered,
		Difficulty: models.DifficultyEasy,
	}

	update := ComputeNextSchedule(prev, rctx, testNow)

	assert.Equal(t, 3, update.Repetitions)
	assert.InDelta(t, 2.1, update.EaseFactor, 1e-9)
	assert.Equal(t, 5, update.CorrectStreak)
	// base round(10*2.1)=21, room*difficulty=1.265 -> 27, streak bonus -> 30
	assert.Equal(t, 30, update.IntervalDays)
	assert.Equal(t, testNow.AddDate(0, 0, 30), update.NextReviewAt)
}

func TestComputeNextScheduleConfidentMiss(t *testing.T) {
	prev := &ScheduleState{Repetitions: 4, IntervalDays: 30, EaseFactor: 2.2, CorrectStreak: 6}
	rctx := models.ReviewContext{
		Correct:    false,
		Confidence: models.ConfidenceCertainty,
		Room:       models.RoomCritical,
		Difficulty: models.DifficultyHard,
	}

	update := ComputeNextSchedule(prev, rctx, testNow)

	assert.Equal(t, 1, update.LastResult)
	assert.Equal(t, 0, update.Repetitions)
	assert.Equal(t, 1, update.IntervalDays)
	assert.Equal(t, 0, update.CorrectStreak)
	assert.InDelta(t, 1.66, update.EaseFactor, 1e-9)
	assert.Equal(t, testNow.AddDate(0, 0, 1), update.NextReviewAt)
}

func TestComputeNextScheduleStreakCounting(t *testing.T) {
	rctx := models.ReviewContext{Correct: true, Confidence: models.ConfidenceDoubt}

	first := ComputeNextSchedule(nil, rctx, testNow)
	assert.Equal(t, 1, first.CorrectStreak)

	state := ScheduleState{
		Repetitions:   first.Repetitions,
		IntervalDays:  first.IntervalDays,
		EaseFactor:    first.EaseFactor,
		CorrectStreak: first.CorrectStreak,
	}
	second := ComputeNextSchedule(&state, rctx, testNow)
	assert.Equal(t, 2, second.CorrectStreak)

	state.CorrectStreak = second.CorrectStreak
	miss := ComputeNextSchedule(&state, models.ReviewContext{Correct: false, Confidence: models.ConfidenceGuess}, testNow)
	assert.Equal(t, 0, miss.CorrectStreak)
}

func TestComputeNextScheduleLowQualityResetsProgress(t *testing.T) {
	for _, prev := range []*ScheduleState{
		{Repetitions: 1, IntervalDays: 6, EaseFactor: 2.5, CorrectStreak: 1},
		{Repetitions: 10, IntervalDays: 120, EaseFactor: 2.6, CorrectStreak: 10},
	} {
		update := ComputeNextSchedule(prev, models.ReviewContext{Correct: false, Confidence: models.ConfidenceGuess}, testNow)
		assert.Equal(t, 0, update.Repetitions)
		assert.Equal(t, 1, update.IntervalDays)
	}
}

func TestComputeNextScheduleDeterministic(t *testing.T) {
	prev := &ScheduleState{Repetitions: 2, IntervalDays: 10, EaseFactor: 2.0, CorrectStreak: 4}
	rctx := models.ReviewContext{Correct: true, Confidence: models.ConfidenceCertainty}

	a := ComputeNextSchedule(prev, rctx, testNow)
	b := ComputeNextSchedule(prev, rctx, testNow)
	assert.Equal(t, a, b)
}
