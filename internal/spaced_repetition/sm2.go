package spaced_repetition

import (
	"math"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// SM-2 parameters for the contextualized variant used by the review engine.
const (
	// MinEaseFactor is the floor of the easiness factor
	MinEaseFactor = 1.3
	// MaxEaseFactor is the ceiling of the easiness factor
	MaxEaseFactor = 2.6
	// InitialEaseFactor is the easiness factor for an item that was never reviewed
	InitialEaseFactor = 2.5
	// InitialIntervalDays is the interval assumed before the first review
	InitialIntervalDays = 1
	// PassThreshold is the lowest quality counted as a successful recall
	PassThreshold = 3
)

// Quality maps a correctness flag and the stated confidence onto the 1-5
// SM-2 quality scale. An unrecognized confidence falls back to a neutral
// value instead of failing.
func Quality(correct bool, confidence models.Confidence) int {
	if correct {
		switch confidence {
		case models.ConfidenceCertainty:
			return 5
		case models.ConfidenceDoubt:
			return 4
		case models.ConfidenceGuess:
			return 3
		default:
			return 4
		}
	}
	if confidence == models.ConfidenceCertainty {
		// Confidently wrong is the worst outcome
		return 1
	}
	return 2
}

// NextEaseFactor applies the SM-2 easiness update for the given quality and
// clamps the result to [MinEaseFactor, MaxEaseFactor].
func NextEaseFactor(ef float64, quality int) float64 {
	q := float64(quality)
	next := ef + (0.1 - (5.0-q)*(0.08+(5.0-q)*0.02))
	if next < MinEaseFactor {
		next = MinEaseFactor
	}
	if next > MaxEaseFactor {
		next = MaxEaseFactor
	}
	return next
}

// BaseInterval derives the un-adjusted next interval in days. repetitions is
// the count after the current attempt has been applied: a failed recall
// forces a one-day retry regardless of how far the item had progressed.
func BaseInterval(repetitions, prevInterval int, ef float64, quality int) int {
	if quality < PassThreshold {
		return 1
	}
	switch repetitions {
	case 0:
		return 1
	case 1:
		return 6
	}
	return int(math.Round(float64(prevInterval) * ef))
}
