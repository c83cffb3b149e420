package spaced_repetition

import (
	"math"
	"time"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// IsOverdue reports whether a due timestamp lies more than thresholdDays days
// in the past. A threshold of zero means anything past due.
func IsOverdue(nextReviewAt, now time.Time, thresholdDays int) bool {
	return now.Sub(nextReviewAt) > time.Duration(thresholdDays)*24*time.Hour
}

// DaysUntilReview returns the whole days until the review, with partial days
// rounded up. Negative values mean the review is overdue.
func DaysUntilReview(nextReviewAt, now time.Time) int {
	return int(math.Ceil(nextReviewAt.Sub(now).Hours() / 24.0))
}

// UrgencyFor buckets a due timestamp relative to now.
func UrgencyFor(nextReviewAt, now time.Time) models.UrgencyLevel {
	days := DaysUntilReview(nextReviewAt, now)
	switch {
	case days < 0:
		return models.UrgencyOverdue
	case days == 0:
		return models.UrgencyDueToday
	case days <= 2:
		return models.UrgencyDueSoon
	default:
		return models.UrgencyScheduled
	}
}
