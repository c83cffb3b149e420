package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsOverdue(now, now, 0), "due exactly now is not overdue")
	assert.False(t, IsOverdue(now.Add(time.Hour), now, 0))
	assert.True(t, IsOverdue(now.Add(-time.Hour), now, 0))
	assert.False(t, IsOverdue(now.Add(-23*time.Hour), now, 1))
	assert.True(t, IsOverdue(now.Add(-25*time.Hour), now, 1))
}

func TestDaysUntilReview(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due exactly now", now, 0},
		{"partial days round up", now.Add(time.Hour), 1},
		{"one day ahead", now.AddDate(0, 0, 1), 1},
		{"two days ahead", now.AddDate(0, 0, 2), 2},
		{"one day past", now.AddDate(0, 0, -1), -1},
		{"two and a half days past", now.Add(-60 * time.Hour), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilReview(tt.due, now))
		})
	}
}

func TestUrgencyFor(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want models.UrgencyLevel
	}{
		{"past due", now.AddDate(0, 0, -1), models.UrgencyOverdue},
		{"due exactly now", now, models.UrgencyDueToday},
		{"one day ahead", now.AddDate(0, 0, 1), models.UrgencyDueSoon},
		{"two days ahead", now.AddDate(0, 0, 2), models.UrgencyDueSoon},
		{"three days ahead", now.AddDate(0, 0, 3), models.UrgencyScheduled},
		{"far in the future", now.AddDate(0, 1, 0), models.UrgencyScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UrgencyFor(tt.due, now))
		})
	}
}

func TestUrgencyForIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 2)

	assert.Equal(t, UrgencyFor(due, now), UrgencyFor(due, now))
}
