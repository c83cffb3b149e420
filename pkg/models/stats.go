package models

import "time"

// TopicDueSummary aggregates due schedules for one topic
type TopicDueSummary struct {
	TopicID     string `json:"topic_id" db:"topic_id"`
	TopicName   string `json:"topic_name" db:"topic_name"` // Empty when the topic row is gone
	SubjectID   string `json:"subject_id" db:"subject_id"`
	DueCount    int    `json:"due_count" db:"due_count"`
	UrgentCount int    `json:"urgent_count" db:"urgent_count"` // Overdue by more than 24 hours
}

// ScheduleStats aggregates the due workload across all tracked items
type ScheduleStats struct {
	TotalDue         int            `json:"total_due"`
	DueByRoom        map[Room]int   `json:"due_by_room"`
	DueBySubject     map[string]int `json:"due_by_subject"`
	AvgCorrectStreak float64        `json:"avg_correct_streak"`
	MaxCorrectStreak int            `json:"max_correct_streak"`
	NextUpcoming     *time.Time     `json:"next_upcoming"` // Earliest next_review_at strictly in the future, nil if none
}
