package models

import "time"

// ItemType identifies the kind of item a schedule tracks
type ItemType string

const (
	ItemTypeQuestion ItemType = "question"
	ItemTypeTopic    ItemType = "topic"
)

// Confidence is the confidence level the learner stated for an attempt
type Confidence string

const (
	ConfidenceCertainty Confidence = "certainty"
	ConfidenceDoubt     Confidence = "doubt"
	ConfidenceGuess     Confidence = "guess"
)

// Room is the mastery tier an item sits in, supplied by an external classifier
type Room string

const (
	RoomIntake     Room = "intake"
	RoomCritical   Room = "critical"
	RoomDeveloping Room = "developing"
	RoomMastered   Room = "mastered"
)

// Difficulty is the authored difficulty tag of an item
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// UrgencyLevel buckets a due timestamp relative to now
type UrgencyLevel string

const (
	UrgencyOverdue   UrgencyLevel = "overdue"
	UrgencyDueToday  UrgencyLevel = "due-today"
	UrgencyDueSoon   UrgencyLevel = "due-soon"
	UrgencyScheduled UrgencyLevel = "scheduled"
)

// ReviewSchedule tracks the spaced-repetition state of a single item.
// There is at most one live schedule per (item_type, item_id).
type ReviewSchedule struct {
	ID             string     `json:"id" db:"id"`
	ItemType       ItemType   `json:"item_type" db:"item_type"`
	ItemID         string     `json:"item_id" db:"item_id"`
	TopicID        string     `json:"topic_id" db:"topic_id"`
	SubjectID      string     `json:"subject_id" db:"subject_id"`
	Repetitions    int        `json:"repetitions" db:"repetitions"`       // Consecutive successful reviews since the last reset
	IntervalDays   int        `json:"interval_days" db:"interval_days"`   // Current gap until the next review, always >= 1
	EaseFactor     float64    `json:"ease_factor" db:"ease_factor"`       // SM-2 EF parameter, bounded [1.3, 2.6]
	CorrectStreak  int        `json:"correct_streak" db:"correct_streak"` // Consecutive correct attempts
	LastReview     *time.Time `json:"last_review" db:"last_review"`       // Nil before the first attempt
	NextReviewAt   time.Time  `json:"next_review_at" db:"next_review_at"`
	LastResult     int        `json:"last_result" db:"last_result"` // 1-5 quality of the most recent attempt
	LastConfidence Confidence `json:"last_confidence" db:"last_confidence"`
	LastRoom       Room       `json:"last_room" db:"last_room"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// ReviewContext carries the circumstances of one attempt into the scheduling
// algorithm. It is never persisted.
type ReviewContext struct {
	Correct    bool       `json:"correct"`
	Confidence Confidence `json:"confidence"`
	Room       Room       `json:"room"`
	Difficulty Difficulty `json:"difficulty"`
}
