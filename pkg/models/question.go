package models

import "time"

// Question is a schedulable quiz item. Content management lives outside this
// system; the scheduler only needs the topic relation and the difficulty tag.
type Question struct {
	ID         string     `json:"id" db:"id"`
	TopicID    string     `json:"topic_id" db:"topic_id"`
	Prompt     string     `json:"prompt" db:"prompt"`
	Answer     string     `json:"answer" db:"answer"`
	Difficulty Difficulty `json:"difficulty" db:"difficulty"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
