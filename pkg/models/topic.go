package models

import "time"

// Subject is the top-level grouping of study material
type Subject struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Topic groups questions inside a subject
type Topic struct {
	ID        string    `json:"id" db:"id"`
	SubjectID string    `json:"subject_id" db:"subject_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
