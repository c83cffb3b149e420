package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// TopicRepository handles database operations for topics
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository creates a repository bound to the given connection
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// Create inserts a new topic, generating an id if none is set
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	topic.CreatedAt = now
	topic.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO topics (id, subject_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query,
		topic.ID, topic.SubjectID, topic.Name, topic.CreatedAt, topic.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}
	return nil
}

// GetByID returns a topic by id, or nil if none exists
func (r *TopicRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	var topic models.Topic
	query := r.db.Rebind(`SELECT * FROM topics WHERE id = ?`)
	err := sqlx.GetContext(ctx, r.db, &topic, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return &topic, nil
}

// ListBySubject returns all topics of a subject, sorted by name
func (r *TopicRepository) ListBySubject(ctx context.Context, subjectID string) ([]models.Topic, error) {
	topics := []models.Topic{}
	query := r.db.Rebind(`SELECT * FROM topics WHERE subject_id = ? ORDER BY name`)
	if err := sqlx.SelectContext(ctx, r.db, &topics, query, subjectID); err != nil {
		return nil, fmt.Errorf("failed to get topics by subject: %w", err)
	}
	return topics, nil
}
