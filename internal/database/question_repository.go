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

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository creates a repository bound to the given connection
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts a new question, generating an id if none is set
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if question.Difficulty == "" {
		question.Difficulty = models.DifficultyMedium
	}
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO questions (id, topic_id, prompt, answer, difficulty, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query,
		question.ID, question.TopicID, question.Prompt, question.Answer,
		question.Difficulty, question.CreatedAt, question.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// GetByID returns a question by id, or nil if none exists
func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	query := r.db.Rebind(`SELECT * FROM questions WHERE id = ?`)
	err := sqlx.GetContext(ctx, r.db, &question, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

// GetByTopic returns all questions for a topic
func (r *QuestionRepository) GetByTopic(ctx context.Context, topicID string) ([]models.Question, error) {
	questions := []models.Question{}
	query := r.db.Rebind(`SELECT * FROM questions WHERE topic_id = ? ORDER BY created_at`)
	if err := sqlx.SelectContext(ctx, r.db, &questions, query, topicID); err != nil {
		return nil, fmt.Errorf("failed to get questions by topic: %w", err)
	}
	return questions, nil
}

// LookupItem resolves the topic and difficulty of a schedulable item. Topics
// schedule as a whole with a neutral difficulty.
func (r *QuestionRepository) LookupItem(ctx context.Context, itemType models.ItemType, itemID string) (string, models.Difficulty, error) {
	if itemType == models.ItemTypeTopic {
		return itemID, models.DifficultyMedium, nil
	}
	question, err := r.GetByID(ctx, itemID)
	if err != nil {
		return "", "", err
	}
	if question == nil {
		return "", "", fmt.Errorf("question %s not found", itemID)
	}
	return question.TopicID, question.Difficulty, nil
}
