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

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a repository bound to the given connection
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject, generating an id if none is set
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	subject.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`INSERT INTO subjects (id, name, created_at) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, subject.ID, subject.Name, subject.CreatedAt); err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// GetByID returns a subject by id, or nil if none exists
func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	query := r.db.Rebind(`SELECT * FROM subjects WHERE id = ?`)
	err := sqlx.GetContext(ctx, r.db, &subject, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return &subject, nil
}

// List returns all subjects sorted by name
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	subjects := []models.Subject{}
	if err := sqlx.SelectContext(ctx, r.db, &subjects, `SELECT * FROM subjects ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}
