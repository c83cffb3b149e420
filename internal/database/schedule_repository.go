package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ERINGRYD/estudaqui-hj-28/internal/spaced_repetition"
	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// ScheduleRepository persists review schedules and answers due-item queries.
// One schedule row exists per (item_type, item_id).
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a repository bound to the given connection
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// DueFilter narrows due-item queries
type DueFilter struct {
	// SubjectIDs restricts results to the given subjects when non-empty
	SubjectIDs []string
	// Limit truncates the result when positive
	Limit int
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	sqlx.QueryerContext
	Rebind(string) string
	DriverName() string
}

// Upsert records one attempt for an item. It loads the previous schedule,
// computes the next one through the engine and writes it back inside a single
// transaction. The read takes a row lock on postgres and sqlite allows one
// writer at a time, so concurrent attempts for the same item cannot
// interleave their read and write phases on either driver.
//
// reviewedAt is the wall-clock time of the attempt, read once by the caller.
// It doubles as the logical-attempt identity: retrying the call with the same
// reviewedAt returns the stored record without counting the attempt twice.
func (r *ScheduleRepository) Upsert(ctx context.Context, itemID string, itemType models.ItemType, topicID string, rctx models.ReviewContext, reviewedAt time.Time) (*models.ReviewSchedule, error) {
	reviewedAt = reviewedAt.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer tx.Rollback()

	existing, err := getByItemForUpdate(ctx, tx, itemType, itemID)
	if err != nil {
		return nil, err
	}

	if existing != nil && existing.LastReview != nil && existing.LastReview.Equal(reviewedAt) {
		// Retried write for the same logical attempt
		return existing, nil
	}

	var prev *spaced_repetition.ScheduleState
	if existing != nil {
		prev = &spaced_repetition.ScheduleState{
			Repetitions:   existing.Repetitions,
			IntervalDays:  existing.IntervalDays,
			EaseFactor:    existing.EaseFactor,
			CorrectStreak: existing.CorrectStreak,
		}
	}
	update := spaced_repetition.ComputeNextSchedule(prev, rctx, reviewedAt)

	subjectID, err := subjectForTopic(ctx, tx, topicID)
	if err != nil {
		return nil, err
	}

	sched := &models.ReviewSchedule{
		ItemType:       itemType,
		ItemID:         itemID,
		TopicID:        topicID,
		SubjectID:      subjectID,
		Repetitions:    update.Repetitions,
		IntervalDays:   update.IntervalDays,
		EaseFactor:     update.EaseFactor,
		CorrectStreak:  update.CorrectStreak,
		LastReview:     &reviewedAt,
		NextReviewAt:   update.NextReviewAt,
		LastResult:     update.LastResult,
		LastConfidence: rctx.Confidence,
		LastRoom:       rctx.Room,
		UpdatedAt:      reviewedAt,
	}

	if existing == nil {
		sched.ID = uuid.NewString()
		sched.CreatedAt = reviewedAt
		query := tx.Rebind(`
			INSERT INTO review_schedules (
				id, item_type, item_id, topic_id, subject_id,
				repetitions, interval_days, ease_factor, correct_streak,
				last_review, next_review_at, last_result, last_confidence, last_room,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if _, err := tx.ExecContext(ctx, query,
			sched.ID, sched.ItemType, sched.ItemID, sched.TopicID, sched.SubjectID,
			sched.Repetitions, sched.IntervalDays, sched.EaseFactor, sched.CorrectStreak,
			sched.LastReview, sched.NextReviewAt, sched.LastResult, sched.LastConfidence, sched.LastRoom,
			sched.CreatedAt, sched.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to create schedule: %w", err)
		}
	} else {
		sched.ID = existing.ID
		sched.CreatedAt = existing.CreatedAt
		query := tx.Rebind(`
			UPDATE review_schedules SET
				topic_id = ?,
				subject_id = ?,
				repetitions = ?,
				interval_days = ?,
				ease_factor = ?,
				correct_streak = ?,
				last_review = ?,
				next_review_at = ?,
				last_result = ?,
				last_confidence = ?,
				last_room = ?,
				updated_at = ?
			WHERE id = ?
		`)
		if _, err := tx.ExecContext(ctx, query,
			sched.TopicID, sched.SubjectID,
			sched.Repetitions, sched.IntervalDays, sched.EaseFactor, sched.CorrectStreak,
			sched.LastReview, sched.NextReviewAt, sched.LastResult, sched.LastConfidence, sched.LastRoom,
			sched.UpdatedAt, sched.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to update schedule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit upsert: %w", err)
	}
	return sched, nil
}

// GetByItem returns the schedule for an item, or nil if none exists
func (r *ScheduleRepository) GetByItem(ctx context.Context, itemType models.ItemType, itemID string) (*models.ReviewSchedule, error) {
	return getByItem(ctx, r.db, itemType, itemID)
}

// GetByItemID returns the schedule for an item id regardless of item type,
// or nil if none exists
func (r *ScheduleRepository) GetByItemID(ctx context.Context, itemID string) (*models.ReviewSchedule, error) {
	var sched models.ReviewSchedule
	query := r.db.Rebind(`SELECT * FROM review_schedules WHERE item_id = ? LIMIT 1`)
	err := sqlx.GetContext(ctx, r.db, &sched, query, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &sched, nil
}

func getByItem(ctx context.Context, q queryer, itemType models.ItemType, itemID string) (*models.ReviewSchedule, error) {
	return selectByItem(ctx, q, itemType, itemID, false)
}

// getByItemForUpdate reads the schedule with a row lock on postgres, so two
// concurrent upserts for the same item serialize their read phases instead of
// both computing from the same stale snapshot under READ COMMITTED. sqlite
// rejects the locking clause and serializes writers on its own.
func getByItemForUpdate(ctx context.Context, q queryer, itemType models.ItemType, itemID string) (*models.ReviewSchedule, error) {
	return selectByItem(ctx, q, itemType, itemID, true)
}

func selectByItem(ctx context.Context, q queryer, itemType models.ItemType, itemID string, forUpdate bool) (*models.ReviewSchedule, error) {
	var sched models.ReviewSchedule
	query := `SELECT * FROM review_schedules WHERE item_type = ? AND item_id = ?`
	if forUpdate && q.DriverName() == "postgres" {
		query += ` FOR UPDATE`
	}
	err := sqlx.GetContext(ctx, q, &sched, q.Rebind(query), itemType, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &sched, nil
}

// subjectForTopic resolves the denormalized subject reference at write time.
// A schedule without a topic keeps an empty subject.
func subjectForTopic(ctx context.Context, q queryer, topicID string) (string, error) {
	if topicID == "" {
		return "", nil
	}
	var subjectID string
	query := q.Rebind(`SELECT subject_id FROM topics WHERE id = ?`)
	err := sqlx.GetContext(ctx, q, &subjectID, query, topicID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve subject for topic: %w", err)
	}
	return subjectID, nil
}

// DueItemIDs returns ids of items due at or before now, most overdue first
func (r *ScheduleRepository) DueItemIDs(ctx context.Context, filter DueFilter, now time.Time) ([]string, error) {
	query := `SELECT item_id FROM review_schedules WHERE next_review_at <= ?`
	args := []interface{}{now.UTC()}

	if len(filter.SubjectIDs) > 0 {
		query += ` AND subject_id IN (?)`
		args = append(args, filter.SubjectIDs)
	}
	query += ` ORDER BY next_review_at ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build due query: %w", err)
	}

	ids := []string{}
	if err := sqlx.SelectContext(ctx, r.db, &ids, r.db.Rebind(query), expanded...); err != nil {
		return nil, fmt.Errorf("failed to get due items: %w", err)
	}
	return ids, nil
}

// DueSummaryByTopic groups due schedules by topic, most urgent topics first.
// Urgent means overdue by more than 24 hours at the given now.
func (r *ScheduleRepository) DueSummaryByTopic(ctx context.Context, subjectIDs []string, now time.Time) ([]models.TopicDueSummary, error) {
	now = now.UTC()
	urgentBefore := now.Add(-24 * time.Hour)

	query := `
		SELECT rs.topic_id, rs.subject_id,
		       COALESCE(t.name, '') AS topic_name,
		       COUNT(*) AS due_count,
		       SUM(CASE WHEN rs.next_review_at < ? THEN 1 ELSE 0 END) AS urgent_count
		FROM review_schedules rs
		LEFT JOIN topics t ON rs.topic_id = t.id
		WHERE rs.next_review_at <= ?`
	args := []interface{}{urgentBefore, now}

	if len(subjectIDs) > 0 {
		query += ` AND rs.subject_id IN (?)`
		args = append(args, subjectIDs)
	}
	query += `
		GROUP BY rs.topic_id, rs.subject_id, t.name
		ORDER BY urgent_count DESC, due_count DESC`

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary query: %w", err)
	}

	summaries := []models.TopicDueSummary{}
	if err := sqlx.SelectContext(ctx, r.db, &summaries, r.db.Rebind(query), expanded...); err != nil {
		return nil, fmt.Errorf("failed to get due summary: %w", err)
	}
	return summaries, nil
}

// Stats aggregates the due workload: totals, per-room and per-subject due
// counts, streak aggregates over due schedules, and the earliest upcoming
// review. now is read once by the caller so all sub-queries agree on it.
func (r *ScheduleRepository) Stats(ctx context.Context, subjectIDs []string, now time.Time) (*models.ScheduleStats, error) {
	now = now.UTC()
	stats := &models.ScheduleStats{
		DueByRoom:    make(map[models.Room]int),
		DueBySubject: make(map[string]int),
	}

	var totals struct {
		TotalDue  int             `db:"total_due"`
		AvgStreak sql.NullFloat64 `db:"avg_streak"`
		MaxStreak sql.NullInt64   `db:"max_streak"`
	}
	query := `
		SELECT COUNT(*) AS total_due,
		       AVG(correct_streak) AS avg_streak,
		       MAX(correct_streak) AS max_streak
		FROM review_schedules
		WHERE next_review_at <= ?`
	args := []interface{}{now}
	if len(subjectIDs) > 0 {
		query += ` AND subject_id IN (?)`
		args = append(args, subjectIDs)
	}
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}
	if err := sqlx.GetContext(ctx, r.db, &totals, r.db.Rebind(q), expanded...); err != nil {
		return nil, fmt.Errorf("failed to get stats totals: %w", err)
	}
	stats.TotalDue = totals.TotalDue
	if totals.AvgStreak.Valid {
		stats.AvgCorrectStreak = totals.AvgStreak.Float64
	}
	if totals.MaxStreak.Valid {
		stats.MaxCorrectStreak = int(totals.MaxStreak.Int64)
	}

	type groupCount struct {
		Key   string `db:"grp"`
		Count int    `db:"cnt"`
	}

	byRoom := []groupCount{}
	query = `
		SELECT last_room AS grp, COUNT(*) AS cnt
		FROM review_schedules
		WHERE next_review_at <= ?`
	args = []interface{}{now}
	if len(subjectIDs) > 0 {
		query += ` AND subject_id IN (?)`
		args = append(args, subjectIDs)
	}
	query += ` GROUP BY last_room`
	q, expanded, err = sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}
	if err := sqlx.SelectContext(ctx, r.db, &byRoom, r.db.Rebind(q), expanded...); err != nil {
		return nil, fmt.Errorf("failed to get stats by room: %w", err)
	}
	for _, row := range byRoom {
		stats.DueByRoom[models.Room(row.Key)] = row.Count
	}

	bySubject := []groupCount{}
	query = `
		SELECT subject_id AS grp, COUNT(*) AS cnt
		FROM review_schedules
		WHERE next_review_at <= ?`
	args = []interface{}{now}
	if len(subjectIDs) > 0 {
		query += ` AND subject_id IN (?)`
		args = append(args, subjectIDs)
	}
	query += ` GROUP BY subject_id`
	q, expanded, err = sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}
	if err := sqlx.SelectContext(ctx, r.db, &bySubject, r.db.Rebind(q), expanded...); err != nil {
		return nil, fmt.Errorf("failed to get stats by subject: %w", err)
	}
	for _, row := range bySubject {
		stats.DueBySubject[row.Key] = row.Count
	}

	var upcoming time.Time
	query = `
		SELECT next_review_at FROM review_schedules
		WHERE next_review_at > ?`
	args = []interface{}{now}
	if len(subjectIDs) > 0 {
		query += ` AND subject_id IN (?)`
		args = append(args, subjectIDs)
	}
	query += ` ORDER BY next_review_at ASC LIMIT 1`
	q, expanded, err = sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}
	err = sqlx.GetContext(ctx, r.db, &upcoming, r.db.Rebind(q), expanded...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get next upcoming review: %w", err)
	}
	if err == nil {
		stats.NextUpcoming = &upcoming
	}

	return stats, nil
}

// Delete removes the schedule for an item. Called by the owner of the item
// when the item itself is deleted.
func (r *ScheduleRepository) Delete(ctx context.Context, itemType models.ItemType, itemID string) error {
	query := r.db.Rebind(`DELETE FROM review_schedules WHERE item_type = ? AND item_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, itemType, itemID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
