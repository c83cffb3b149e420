package review

import (
	"context"
	"fmt"
	"time"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// ItemLookup resolves the topic and difficulty of a schedulable item.
type ItemLookup interface {
	LookupItem(ctx context.Context, itemType models.ItemType, itemID string) (topicID string, difficulty models.Difficulty, err error)
}

// RoomClassifier reports the mastery room an item currently sits in, derived
// from its accuracy history. The classification rule lives outside this
// system; the scheduler only consumes its result.
type RoomClassifier interface {
	ClassifyRoom(ctx context.Context, itemType models.ItemType, itemID string) (models.Room, error)
}

// ScheduleStore is the slice of the schedule repository the service uses.
type ScheduleStore interface {
	Upsert(ctx context.Context, itemID string, itemType models.ItemType, topicID string, rctx models.ReviewContext, reviewedAt time.Time) (*models.ReviewSchedule, error)
	GetByItem(ctx context.Context, itemType models.ItemType, itemID string) (*models.ReviewSchedule, error)
}

// Attempt is one answer event to be recorded.
type Attempt struct {
	ItemID     string            `json:"item_id"`
	ItemType   models.ItemType   `json:"item_type"`
	Correct    bool              `json:"correct"`
	Confidence models.Confidence `json:"confidence"`
}

// Service turns attempt events into schedule updates, gathering the review
// context from its collaborators.
type Service struct {
	store      ScheduleStore
	items      ItemLookup
	classifier RoomClassifier
	now        func() time.Time
}

// NewService wires the service to its collaborators
func NewService(store ScheduleStore, items ItemLookup, classifier RoomClassifier) *Service {
	return &Service{
		store:      store,
		items:      items,
		classifier: classifier,
		now:        time.Now,
	}
}

// RecordAttempt records one attempt and returns the persisted schedule. The
// clock is read once; the item's room is the one it sits in going into the
// attempt, so the stored last_room reflects the tier observed at review time.
func (s *Service) RecordAttempt(ctx context.Context, attempt Attempt) (*models.ReviewSchedule, error) {
	now := s.now()

	itemType := attempt.ItemType
	if itemType == "" {
		itemType = models.ItemTypeQuestion
	}

	topicID, difficulty, err := s.items.LookupItem(ctx, itemType, attempt.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}

	room, err := s.classifier.ClassifyRoom(ctx, itemType, attempt.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to classify room: %w", err)
	}

	rctx := models.ReviewContext{
		Correct:    attempt.Correct,
		Confidence: attempt.Confidence,
		Room:       room,
		Difficulty: difficulty,
	}
	return s.store.Upsert(ctx, attempt.ItemID, itemType, topicID, rctx, now)
}

// ScheduleFor returns the current schedule for an item, or nil if the item
// was never attempted.
func (s *Service) ScheduleFor(ctx context.Context, itemType models.ItemType, itemID string) (*models.ReviewSchedule, error) {
	return s.store.GetByItem(ctx, itemType, itemID)
}
