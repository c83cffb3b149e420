package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ERINGRYD/estudaqui-hj-28/pkg/models"
)

// Default window within which due-review reminders are sent
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier delivers due-review digests
type Notifier interface {
	SendDueDigest(totalDue int, topics []models.TopicDueSummary) error
}

// DueQueries is the slice of the schedule store the scheduler polls
type DueQueries interface {
	DueSummaryByTopic(ctx context.Context, subjectIDs []string, now time.Time) ([]models.TopicDueSummary, error)
	Stats(ctx context.Context, subjectIDs []string, now time.Time) (*models.ScheduleStats, error)
}

// Scheduler polls the due-query layer on an interval and pushes reminders
// through the notifier.
type Scheduler struct {
	scheduler *gocron.Scheduler
	queries   DueQueries
	notifier  Notifier
	startHour int
	endHour   int
	now       func() time.Time
}

// New creates a scheduler instance. The notification window can be moved with
// NOTIFICATION_START_HOUR and NOTIFICATION_END_HOUR.
func New(queries DueQueries, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		queries:   queries,
		notifier:  notifier,
		startHour: hourFromEnv("NOTIFICATION_START_HOUR", DefaultNotificationStartHour),
		endHour:   hourFromEnv("NOTIFICATION_END_HOUR", DefaultNotificationEndHour),
		now:       time.Now,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndNotify)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndNotify sends a digest if reviews are due and the current hour is
// inside the notification window.
func (s *Scheduler) checkAndNotify() {
	now := s.now()
	if !s.withinWindow(now.Hour()) {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			now.Hour(), s.startHour, s.endHour)
		return
	}
	if err := s.notify(context.Background(), now); err != nil {
		log.Printf("Error sending due-review digest: %v", err)
	}
}

// RunManualCheck forces an immediate due check, ignoring the window
func (s *Scheduler) RunManualCheck(ctx context.Context) error {
	return s.notify(ctx, s.now())
}

func (s *Scheduler) notify(ctx context.Context, now time.Time) error {
	stats, err := s.queries.Stats(ctx, nil, now)
	if err != nil {
		return err
	}
	if stats.TotalDue == 0 {
		return nil
	}
	topics, err := s.queries.DueSummaryByTopic(ctx, nil, now)
	if err != nil {
		return err
	}
	return s.notifier.SendDueDigest(stats.TotalDue, topics)
}

func (s *Scheduler) withinWindow(hour int) bool {
	return hour >= s.startHour && hour <= s.endHour
}

func hourFromEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
