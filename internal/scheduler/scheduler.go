// Package scheduler drives the time-based side of the bot: per-user
// quiz triggers and the daily translation quota reset.
package scheduler

import (
	"fmt"
	"time"

	"vocadrill/internal/domain"
	"vocadrill/internal/repository"
	"vocadrill/internal/timeutil"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// TriggerNotifier receives quiz trigger fires. The handler implements
// it; the indirection keeps the packages from depending on each other.
type TriggerNotifier interface {
	HandleQuizTrigger(userID int64)
}

// Scheduler wraps a single gocron scheduler running in UTC
type Scheduler struct {
	cron     *gocron.Scheduler
	users    repository.UserRepository
	sys      *domain.SystemConfig
	notifier TriggerNotifier
	logger   *zap.Logger
}

// New creates a stopped scheduler
func New(users repository.UserRepository, sys *domain.SystemConfig, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   gocron.NewScheduler(time.UTC),
		users:  users,
		sys:    sys,
		logger: logger,
	}
}

// SetNotifier attaches the trigger consumer. Must be called before any
// trigger is armed.
func (s *Scheduler) SetNotifier(n TriggerNotifier) {
	s.notifier = n
}

// Start launches the scheduler loop
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

// Stop halts the scheduler loop, letting running jobs finish
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// StartDailyQuotaReset arms the midnight job restoring every user's
// translation quota
func (s *Scheduler) StartDailyQuotaReset() error {
	_, err := s.cron.Every(1).Day().At("00:00").Do(s.resetQuotas)
	if err != nil {
		return fmt.Errorf("schedule quota reset: %w", err)
	}
	return nil
}

func (s *Scheduler) resetQuotas() {
	users, err := s.users.All()
	if err != nil {
		s.logger.Error("Failed to list users for quota reset", zap.Error(err))
		return
	}

	for _, user := range users {
		if err := s.users.ResetQuota(user.ID); err != nil {
			s.logger.Error("Failed to reset quota",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
			continue
		}
	}
	s.logger.Info("Daily quota reset finished", zap.Int("users", len(users)))
}

func quizTag(userID int64) string {
	return fmt.Sprintf("quiz_trigger_%d", userID)
}

// ArmQuizTrigger schedules the user's periodic quiz prompt. The first
// fire is skewed to the next interval boundary so all users land on
// round wall-clock times; re-arming replaces any existing trigger.
func (s *Scheduler) ArmQuizTrigger(userID int64) {
	tag := quizTag(userID)
	_ = s.cron.RemoveByTag(tag)

	_, err := s.cron.Every(s.sys.PollingIntervalMins).Minutes().
		StartAt(time.Now().Add(timeutil.Skew(s.sys.PollingIntervalMins))).
		Tag(tag).
		Do(func() { s.notifier.HandleQuizTrigger(userID) })
	if err != nil {
		s.logger.Error("Failed to arm quiz trigger",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Quiz trigger armed", zap.Int64("user_id", userID))
}

// DisarmQuizTrigger cancels the user's periodic quiz prompt
func (s *Scheduler) DisarmQuizTrigger(userID int64) {
	_ = s.cron.RemoveByTag(quizTag(userID))
}
