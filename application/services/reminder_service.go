package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
	"fermentlog-backend/domain/model"
	"fermentlog-backend/domain/schedule"
	apperrors "fermentlog-backend/pkg/errors"
)

// ReminderEntry is one reminder in a confirmation request.
type ReminderEntry struct {
	ScheduledTime time.Time `json:"scheduledTime" validate:"required"`
	Message       string    `json:"message" validate:"required,min=1,max=200"`
}

// ConfirmRemindersInput is the batch of reminders the user accepted.
type ConfirmRemindersInput struct {
	Reminders []ReminderEntry `json:"reminders" validate:"required,min=1,max=10,dive"`
}

// ReminderService suggests, registers, and cancels batch reminders. External
// scheduler registration happens before the local record is written; a
// reminder is never persisted without a live schedule behind it.
type ReminderService struct {
	batches   ports.BatchRepository
	reminders ports.ReminderRepository
	scheduler ports.ReminderScheduler
	now       func() time.Time
	logger    *zap.Logger
}

// NewReminderService creates a ReminderService.
func NewReminderService(batches ports.BatchRepository, reminders ports.ReminderRepository, scheduler ports.ReminderScheduler, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		batches:   batches,
		reminders: reminders,
		scheduler: scheduler,
		now:       time.Now,
		logger:    logger,
	}
}

// SuggestReminders returns the deterministic reminder candidates for the
// caller's batch. No storage writes happen here.
func (s *ReminderService) SuggestReminders(ctx context.Context, userID, batchID string) ([]schedule.Suggestion, error) {
	batch, found, err := s.batches.Get(ctx, userID, batchID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load batch")
	}
	if !found {
		return nil, apperrors.NewNotFoundError("batch")
	}
	return schedule.Suggest(batch.Stage, batch.StartDate, batch.TargetDuration), nil
}

// ConfirmReminders registers each accepted reminder with the external
// scheduler and persists it. Entries are processed in order; the first
// failure aborts the rest with no rollback of earlier entries, and a
// scheduled time in the past rejects the whole request before anything is
// registered.
func (s *ReminderService) ConfirmReminders(ctx context.Context, userID, batchID string, input ConfirmRemindersInput) ([]model.Reminder, error) {
	_, found, err := s.batches.Get(ctx, userID, batchID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load batch")
	}
	if !found {
		return nil, apperrors.NewNotFoundError("batch")
	}

	now := s.now().UTC()
	for _, entry := range input.Reminders {
		if !entry.ScheduledTime.After(now) {
			return nil, apperrors.NewBadRequestError(
				fmt.Sprintf("scheduled time %s is not in the future", entry.ScheduledTime.UTC().Format(time.RFC3339)))
		}
	}

	created := make([]model.Reminder, 0, len(input.Reminders))
	for _, entry := range input.Reminders {
		reminder := model.Reminder{
			ReminderID:    uuid.NewString(),
			UserID:        userID,
			BatchID:       batchID,
			ScheduledTime: entry.ScheduledTime.UTC(),
			Message:       entry.Message,
			Status:        model.ReminderStatusScheduled,
			CreatedAt:     now,
		}
		reminder.ScheduleName = "reminder-" + reminder.ReminderID

		payload := ports.SchedulePayload{
			UserID:     userID,
			BatchID:    batchID,
			ReminderID: reminder.ReminderID,
			Message:    reminder.Message,
		}
		if err := s.scheduler.CreateSchedule(ctx, reminder.ScheduleName, reminder.ScheduledTime, payload); err != nil {
			return nil, apperrors.NewExternalError("scheduler", err)
		}
		if err := s.reminders.PutReminder(ctx, &reminder); err != nil {
			return nil, apperrors.Wrap(err, "failed to persist reminder")
		}
		created = append(created, reminder)
	}

	s.logger.Info("reminders confirmed",
		zap.String("batchId", batchID),
		zap.String("userId", userID),
		zap.Int("count", len(created)),
	)
	return created, nil
}

// ListReminders returns the caller's reminders. By default only scheduled
// ones are returned; includeAll also returns cancelled reminders.
func (s *ReminderService) ListReminders(ctx context.Context, userID string, includeAll bool) ([]model.Reminder, error) {
	reminders, err := s.reminders.ListReminders(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reminders")
	}
	if includeAll {
		return reminders, nil
	}

	scheduled := make([]model.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.Status == model.ReminderStatusScheduled {
			scheduled = append(scheduled, r)
		}
	}
	return scheduled, nil
}

// CancelReminder flips the reminder to cancelled. The external schedule is
// deleted on a best-effort basis: a scheduler failure is logged and the
// local cancellation proceeds, since local state is authoritative.
func (s *ReminderService) CancelReminder(ctx context.Context, userID, reminderID string) error {
	reminder, found, err := s.reminders.GetReminder(ctx, userID, reminderID)
	if err != nil {
		return apperrors.Wrap(err, "failed to load reminder")
	}
	if !found {
		// Lookups are keyed by owner, so another user's reminder is
		// indistinguishable from a missing one.
		return apperrors.NewNotFoundError("reminder")
	}

	if err := s.scheduler.DeleteSchedule(ctx, reminder.ScheduleName); err != nil {
		s.logger.Warn("failed to delete external schedule, cancelling locally anyway",
			zap.Error(err),
			zap.String("reminderId", reminderID),
			zap.String("scheduleName", reminder.ScheduleName),
		)
	}

	if err := s.reminders.UpdateReminderStatus(ctx, userID, reminderID, model.ReminderStatusCancelled); err != nil {
		return apperrors.Wrap(err, "failed to cancel reminder")
	}

	s.logger.Info("reminder cancelled",
		zap.String("reminderId", reminderID),
		zap.String("userId", userID),
	)
	return nil
}
