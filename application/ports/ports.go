// Package ports defines the narrow interfaces the domain services depend on:
// entity accessors over the single-table store and the external
// collaborators (object storage, reminder scheduler).
package ports

import (
	"context"
	"time"

	"fermentlog-backend/domain/model"
)

// UserRepository creates user records idempotently on first authenticated
// request. Concurrent first-requests may race; last write wins.
type UserRepository interface {
	EnsureUser(ctx context.Context, userID, email string) error
}

// BatchRepository provides the batch access patterns.
type BatchRepository interface {
	Put(ctx context.Context, batch *model.Batch) error
	// Get is a direct point lookup when the owner is known.
	Get(ctx context.Context, userID, batchID string) (*model.Batch, bool, error)
	// FindByID looks a batch up by id alone via the secondary index.
	FindByID(ctx context.Context, batchID string) (*model.Batch, bool, error)
	// ListByUser returns the user's batches, most recent first.
	ListByUser(ctx context.Context, userID string, limit int32) ([]model.Batch, error)
	// Update merges the named fields into an existing batch record.
	Update(ctx context.Context, userID, batchID string, fields map[string]interface{}) error
}

// EventRepository provides the event access patterns for one batch.
type EventRepository interface {
	PutEvent(ctx context.Context, event *model.Event) error
	// ListEvents returns events in chronological order up to limit.
	ListEvents(ctx context.Context, batchID string, limit int32) ([]model.Event, error)
	DeleteEvent(ctx context.Context, batchID, timestamp string) error
}

// ReminderRepository provides the reminder access patterns.
type ReminderRepository interface {
	PutReminder(ctx context.Context, reminder *model.Reminder) error
	GetReminder(ctx context.Context, userID, reminderID string) (*model.Reminder, bool, error)
	ListReminders(ctx context.Context, userID string) ([]model.Reminder, error)
	UpdateReminderStatus(ctx context.Context, userID, reminderID string, status model.ReminderStatus) error
}

// DeviceRepository provides the device access patterns.
type DeviceRepository interface {
	PutDevice(ctx context.Context, device *model.Device) error
	ListDevices(ctx context.Context, userID string) ([]model.Device, error)
	DeleteDevice(ctx context.Context, userID, deviceID string) error
}

// ObjectStore issues time-limited URLs for direct reads and writes of photo
// bytes. Binary payloads never transit the compute layer.
type ObjectStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// SchedulePayload is the message delivered when a reminder schedule fires.
type SchedulePayload struct {
	UserID     string `json:"userId"`
	BatchID    string `json:"batchId"`
	ReminderID string `json:"reminderId"`
	Message    string `json:"message"`
}

// ReminderScheduler registers and removes one-shot schedules with the
// external time-based scheduler.
type ReminderScheduler interface {
	CreateSchedule(ctx context.Context, name string, at time.Time, payload SchedulePayload) error
	DeleteSchedule(ctx context.Context, name string) error
}
