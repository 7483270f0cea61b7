package dynamodb

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fermentlog-backend/domain/keys"
	"fermentlog-backend/domain/model"
)

// Entity type discriminators stored on every item.
const (
	entityTypeUser     = "USER"
	entityTypeBatch    = "BATCH"
	entityTypeEvent    = "EVENT"
	entityTypeReminder = "REMINDER"
	entityTypeDevice   = "DEVICE"
)

// Repository implements the entity accessors: the named queries of the
// single-table design, each fixing the key prefix or index for one access
// pattern.
type Repository struct {
	store  *Store
	logger *zap.Logger
}

// NewRepository creates a Repository over the given store.
func NewRepository(store *Store, logger *zap.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

type userItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	model.User
}

type batchItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	model.Batch
}

type eventItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	model.Event
}

type reminderItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	model.Reminder
}

type deviceItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	model.Device
}

// EnsureUser creates the user record if it does not exist yet. Concurrent
// first-requests may both write; User has no mutable fields of consequence,
// so last write wins and the record converges.
func (r *Repository) EnsureUser(ctx context.Context, userID, email string) error {
	pk, sk := keys.UserKey(userID)

	var existing userItem
	found, err := r.store.Get(ctx, pk, sk, &existing)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	item := userItem{
		PK:         pk,
		SK:         sk,
		EntityType: entityTypeUser,
		User: model.User{
			UserID:    userID,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		},
	}
	if err := r.store.Put(ctx, item); err != nil {
		return err
	}

	r.logger.Info("user record created", zap.String("user_id", userID))
	return nil
}

// Put persists a full batch record.
func (r *Repository) Put(ctx context.Context, batch *model.Batch) error {
	pk, sk := keys.BatchKey(batch.UserID, batch.BatchID)
	gsi1pk, gsi1sk := keys.BatchGSI1(batch.BatchID, batch.UserID)
	return r.store.Put(ctx, batchItem{
		PK:         pk,
		SK:         sk,
		GSI1PK:     gsi1pk,
		GSI1SK:     gsi1sk,
		EntityType: entityTypeBatch,
		Batch:      *batch,
	})
}

// Get is a direct point lookup of one batch when the owner is known.
func (r *Repository) Get(ctx context.Context, userID, batchID string) (*model.Batch, bool, error) {
	pk, sk := keys.BatchKey(userID, batchID)

	var item batchItem
	found, err := r.store.Get(ctx, pk, sk, &item)
	if err != nil || !found {
		return nil, false, err
	}
	return &item.Batch, true, nil
}

// FindByID looks a batch up by id alone via the secondary index.
func (r *Repository) FindByID(ctx context.Context, batchID string) (*model.Batch, bool, error) {
	gsi1pk, _ := keys.BatchGSI1(batchID, "")

	var items []batchItem
	err := r.store.Query(ctx, gsi1pk, QueryOptions{UseGSI1: true, Limit: 1}, &items)
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return &items[0].Batch, true, nil
}

// ListByUser returns the user's batches, most recent first.
func (r *Repository) ListByUser(ctx context.Context, userID string, limit int32) ([]model.Batch, error) {
	pk, _ := keys.BatchKey(userID, "")

	var items []batchItem
	err := r.store.Query(ctx, pk, QueryOptions{
		SKPrefix:   keys.PrefixBatch,
		Limit:      limit,
		Descending: true,
	}, &items)
	if err != nil {
		return nil, err
	}

	batches := make([]model.Batch, len(items))
	for i, item := range items {
		batches[i] = item.Batch
	}
	return batches, nil
}

// Update merges the named fields into an existing batch record.
func (r *Repository) Update(ctx context.Context, userID, batchID string, fields map[string]interface{}) error {
	pk, sk := keys.BatchKey(userID, batchID)
	return r.store.Update(ctx, pk, sk, fields)
}

// EventRepository view of the repository.

// PutEvent persists an event record; an existing event with the same
// timestamp on the same batch is overwritten.
func (r *Repository) PutEvent(ctx context.Context, event *model.Event) error {
	pk, sk := keys.EventKey(event.BatchID, event.Timestamp)
	return r.store.Put(ctx, eventItem{
		PK:         pk,
		SK:         sk,
		EntityType: entityTypeEvent,
		Event:      *event,
	})
}

// ListEvents returns one batch's events in chronological order.
func (r *Repository) ListEvents(ctx context.Context, batchID string, limit int32) ([]model.Event, error) {
	pk, _ := keys.EventKey(batchID, "")

	var items []eventItem
	err := r.store.Query(ctx, pk, QueryOptions{
		SKPrefix: keys.PrefixEvent,
		Limit:    limit,
	}, &items)
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, len(items))
	for i, item := range items {
		events[i] = item.Event
	}
	return events, nil
}

// DeleteEvent hard-deletes one event.
func (r *Repository) DeleteEvent(ctx context.Context, batchID, timestamp string) error {
	pk, sk := keys.EventKey(batchID, timestamp)
	return r.store.Delete(ctx, pk, sk)
}

// PutReminder persists a reminder record.
func (r *Repository) PutReminder(ctx context.Context, reminder *model.Reminder) error {
	pk, sk := keys.ReminderKey(reminder.UserID, reminder.ReminderID)
	return r.store.Put(ctx, reminderItem{
		PK:         pk,
		SK:         sk,
		EntityType: entityTypeReminder,
		Reminder:   *reminder,
	})
}

// GetReminder loads one reminder by owner and id.
func (r *Repository) GetReminder(ctx context.Context, userID, reminderID string) (*model.Reminder, bool, error) {
	pk, sk := keys.ReminderKey(userID, reminderID)

	var item reminderItem
	found, err := r.store.Get(ctx, pk, sk, &item)
	if err != nil || !found {
		return nil, false, err
	}
	return &item.Reminder, true, nil
}

// ListReminders returns all of a user's reminders.
func (r *Repository) ListReminders(ctx context.Context, userID string) ([]model.Reminder, error) {
	pk, _ := keys.ReminderKey(userID, "")

	var items []reminderItem
	err := r.store.Query(ctx, pk, QueryOptions{SKPrefix: keys.PrefixReminder}, &items)
	if err != nil {
		return nil, err
	}

	reminders := make([]model.Reminder, len(items))
	for i, item := range items {
		reminders[i] = item.Reminder
	}
	return reminders, nil
}

// UpdateReminderStatus flips a reminder's lifecycle status in place.
func (r *Repository) UpdateReminderStatus(ctx context.Context, userID, reminderID string, status model.ReminderStatus) error {
	pk, sk := keys.ReminderKey(userID, reminderID)
	return r.store.Update(ctx, pk, sk, map[string]interface{}{"Status": string(status)})
}

// PutDevice upserts a device registration in place.
func (r *Repository) PutDevice(ctx context.Context, device *model.Device) error {
	pk, sk := keys.DeviceKey(device.UserID, device.DeviceID)
	return r.store.Put(ctx, deviceItem{
		PK:         pk,
		SK:         sk,
		EntityType: entityTypeDevice,
		Device:     *device,
	})
}

// ListDevices returns all of a user's registered devices.
func (r *Repository) ListDevices(ctx context.Context, userID string) ([]model.Device, error) {
	pk, _ := keys.DeviceKey(userID, "")

	var items []deviceItem
	err := r.store.Query(ctx, pk, QueryOptions{SKPrefix: keys.PrefixDevice}, &items)
	if err != nil {
		return nil, err
	}

	devices := make([]model.Device, len(items))
	for i, item := range items {
		devices[i] = item.Device
	}
	return devices, nil
}

// DeleteDevice hard-deletes one device registration.
func (r *Repository) DeleteDevice(ctx context.Context, userID, deviceID string) error {
	pk, sk := keys.DeviceKey(userID, deviceID)
	return r.store.Delete(ctx, pk, sk)
}
