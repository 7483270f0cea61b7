package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fermentlog-backend/application/ports"
	"fermentlog-backend/domain/model"
)

// In-memory port implementations for service tests.

type memBatchRepo struct {
	batches map[string]*model.Batch // userID/batchID
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: make(map[string]*model.Batch)}
}

func batchKey(userID, batchID string) string {
	return userID + "/" + batchID
}

func (r *memBatchRepo) Put(_ context.Context, batch *model.Batch) error {
	copied := *batch
	r.batches[batchKey(batch.UserID, batch.BatchID)] = &copied
	return nil
}

func (r *memBatchRepo) Get(_ context.Context, userID, batchID string) (*model.Batch, bool, error) {
	batch, ok := r.batches[batchKey(userID, batchID)]
	if !ok {
		return nil, false, nil
	}
	copied := *batch
	return &copied, true, nil
}

func (r *memBatchRepo) FindByID(_ context.Context, batchID string) (*model.Batch, bool, error) {
	for _, batch := range r.batches {
		if batch.BatchID == batchID {
			copied := *batch
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (r *memBatchRepo) ListByUser(_ context.Context, userID string, limit int32) ([]model.Batch, error) {
	var out []model.Batch
	for key, batch := range r.batches {
		if key == batchKey(userID, batch.BatchID) {
			out = append(out, *batch)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BatchID > out[j].BatchID
	})
	if int32(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBatchRepo) Update(_ context.Context, userID, batchID string, fields map[string]interface{}) error {
	batch, ok := r.batches[batchKey(userID, batchID)]
	if !ok {
		return fmt.Errorf("record not found")
	}
	for name, value := range fields {
		switch name {
		case "Name":
			batch.Name = value.(string)
		case "Stage":
			batch.Stage = model.Stage(value.(string))
		case "Status":
			batch.Status = model.Status(value.(string))
		case "TargetDuration":
			batch.TargetDuration = value.(int)
		case "Notes":
			batch.Notes = value.(string)
		case "IsPublic":
			batch.IsPublic = value.(bool)
		case "PublicNote":
			batch.PublicNote = value.(string)
		case "PhotoKeys":
			batch.PhotoKeys = value.([]string)
		case "UpdatedAt":
			batch.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

type memEventRepo struct {
	events map[string][]model.Event // batchID
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string][]model.Event)}
}

func (r *memEventRepo) PutEvent(_ context.Context, event *model.Event) error {
	list := r.events[event.BatchID]
	for i := range list {
		if list[i].Timestamp == event.Timestamp {
			list[i] = *event
			return nil
		}
	}
	list = append(list, *event)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Timestamp < list[j].Timestamp
	})
	r.events[event.BatchID] = list
	return nil
}

func (r *memEventRepo) ListEvents(_ context.Context, batchID string, limit int32) ([]model.Event, error) {
	list := r.events[batchID]
	if int32(len(list)) > limit {
		list = list[:limit]
	}
	out := make([]model.Event, len(list))
	copy(out, list)
	return out, nil
}

func (r *memEventRepo) DeleteEvent(_ context.Context, batchID, timestamp string) error {
	list := r.events[batchID]
	for i := range list {
		if list[i].Timestamp == timestamp {
			r.events[batchID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

type memReminderRepo struct {
	reminders map[string]*model.Reminder // userID/reminderID
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{reminders: make(map[string]*model.Reminder)}
}

func (r *memReminderRepo) PutReminder(_ context.Context, reminder *model.Reminder) error {
	copied := *reminder
	r.reminders[reminder.UserID+"/"+reminder.ReminderID] = &copied
	return nil
}

func (r *memReminderRepo) GetReminder(_ context.Context, userID, reminderID string) (*model.Reminder, bool, error) {
	reminder, ok := r.reminders[userID+"/"+reminderID]
	if !ok {
		return nil, false, nil
	}
	copied := *reminder
	return &copied, true, nil
}

func (r *memReminderRepo) ListReminders(_ context.Context, userID string) ([]model.Reminder, error) {
	var out []model.Reminder
	for key, reminder := range r.reminders {
		if key == userID+"/"+reminder.ReminderID {
			out = append(out, *reminder)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReminderID < out[j].ReminderID
	})
	return out, nil
}

func (r *memReminderRepo) UpdateReminderStatus(_ context.Context, userID, reminderID string, status model.ReminderStatus) error {
	reminder, ok := r.reminders[userID+"/"+reminderID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	reminder.Status = status
	return nil
}

type memDeviceRepo struct {
	devices map[string]*model.Device // userID/deviceID
}

func newMemDeviceRepo() *memDeviceRepo {
	return &memDeviceRepo{devices: make(map[string]*model.Device)}
}

func (r *memDeviceRepo) PutDevice(_ context.Context, device *model.Device) error {
	copied := *device
	r.devices[device.UserID+"/"+device.DeviceID] = &copied
	return nil
}

func (r *memDeviceRepo) ListDevices(_ context.Context, userID string) ([]model.Device, error) {
	var out []model.Device
	for key, device := range r.devices {
		if key == userID+"/"+device.DeviceID {
			out = append(out, *device)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DeviceID < out[j].DeviceID
	})
	return out, nil
}

func (r *memDeviceRepo) DeleteDevice(_ context.Context, userID, deviceID string) error {
	delete(r.devices, userID+"/"+deviceID)
	return nil
}

type fakeObjectStore struct {
	uploadErr   error
	downloadErr error
}

func (f *fakeObjectStore) PresignUpload(_ context.Context, key, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "https://objects.test/upload/" + key, nil
}

func (f *fakeObjectStore) PresignDownload(_ context.Context, key string) (string, error) {
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return "https://objects.test/download/" + key, nil
}

type scheduledCall struct {
	name    string
	at      time.Time
	payload ports.SchedulePayload
}

type fakeScheduler struct {
	createFn func(name string) error
	deleteFn func(name string) error
	created  []scheduledCall
	deleted  []string
}

func (f *fakeScheduler) CreateSchedule(_ context.Context, name string, at time.Time, payload ports.SchedulePayload) error {
	if f.createFn != nil {
		if err := f.createFn(name); err != nil {
			return err
		}
	}
	f.created = append(f.created, scheduledCall{name: name, at: at, payload: payload})
	return nil
}

func (f *fakeScheduler) DeleteSchedule(_ context.Context, name string) error {
	if f.deleteFn != nil {
		if err := f.deleteFn(name); err != nil {
			return err
		}
	}
	f.deleted = append(f.deleted, name)
	return nil
}
