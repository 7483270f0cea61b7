package model

import "time"

// ReminderStatus is a reminder lifecycle state. Cancellation is a soft
// delete: the record stays with status cancelled.
type ReminderStatus string

const (
	ReminderStatusScheduled ReminderStatus = "scheduled"
	ReminderStatusCancelled ReminderStatus = "cancelled"
)

// Reminder is owned by a user and references a batch plus the external
// schedule handle obtained when registration succeeded. A reminder is never
// persisted without a schedule handle.
type Reminder struct {
	ReminderID    string         `json:"reminderId" dynamodbav:"ReminderID"`
	UserID        string         `json:"userId" dynamodbav:"UserID"`
	BatchID       string         `json:"batchId" dynamodbav:"BatchID"`
	ScheduledTime time.Time      `json:"scheduledTime" dynamodbav:"ScheduledTime"`
	Message       string         `json:"message" dynamodbav:"Message"`
	Status        ReminderStatus `json:"status" dynamodbav:"Status"`
	ScheduleName  string         `json:"-" dynamodbav:"ScheduleName"`
	CreatedAt     time.Time      `json:"createdAt" dynamodbav:"CreatedAt"`
}
