package model

import "time"

// Device is one row per (user, deviceId); re-registration updates the row in
// place. Devices are hard-deleted.
type Device struct {
	DeviceID  string    `json:"deviceId" dynamodbav:"DeviceID"`
	UserID    string    `json:"userId" dynamodbav:"UserID"`
	Platform  string    `json:"platform" dynamodbav:"Platform"`
	PushToken string    `json:"pushToken" dynamodbav:"PushToken"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"UpdatedAt"`
}
