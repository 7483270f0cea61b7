package model

import "time"

// User is created idempotently on the first authenticated request for a
// userId and never deleted by the application.
type User struct {
	UserID    string    `json:"userId" dynamodbav:"UserID"`
	Email     string    `json:"email" dynamodbav:"Email"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"CreatedAt"`
}
