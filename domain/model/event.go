package model

import "time"

// Event is a child record of a batch. Its sort key is the RFC 3339 timestamp,
// which gives natural chronological ordering; two events with the same
// timestamp on one batch overwrite each other. Events are hard-deleted and
// survive the archival of their batch.
type Event struct {
	BatchID     string   `json:"batchId" dynamodbav:"BatchID"`
	Timestamp   string   `json:"timestamp" dynamodbav:"Timestamp"` // RFC 3339
	Kind        string   `json:"kind" dynamodbav:"Kind"`
	Note        string   `json:"note,omitempty" dynamodbav:"Note"`
	Gravity     *float64 `json:"gravity,omitempty" dynamodbav:"Gravity,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" dynamodbav:"Temperature,omitempty"`
	PH          *float64 `json:"ph,omitempty" dynamodbav:"PH,omitempty"`
}

// EventTimestamp formats a time for use as an event sort key.
func EventTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
