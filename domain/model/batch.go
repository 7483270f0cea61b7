// Package model defines the entities stored in the single-table design and
// their lifecycle policies.
package model

import "time"

// Stage is a named phase of the fermentation lifecycle.
type Stage string

const (
	StagePrimary   Stage = "primary"
	StageSecondary Stage = "secondary"
)

// Status is a batch lifecycle state. Deleting a batch never removes the
// record; it flips the status to archived.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Batch is a fermentation batch owned by exactly one user. PhotoKeys is an
// ordered, append-only list of opaque object-storage keys.
type Batch struct {
	BatchID        string    `json:"batchId" dynamodbav:"BatchID"`
	UserID         string    `json:"userId" dynamodbav:"UserID"`
	Name           string    `json:"name" dynamodbav:"Name"`
	Stage          Stage     `json:"stage" dynamodbav:"Stage"`
	Status         Status    `json:"status" dynamodbav:"Status"`
	StartDate      time.Time `json:"startDate" dynamodbav:"StartDate"`
	TargetDuration int       `json:"targetDuration" dynamodbav:"TargetDuration"` // hours
	Notes          string    `json:"notes,omitempty" dynamodbav:"Notes"`
	IsPublic       bool      `json:"isPublic" dynamodbav:"IsPublic"`
	PublicNote     string    `json:"publicNote,omitempty" dynamodbav:"PublicNote"`
	PhotoKeys      []string  `json:"photoKeys" dynamodbav:"PhotoKeys"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"CreatedAt"`
	UpdatedAt      time.Time `json:"updatedAt" dynamodbav:"UpdatedAt"`
}

// PublicBatchView is the reduced field subset exposed without
// authentication. It must never grow an owner-identifying field.
type PublicBatchView struct {
	BatchID    string    `json:"batchId"`
	Name       string    `json:"name"`
	Stage      Stage     `json:"stage"`
	Status     Status    `json:"status"`
	StartDate  time.Time `json:"startDate"`
	PublicNote string    `json:"publicNote,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PublicView projects the batch onto its unauthenticated representation.
func (b *Batch) PublicView() PublicBatchView {
	return PublicBatchView{
		BatchID:    b.BatchID,
		Name:       b.Name,
		Stage:      b.Stage,
		Status:     b.Status,
		StartDate:  b.StartDate,
		PublicNote: b.PublicNote,
		CreatedAt:  b.CreatedAt,
	}
}
