package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
	"fermentlog-backend/domain/model"
	apperrors "fermentlog-backend/pkg/errors"
)

// CreateEventInput is the payload for recording a batch event. Timestamp is
// optional; the server clock is used when absent.
type CreateEventInput struct {
	Kind        string     `json:"kind" validate:"omitempty,min=1,max=50"`
	Timestamp   *time.Time `json:"timestamp"`
	Note        string     `json:"note" validate:"max=2000"`
	Gravity     *float64   `json:"gravity" validate:"omitempty,gt=0"`
	Temperature *float64   `json:"temperature"`
	PH          *float64   `json:"ph" validate:"omitempty,min=0,max=14"`
}

// EventService records and lists events under a batch. Every operation
// verifies batch ownership first, so events are reachable only through a
// batch the caller owns.
type EventService struct {
	batches ports.BatchRepository
	events  ports.EventRepository
	logger  *zap.Logger
}

// NewEventService creates an EventService.
func NewEventService(batches ports.BatchRepository, events ports.EventRepository, logger *zap.Logger) *EventService {
	return &EventService{
		batches: batches,
		events:  events,
		logger:  logger,
	}
}

func (s *EventService) ownedBatch(ctx context.Context, userID, batchID string) error {
	_, found, err := s.batches.Get(ctx, userID, batchID)
	if err != nil {
		return apperrors.Wrap(err, "failed to load batch")
	}
	if !found {
		return apperrors.NewNotFoundError("batch")
	}
	return nil
}

// CreateEvent appends an event to the caller's batch. Two events with the
// same timestamp on one batch overwrite each other.
func (s *EventService) CreateEvent(ctx context.Context, userID, batchID string, input CreateEventInput) (*model.Event, error) {
	if err := s.ownedBatch(ctx, userID, batchID); err != nil {
		return nil, err
	}

	at := time.Now().UTC()
	if input.Timestamp != nil {
		at = input.Timestamp.UTC()
	}
	kind := input.Kind
	if kind == "" {
		kind = "note"
	}

	event := &model.Event{
		BatchID:     batchID,
		Timestamp:   model.EventTimestamp(at),
		Kind:        kind,
		Note:        input.Note,
		Gravity:     input.Gravity,
		Temperature: input.Temperature,
		PH:          input.PH,
	}
	if err := s.events.PutEvent(ctx, event); err != nil {
		return nil, apperrors.Wrap(err, "failed to create event")
	}

	s.logger.Info("event recorded",
		zap.String("batchId", batchID),
		zap.String("kind", event.Kind),
		zap.String("timestamp", event.Timestamp),
	)
	return event, nil
}

// ListEvents returns the batch's events in chronological order, up to limit
// (default 50).
func (s *EventService) ListEvents(ctx context.Context, userID, batchID string, limit int32) ([]model.Event, error) {
	if err := s.ownedBatch(ctx, userID, batchID); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = 50
	}

	events, err := s.events.ListEvents(ctx, batchID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list events")
	}
	return events, nil
}

// DeleteEvent removes one event by its timestamp. Deleting a timestamp with
// no event is not an error.
func (s *EventService) DeleteEvent(ctx context.Context, userID, batchID, timestamp string) error {
	if err := s.ownedBatch(ctx, userID, batchID); err != nil {
		return err
	}
	if err := s.events.DeleteEvent(ctx, batchID, timestamp); err != nil {
		return apperrors.Wrap(err, "failed to delete event")
	}
	return nil
}
