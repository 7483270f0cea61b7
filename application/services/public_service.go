package services

import (
	"context"

	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
	"fermentlog-backend/domain/model"
	apperrors "fermentlog-backend/pkg/errors"
)

// PublicService serves the unauthenticated reduced batch view. The lookup
// goes through the id-only index because no caller identity is available.
type PublicService struct {
	batches ports.BatchRepository
	logger  *zap.Logger
}

// NewPublicService creates a PublicService.
func NewPublicService(batches ports.BatchRepository, logger *zap.Logger) *PublicService {
	return &PublicService{batches: batches, logger: logger}
}

// GetPublicBatch returns the reduced view of a shared batch. Missing batches
// are not found; existing batches the owner has not shared are forbidden.
func (s *PublicService) GetPublicBatch(ctx context.Context, batchID string) (*model.PublicBatchView, error) {
	batch, found, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load batch")
	}
	if !found {
		return nil, apperrors.NewNotFoundError("batch")
	}
	if !batch.IsPublic {
		return nil, apperrors.NewForbiddenError("this batch is not shared")
	}

	view := batch.PublicView()
	return &view, nil
}
