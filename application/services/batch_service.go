// Package services implements the domain operations behind the REST
// surface. Services accept validated input plus the caller identity, enforce
// ownership, and perform the storage operations through the ports.
package services

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
	"fermentlog-backend/domain/model"
	apperrors "fermentlog-backend/pkg/errors"
)

// CreateBatchInput is the payload for creating a batch.
type CreateBatchInput struct {
	Name           string    `json:"name" validate:"required,min=1,max=100"`
	Stage          string    `json:"stage" validate:"required,oneof=primary secondary"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	TargetDuration int       `json:"targetDuration" validate:"required,min=1,max=720"`
	Notes          string    `json:"notes" validate:"max=2000"`
	IsPublic       bool      `json:"isPublic"`
	PublicNote     string    `json:"publicNote" validate:"max=500"`
}

// UpdateBatchInput carries a partial update; nil fields are left untouched.
type UpdateBatchInput struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=100"`
	Stage          *string `json:"stage" validate:"omitempty,oneof=primary secondary"`
	Status         *string `json:"status" validate:"omitempty,oneof=planned active completed archived"`
	TargetDuration *int    `json:"targetDuration" validate:"omitempty,min=1,max=720"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
	IsPublic       *bool   `json:"isPublic"`
	PublicNote     *string `json:"publicNote" validate:"omitempty,max=500"`
}

// ListBatchesInput carries the optional list filters.
type ListBatchesInput struct {
	Stage  string `json:"stage" validate:"omitempty,oneof=primary secondary"`
	Status string `json:"status" validate:"omitempty,oneof=planned active completed archived"`
	Limit  int32  `json:"limit" validate:"omitempty,min=1,max=100"`
}

// PhotoUpload is the result of requesting an upload URL: the client PUTs the
// bytes to UploadURL, then attaches PhotoKey in a second call.
type PhotoUpload struct {
	UploadURL string `json:"uploadUrl"`
	PhotoKey  string `json:"photoKey"`
}

// PhotoLink pairs a stored photo key with a time-limited download URL.
type PhotoLink struct {
	PhotoKey    string `json:"photoKey"`
	DownloadURL string `json:"downloadUrl"`
}

// BatchService implements batch CRUD and the two-phase photo flow.
type BatchService struct {
	batches ports.BatchRepository
	objects ports.ObjectStore
	logger  *zap.Logger
}

// NewBatchService creates a BatchService.
func NewBatchService(batches ports.BatchRepository, objects ports.ObjectStore, logger *zap.Logger) *BatchService {
	return &BatchService{
		batches: batches,
		objects: objects,
		logger:  logger,
	}
}

// CreateBatch persists a new batch owned by the caller. The id, timestamps,
// initial status, and empty photo list are server-assigned.
func (s *BatchService) CreateBatch(ctx context.Context, userID string, input CreateBatchInput) (*model.Batch, error) {
	now := time.Now().UTC()
	batch := &model.Batch{
		BatchID:        uuid.NewString(),
		UserID:         userID,
		Name:           input.Name,
		Stage:          model.Stage(input.Stage),
		Status:         model.StatusActive,
		StartDate:      input.StartDate,
		TargetDuration: input.TargetDuration,
		Notes:          input.Notes,
		IsPublic:       input.IsPublic,
		PublicNote:     input.PublicNote,
		PhotoKeys:      []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.batches.Put(ctx, batch); err != nil {
		return nil, apperrors.Wrap(err, "failed to create batch")
	}

	s.logger.Info("batch created",
		zap.String("batchId", batch.BatchID),
		zap.String("userId", userID),
	)
	return batch, nil
}

// GetBatch returns the caller's batch. A batch that does not exist and a
// batch owned by someone else are indistinguishable to the caller.
func (s *BatchService) GetBatch(ctx context.Context, userID, batchID string) (*model.Batch, error) {
	batch, found, err := s.batches.Get(ctx, userID, batchID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load batch")
	}
	if !found {
		return nil, apperrors.NewNotFoundError("batch")
	}
	return batch, nil
}

// ListBatches returns the caller's batches, most recent first, optionally
// filtered by stage and status. The limit bounds the partition query and the
// filters are applied to that page afterwards, so a filtered listing can hold
// fewer than limit matches even when older batches would match.
func (s *BatchService) ListBatches(ctx context.Context, userID string, input ListBatchesInput) ([]model.Batch, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 50
	}

	batches, err := s.batches.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list batches")
	}

	if input.Stage == "" && input.Status == "" {
		return batches, nil
	}

	filtered := make([]model.Batch, 0, len(batches))
	for _, b := range batches {
		if input.Stage != "" && b.Stage != model.Stage(input.Stage) {
			continue
		}
		if input.Status != "" && b.Status != model.Status(input.Status) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered, nil
}

// UpdateBatch merges the non-nil fields of input into the caller's batch and
// returns the updated record.
func (s *BatchService) UpdateBatch(ctx context.Context, userID, batchID string, input UpdateBatchInput) (*model.Batch, error) {
	if _, err := s.GetBatch(ctx, userID, batchID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"UpdatedAt": time.Now().UTC(),
	}
	if input.Name != nil {
		fields["Name"] = *input.Name
	}
	if input.Stage != nil {
		fields["Stage"] = *input.Stage
	}
	if input.Status != nil {
		fields["Status"] = *input.Status
	}
	if input.TargetDuration != nil {
		fields["TargetDuration"] = *input.TargetDuration
	}
	if input.Notes != nil {
		fields["Notes"] = *input.Notes
	}
	if input.IsPublic != nil {
		fields["IsPublic"] = *input.IsPublic
	}
	if input.PublicNote != nil {
		fields["PublicNote"] = *input.PublicNote
	}

	if err := s.batches.Update(ctx, userID, batchID, fields); err != nil {
		return nil, apperrors.Wrap(err, "failed to update batch")
	}

	return s.GetBatch(ctx, userID, batchID)
}

// ArchiveBatch flips the batch status to archived. The record and its events
// are retained.
func (s *BatchService) ArchiveBatch(ctx context.Context, userID, batchID string) error {
	if _, err := s.GetBatch(ctx, userID, batchID); err != nil {
		return err
	}

	fields := map[string]interface{}{
		"Status":    string(model.StatusArchived),
		"UpdatedAt": time.Now().UTC(),
	}
	if err := s.batches.Update(ctx, userID, batchID, fields); err != nil {
		return apperrors.Wrap(err, "failed to archive batch")
	}

	s.logger.Info("batch archived",
		zap.String("batchId", batchID),
		zap.String("userId", userID),
	)
	return nil
}

// GetPhotoUploadURL validates ownership and returns a presigned upload URL
// plus the key the client must attach once the upload completes. The batch
// record is not touched here.
func (s *BatchService) GetPhotoUploadURL(ctx context.Context, userID, batchID, filename, contentType string) (*PhotoUpload, error) {
	if _, err := s.GetBatch(ctx, userID, batchID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("photos/%s/%s/%s", userID, batchID, path.Base(filename))
	uploadURL, err := s.objects.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to presign photo upload")
	}

	return &PhotoUpload{UploadURL: uploadURL, PhotoKey: key}, nil
}

// AddPhotoToBatch appends photoKey to the batch's photo list. Called by the
// client after the presigned upload succeeded; an upload that is never
// attached leaves an orphaned object, not a broken batch.
func (s *BatchService) AddPhotoToBatch(ctx context.Context, userID, batchID, photoKey string) (*model.Batch, error) {
	batch, err := s.GetBatch(ctx, userID, batchID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"PhotoKeys": append(batch.PhotoKeys, photoKey),
		"UpdatedAt": time.Now().UTC(),
	}
	if err := s.batches.Update(ctx, userID, batchID, fields); err != nil {
		return nil, apperrors.Wrap(err, "failed to attach photo")
	}

	return s.GetBatch(ctx, userID, batchID)
}

// ListPhotos returns a time-limited download URL for every photo on the
// batch, in attachment order.
func (s *BatchService) ListPhotos(ctx context.Context, userID, batchID string) ([]PhotoLink, error) {
	batch, err := s.GetBatch(ctx, userID, batchID)
	if err != nil {
		return nil, err
	}

	links := make([]PhotoLink, 0, len(batch.PhotoKeys))
	for _, key := range batch.PhotoKeys {
		url, err := s.objects.PresignDownload(ctx, key)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to presign photo download")
		}
		links = append(links, PhotoLink{PhotoKey: key, DownloadURL: url})
	}
	return links, nil
}
