package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "fermentlog-backend/pkg/errors"
)

func TestPublicBatchNotFound(t *testing.T) {
	svc := NewPublicService(newMemBatchRepo(), zap.NewNop())
	_, err := svc.GetPublicBatch(context.Background(), "no-such-batch")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPublicBatchNotSharedIsForbidden(t *testing.T) {
	repo := newMemBatchRepo()
	batchSvc := NewBatchService(repo, &fakeObjectStore{}, zap.NewNop())
	svc := NewPublicService(repo, zap.NewNop())
	ctx := context.Background()

	batch := createTestBatch(t, batchSvc, "owner")
	_, err := svc.GetPublicBatch(ctx, batch.BatchID)
	assert.True(t, apperrors.IsForbidden(err))

	// Flipping the flag makes the same path readable.
	public := true
	_, err = batchSvc.UpdateBatch(ctx, "owner", batch.BatchID, UpdateBatchInput{IsPublic: &public})
	require.NoError(t, err)

	view, err := svc.GetPublicBatch(ctx, batch.BatchID)
	require.NoError(t, err)
	assert.Equal(t, batch.BatchID, view.BatchID)
}

func TestPublicViewExposesOnlyReducedFields(t *testing.T) {
	repo := newMemBatchRepo()
	batchSvc := NewBatchService(repo, &fakeObjectStore{}, zap.NewNop())
	svc := NewPublicService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := batchSvc.CreateBatch(ctx, "owner", CreateBatchInput{
		Name:           "Plum Wine",
		Stage:          "secondary",
		StartDate:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		TargetDuration: 720,
		Notes:          "private tasting notes",
		IsPublic:       true,
		PublicNote:     "Racked once so far",
	})
	require.NoError(t, err)

	view, err := svc.GetPublicBatch(ctx, created.BatchID)
	require.NoError(t, err)
	assert.Equal(t, "Plum Wine", view.Name)
	assert.Equal(t, "Racked once so far", view.PublicNote)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, forbidden := range []string{"userId", "notes", "photoKeys", "targetDuration", "isPublic", "updatedAt"} {
		assert.NotContains(t, fields, forbidden)
	}
	for _, expected := range []string{"batchId", "name", "stage", "status", "startDate", "publicNote", "createdAt"} {
		assert.Contains(t, fields, expected)
	}
}
