package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fermentlog-backend/application/services"
	"fermentlog-backend/pkg/auth"
	apperrors "fermentlog-backend/pkg/errors"
	"fermentlog-backend/pkg/validation"
)

// photoUploadRequest asks for a presigned upload slot.
type photoUploadRequest struct {
	Filename    string `json:"filename" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=100"`
}

// attachPhotoRequest confirms a completed upload.
type attachPhotoRequest struct {
	PhotoKey string `json:"photoKey" validate:"required,min=1,max=512"`
}

// BatchHandler serves the /batches routes, including the photo flow.
type BatchHandler struct {
	batches      *services.BatchService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewBatchHandler creates a BatchHandler.
func NewBatchHandler(batches *services.BatchService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{
		batches:      batches,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

func (h *BatchHandler) batchID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", validation.MissingPathParam("id")
	}
	return id, nil
}

// Create handles POST /batches.
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var input services.CreateBatchInput
	if err := decodeAndValidate(r, &input); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	batch, err := h.batches.CreateBatch(r.Context(), user.UserID, input)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, batch)
}

// List handles GET /batches with optional stage, status, and limit filters.
func (h *BatchHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	limit, err := queryLimit(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	input := services.ListBatchesInput{
		Stage:  r.URL.Query().Get("stage"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
	}
	if err := validation.ValidateStruct(&input); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	batches, err := h.batches.ListBatches(r.Context(), user.UserID, input)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, batches)
}

// Get handles GET /batches/{id}.
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID, err := h.batchID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	batch, err := h.batches.GetBatch(r.Context(), user.UserID, batchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, batch)
}

// Update handles PUT /batches/{id}.
func (h *BatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID, err := h.batchID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var input services.UpdateBatchInput
	if err := decodeAndValidate(r, &input); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	batch, err := h.batches.UpdateBatch(r.Context(), user.UserID, batchID, input)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, batch)
}

// Archive handles DELETE /batches/{id}. The batch is soft-deleted by
// flipping its status to archived.
func (h *BatchHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID, err := h.batchID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.batches.ArchiveBatch(r.Context(), user.UserID, batchID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "archived"})
}

// PhotoUploadURL handles POST /batches/{id}/photo/upload-url.
func (h *BatchHandler) PhotoUploadURL(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID, err := h.batchID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var req photoUploadRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	upload, err := h.batches.GetPhotoUploadURL(r.Context(), user.UserID, batchID, req.Filename, req.ContentType)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, upload)
}

// AttachPhoto handles POST /batches/{id}/photo.
func (h *BatchHandler) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID, err := h.batchID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var req attachPhotoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	batch, err := h.batches.AddPhotoToBatch(r.Context(), user.UserID, batchID, req.PhotoKey)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, batch)
}

// ListPhotos handles GET /batches/{id}/photos.
func (h *BatchHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID, err := h.batchID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	photos, err := h.batches.ListPhotos(r.Context(), user.UserID, batchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, photos)
}
