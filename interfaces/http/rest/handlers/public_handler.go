package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fermentlog-backend/application/services"
	apperrors "fermentlog-backend/pkg/errors"
	"fermentlog-backend/pkg/validation"
)

// PublicHandler serves the unauthenticated share routes.
type PublicHandler struct {
	public       *services.PublicService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(public *services.PublicService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		public:       public,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetBatch handles GET /public/b/{batchId}.
func (h *PublicHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchId")
	if batchID == "" {
		h.errorHandler.Handle(w, r, validation.MissingPathParam("batchId"))
		return
	}

	view, err := h.public.GetPublicBatch(r.Context(), batchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, view)
}
