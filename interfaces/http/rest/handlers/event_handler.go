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

// EventHandler serves the /batches/{id}/events routes.
type EventHandler struct {
	events       *services.EventService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(events *services.EventService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		events:       events,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Create handles POST /batches/{id}/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		h.errorHandler.Handle(w, r, validation.MissingPathParam("id"))
		return
	}

	var input services.CreateEventInput
	if err := decodeAndValidate(r, &input); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	event, err := h.events.CreateEvent(r.Context(), user.UserID, batchID, input)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, event)
}

// List handles GET /batches/{id}/events?limit=.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		h.errorHandler.Handle(w, r, validation.MissingPathParam("id"))
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	events, err := h.events.ListEvents(r.Context(), user.UserID, batchID, limit)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, events)
}

// Delete handles DELETE /batches/{id}/events/{timestamp}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	batchID := chi.URLParam(r, "id")
	if batchID == "" {
		h.errorHandler.Handle(w, r, validation.MissingPathParam("id"))
		return
	}
	timestamp := chi.URLParam(r, "timestamp")
	if timestamp == "" {
		h.errorHandler.Handle(w, r, validation.MissingPathParam("timestamp"))
		return
	}

	if err := h.events.DeleteEvent(r.Context(), user.UserID, batchID, timestamp); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "deleted"})
}
