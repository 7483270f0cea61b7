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

// ReminderHandler serves the reminder routes under /batches/{id} and /me.
type ReminderHandler struct {
	reminders    *services.ReminderService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewReminderHandler creates a ReminderHandler.
func NewReminderHandler(reminders *services.ReminderService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminders:    reminders,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Suggestions handles GET /batches/{id}/reminders/suggestions.
func (h *ReminderHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
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

	suggestions, err := h.reminders.SuggestReminders(r.Context(), user.UserID, batchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, suggestions)
}

// Confirm handles POST /batches/{id}/reminders/confirm.
func (h *ReminderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
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

	var input services.ConfirmRemindersInput
	if err := decodeAndValidate(r, &input); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	created, err := h.reminders.ConfirmReminders(r.Context(), user.UserID, batchID, input)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, created)
}

// List handles GET /me/reminders?includeAll=.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	includeAll := r.URL.Query().Get("includeAll") == "true"

	reminders, err := h.reminders.ListReminders(r.Context(), user.UserID, includeAll)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, reminders)
}

// Cancel handles DELETE /me/reminders/{id}.
func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	reminderID := chi.URLParam(r, "id")
	if reminderID == "" {
		h.errorHandler.Handle(w, r, validation.MissingPathParam("id"))
		return
	}

	if err := h.reminders.CancelReminder(r.Context(), user.UserID, reminderID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "cancelled"})
}
