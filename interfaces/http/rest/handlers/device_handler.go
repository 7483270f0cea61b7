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

// DeviceHandler serves the /me/devices routes.
type DeviceHandler struct {
	devices      *services.DeviceService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewDeviceHandler creates a DeviceHandler.
func NewDeviceHandler(devices *services.DeviceService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{
		devices:      devices,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Register handles POST /me/devices.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var input services.RegisterDeviceInput
	if err := decodeAndValidate(r, &input); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	device, err := h.devices.RegisterDevice(r.Context(), user.UserID, input)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, device)
}

// List handles GET /me/devices.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	devices, err := h.devices.ListDevices(r.Context(), user.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, devices)
}

// Delete handles DELETE /me/devices/{id}.
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	deviceID := chi.URLParam(r, "id")
	if deviceID == "" {
		h.errorHandler.Handle(w, r, validation.MissingPathParam("id"))
		return
	}

	if err := h.devices.DeleteDevice(r.Context(), user.UserID, deviceID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "deleted"})
}
