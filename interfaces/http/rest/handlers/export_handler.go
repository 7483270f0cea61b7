package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"fermentlog-backend/application/services"
	"fermentlog-backend/pkg/auth"
	apperrors "fermentlog-backend/pkg/errors"
)

// ExportHandler serves GET /export.csv.
type ExportHandler struct {
	export       *services.ExportService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(export *services.ExportService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		export:       export,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Download streams the caller's full data export as a CSV attachment.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	csvData, err := h.export.ExportCSV(r.Context(), user.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fermentlog-export.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(csvData); err != nil {
		h.logger.Error("failed to write export body", zap.Error(err))
	}
}
