// Package handlers contains the HTTP handlers. Handlers decode and validate
// input, resolve the caller from the request context, delegate to a service,
// and hand every error to the shared error handler.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apperrors "fermentlog-backend/pkg/errors"
	"fermentlog-backend/pkg/validation"
)

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. Malformed JSON and constraint violations both surface as
// 400-class errors, with the validation path enumerating every bad field.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("invalid JSON body").WithCause(err)
	}
	return validation.ValidateStruct(dst)
}

// queryLimit parses an optional ?limit= parameter. Zero means "use the
// service default".
func queryLimit(r *http.Request) (int32, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || limit < 1 || limit > 100 {
		return 0, apperrors.NewValidationError("request validation failed").
			WithDetails(map[string]interface{}{"limit": "must be an integer between 1 and 100"})
	}
	return int32(limit), nil
}
