package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		typ    ErrorType
	}{
		{NewValidationError("bad input"), http.StatusBadRequest, ErrorTypeValidation},
		{NewBadRequestError("not in the future"), http.StatusBadRequest, ErrorTypeBadRequest},
		{NewNotFoundError("batch"), http.StatusNotFound, ErrorTypeNotFound},
		{NewForbiddenError("not shared"), http.StatusForbidden, ErrorTypeForbidden},
		{NewUnauthorizedError("missing token"), http.StatusUnauthorized, ErrorTypeUnauthorized},
		{NewInternalError("boom"), http.StatusInternalServerError, ErrorTypeInternal},
		{NewExternalError("scheduler", stderrors.New("throttled")), http.StatusBadGateway, ErrorTypeExternal},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus, tc.err.Message)
		assert.Equal(t, tc.typ, tc.err.Type, tc.err.Message)
	}
}

func TestNotFoundMessageNamesTheResource(t *testing.T) {
	err := NewNotFoundError("batch")
	assert.Equal(t, "batch not found", err.Message)
}

func TestWrapPreservesAppErrors(t *testing.T) {
	original := NewNotFoundError("batch")
	wrapped := Wrap(original, "loading failed")

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, IsNotFound(wrapped))
}

func TestWrapConvertsPlainErrors(t *testing.T) {
	wrapped := Wrap(stderrors.New("connection reset"), "storage failed")

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeInternal, appErr.Type)
	assert.Equal(t, "storage failed", appErr.Message)
	assert.ErrorContains(t, appErr.Cause, "connection reset")
}

func TestUnwrapExposesTheCause(t *testing.T) {
	cause := stderrors.New("throttled")
	err := NewExternalError("scheduler", cause)
	assert.True(t, stderrors.Is(err, cause))
}

func TestIsTypeMatchesThroughWrapping(t *testing.T) {
	err := Wrap(NewForbiddenError("nope"), "outer")
	assert.True(t, IsForbidden(err))
	assert.True(t, IsType(err, ErrorTypeForbidden))
	assert.False(t, IsType(err, ErrorTypeNotFound))
}
