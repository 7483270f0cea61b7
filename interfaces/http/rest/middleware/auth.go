// Package middleware contains the HTTP middleware chain: authentication,
// request logging, and request metrics.
package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
	"fermentlog-backend/pkg/auth"
	apperrors "fermentlog-backend/pkg/errors"
)

// Authenticator resolves the caller identity and guarantees a user record
// exists before any handler runs.
//
// Behind the API gateway the JWT has already been verified by the authorizer
// and the identity arrives as trusted X-User-ID / X-User-Email headers set by
// the Lambda entrypoint; in that mode the validator is nil. When a validator
// is configured the headers are ignored and the bearer token is validated
// in-process instead.
type Authenticator struct {
	validator    *auth.JWTValidator
	users        ports.UserRepository
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewAuthenticator creates the auth middleware. validator may be nil when
// running behind the gateway authorizer.
func NewAuthenticator(validator *auth.JWTValidator, users ports.UserRepository, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		validator:    validator,
		users:        users,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Middleware authenticates the request and stores the user context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.resolveUser(r)
		if err != nil {
			a.errorHandler.Handle(w, r, err)
			return
		}

		if err := a.users.EnsureUser(r.Context(), user.UserID, user.Email); err != nil {
			a.errorHandler.Handle(w, r, apperrors.Wrap(err, "failed to ensure user record"))
			return
		}

		ctx := auth.SetUserInContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) resolveUser(r *http.Request) (*auth.UserContext, error) {
	// The identity headers are only trustworthy when the gateway authorizer
	// has already verified the token and the Lambda entrypoint injected them.
	// With an in-process validator configured they could come from any client,
	// so the bearer token is required instead.
	if a.validator == nil {
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			return &auth.UserContext{
				UserID: userID,
				Email:  r.Header.Get("X-User-Email"),
			}, nil
		}
		return nil, apperrors.NewUnauthorizedError("missing authentication")
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, apperrors.NewUnauthorizedError("missing bearer token")
	}

	claims, err := a.validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		a.logger.Debug("token validation failed", zap.Error(err))
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}

	return &auth.UserContext{UserID: claims.UserID, Email: claims.Email}, nil
}
