package auth

import (
	"context"

	"fermentlog-backend/pkg/errors"
)

// UserContext carries the caller identity resolved by the auth middleware.
type UserContext struct {
	UserID string
	Email  string
}

type contextKey string

const userContextKey contextKey = "user_context"

// SetUserInContext stores the user context in the request context.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context set by the auth middleware.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, errors.NewUnauthorizedError("missing user context")
	}
	return user, nil
}
