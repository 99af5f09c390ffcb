package http

import (
	"context"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
)

type contextKey string

const callerContextKey contextKey = "gracehub-caller"

// WithCaller attaches the authenticated caller to the request context.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}

// CallerFromContext extracts the authenticated caller placed there by the
// auth middleware.
func CallerFromContext(ctx context.Context) (domain.Caller, error) {
	caller, ok := ctx.Value(callerContextKey).(domain.Caller)
	if !ok {
		return domain.Caller{}, apperr.New(apperr.CodeUnauthenticated, "no authenticated caller")
	}
	return caller, nil
}
