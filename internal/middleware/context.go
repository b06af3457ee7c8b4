package middleware

import "context"

type contextKey string

const contextUserIDKey contextKey = "userID"

// WithUserID returns a context carrying the authenticated user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextUserIDKey, userID)
}

// UserID extracts the authenticated user's id from the context, if the
// session middleware attached one.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextUserIDKey).(string)
	return userID, ok
}
