package contextutil

import (
	"context"

	"bicocerto/internal/middleware"
)

// GetUserIDFromContext returns the authenticated caller, false for anonymous.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	return middleware.UserIDFromContext(ctx)
}
