package subscription

import "context"

// Repository defines subscription entitlement lookups
type Repository interface {
	// IsEntitled reports whether the user has an active subscription that
	// lifts the free-tier pipeline limit
	IsEntitled(ctx context.Context, userID int64) (bool, error)
}
