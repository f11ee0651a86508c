package metadata

import (
	"context"
)

// Repository is a small scoped key/value store. Each repository instance is
// bound to one scope (the API origin), so two consoles pointed at different
// backends never read each other's credentials.
type Repository interface {
	// SetMany writes all pairs atomically.
	SetMany(ctx context.Context, values map[string][]byte) error
	// Delete removes the given keys atomically. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	// Clear removes every key of the scope.
	Clear(ctx context.Context) error
}
