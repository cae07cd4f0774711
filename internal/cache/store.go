package cache

import (
	"context"
	"time"
)

// Store is the time-expiring result cache shared by the query library.
// Values are stored as JSON so the memory and Redis backends behave
// identically: a hit always returns the serialized form of what was set.
type Store interface {
	// Get unmarshals the cached value into out and reports whether an
	// unexpired entry existed.
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Flush drops every entry. Backs the dashboard's "refresh data" action.
	Flush(ctx context.Context) error
}
