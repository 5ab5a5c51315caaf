package slots

import "context"

// Repository reads and overwrites named slots.
type Repository interface {
	// Get returns the slot value, or (nil, nil) when the slot does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the slot value atomically.
	Set(ctx context.Context, key string, value []byte) error
}
