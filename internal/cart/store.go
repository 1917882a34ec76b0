package cart

import "context"

// Store persists one serialized cart per session in a durable key-value
// slot. Load of an absent or malformed slot yields an empty cart.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Ping(ctx context.Context) error
}
