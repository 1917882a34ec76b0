package cart

import (
	"context"
	"sync"
)

// MemStore keeps serialized carts in process memory. It stores the same
// JSON payload the durable backends do, so every backend shares one
// round-trip path.
type MemStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string][]byte)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	raw := s.m[sessionID]
	s.mu.RUnlock()

	return decode(raw), nil
}

func (s *MemStore) Save(ctx context.Context, sessionID string, c Cart) error {
	raw := encode(c)

	s.mu.Lock()
	s.m[sessionID] = raw
	s.mu.Unlock()

	return nil
}
