package cart

import (
	"context"

	"go.uber.org/zap"

	"swiftcart/internal/catalog"
)

// Service applies cart commands for a session: load, mutate, write the
// full cart back. Persistence failures are logged and the in-memory
// result is still returned; the session keeps working (§ local recovery).
type Service struct {
	Store Store
	Log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{Store: store, Log: log}
}

func (s *Service) Get(ctx context.Context, sessionID string) Cart {
	return s.load(ctx, sessionID)
}

func (s *Service) Add(ctx context.Context, sessionID string, p catalog.Product) Cart {
	c := s.load(ctx, sessionID)
	c.Add(p)
	s.save(ctx, sessionID, c)
	return c
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID int) Cart {
	c := s.load(ctx, sessionID)
	c.Remove(productID)
	s.save(ctx, sessionID, c)
	return c
}

func (s *Service) AdjustQuantity(ctx context.Context, sessionID string, productID, delta int) Cart {
	c := s.load(ctx, sessionID)
	c.AdjustQuantity(productID, delta)
	s.save(ctx, sessionID, c)
	return c
}

func (s *Service) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

func (s *Service) load(ctx context.Context, sessionID string) Cart {
	c, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		if s.Log != nil {
			s.Log.Warn("cart load failed, starting empty", zap.Error(err))
		}
		return Cart{}
	}
	return c
}

func (s *Service) save(ctx context.Context, sessionID string, c Cart) {
	if err := s.Store.Save(ctx, sessionID, c); err != nil && s.Log != nil {
		s.Log.Error("cart save failed", zap.Error(err))
	}
}
