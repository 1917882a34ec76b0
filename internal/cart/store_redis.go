package cart

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "swiftcart:cart:"

// RedisStore keeps one JSON value per session key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		}),
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	return decode(raw), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c Cart) error {
	return s.client.Set(ctx, redisKeyPrefix+sessionID, encode(c), 0).Err()
}
