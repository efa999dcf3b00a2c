package cache

import (
	"FoodShare-Backend/internal/utils"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a small byte cache in front of read-heavy queries (the browse
// feed). When Redis is not configured or unreachable the no-op store is
// returned and callers run against the database directly.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	InvalidatePrefix(ctx context.Context, prefix string)
}

type redisStore struct {
	client *redis.Client
}

type noopStore struct{}

func NewRedisStore() Store {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		return &noopStore{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return &noopStore{}
	}

	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	s.client.Set(ctx, key, value, ttl)
}

func (s *redisStore) InvalidatePrefix(ctx context.Context, prefix string) {
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.client.Del(ctx, iter.Val())
	}
}

func (s *noopStore) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

func (s *noopStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}

func (s *noopStore) InvalidatePrefix(ctx context.Context, prefix string) {}
