package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "studiofront:session:"

// RedisStore shares sessions across frontend replicas. Enabled when
// REDIS_ADDR is configured.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, id string) (TokenPair, bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return TokenPair{}, false, nil
	}
	if err != nil {
		return TokenPair{}, false, err
	}
	var tp TokenPair
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return TokenPair{}, false, err
	}
	return tp, true, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, tp TokenPair) error {
	raw, err := json.Marshal(tp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+id, raw, SessionTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}
