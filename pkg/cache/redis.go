package cache

import (
	"context"
	"errors"
	"time"

	"homefinder-listings/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps cache entries in Redis. Every key it writes is recorded
// in a tracking set so Clear can drop them all without a SCAN.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	recordOperationDuration("get", start)
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		incrementError("get")
		logger.GlobalLogger.Errorf("failed to get key %s: %v", key, err)
		return nil, false, NewCacheError("get", key, err, true)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	full := s.key(key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, full, value, ttl)
		pipe.SAdd(ctx, trackedKeysSetKey(s.prefix), full)
		return nil
	})
	recordOperationDuration("set", start)
	if err != nil {
		incrementError("set")
		logger.GlobalLogger.Errorf("failed to set key %s: %v", key, err)
		return NewCacheError("set", key, err, true)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	start := time.Now()
	removed, err := clearTrackedScript.Run(ctx, s.client, []string{trackedKeysSetKey(s.prefix)}).Int64()
	recordOperationDuration("clear", start)
	if err != nil {
		incrementError("clear")
		logger.GlobalLogger.Errorf("failed to clear cache: %v", err)
		return NewCacheError("clear", "", err, false)
	}
	logger.GlobalLogger.Debugf("cleared %d cached entries", removed)
	return nil
}
