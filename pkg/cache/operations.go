package cache

import (
	"context"
	"encoding/json"
	"time"

	"homefinder-listings/pkg/logger"
	"homefinder-listings/pkg/metrics"
)

// GetOrFetch returns the cached value for key while it is fresh. Otherwise
// it calls fetch and stores the result for ttl. A fetch error is returned
// as is and nothing is stored. Store failures are logged and never reach
// the caller; the value is fetched instead.
func GetOrFetch[T any](ctx context.Context, store Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if store == nil {
		return fetch(ctx)
	}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.GlobalLogger.Errorf("cache read for %s failed, fetching: %v", key, err)
	}
	if ok {
		var cached T
		err := json.Unmarshal(raw, &cached)
		if err == nil {
			metrics.CacheHitsTotal.Inc()
			return cached, nil
		}
		logger.GlobalLogger.Errorf("failed to unmarshal cached %s: %v", key, err)
	}
	metrics.CacheMissesTotal.Inc()

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.GlobalLogger.Errorf("failed to marshal value for key %s: %v", key, err)
		return value, nil
	}
	if err := store.Set(ctx, key, data, ttl); err != nil {
		logger.GlobalLogger.Errorf("cache write for %s failed: %v", key, err)
	}
	return value, nil
}
