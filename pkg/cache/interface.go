package cache

import (
	"context"
	"time"
)

// Store is a keyed byte store with per-entry expiry. A ttl of zero means
// the entry never expires and is only removed by Clear.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}
