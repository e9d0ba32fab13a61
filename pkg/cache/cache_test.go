package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newClock() *clock {
	return &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	store := NewMemoryStoreWithClock(clk.Now)

	require.NoError(t, store.Set(ctx, "featured", []byte("a"), 5*time.Minute))
	require.NoError(t, store.Set(ctx, PropertyKey(1), []byte("b"), 0))

	clk.now = clk.now.Add(5 * time.Minute)
	val, ok, err := store.Get(ctx, "featured")
	require.NoError(t, err)
	assert.True(t, ok, "entry is fresh until now passes expiry")
	assert.Equal(t, []byte("a"), val)

	clk.now = clk.now.Add(time.Second)
	_, ok, _ = store.Get(ctx, "featured")
	assert.False(t, ok)

	clk.now = clk.now.Add(24 * time.Hour)
	_, ok, _ = store.Get(ctx, PropertyKey(1))
	assert.True(t, ok, "zero ttl never expires")

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, store.Len())
}

func TestGetOrFetchUsesFreshEntry(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	store := NewMemoryStoreWithClock(clk.Now)

	calls := 0
	fetch := func(context.Context) ([]int, error) {
		calls++
		return []int{calls}, nil
	}

	first, err := GetOrFetch(ctx, store, FeaturedKey(), 5*time.Minute, fetch)
	require.NoError(t, err)
	second, err := GetOrFetch(ctx, store, FeaturedKey(), 5*time.Minute, fetch)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	clk.now = clk.now.Add(6 * time.Minute)
	third, err := GetOrFetch(ctx, store, FeaturedKey(), 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{2}, third)

	require.NoError(t, store.Clear(ctx))
	_, err = GetOrFetch(ctx, store, FeaturedKey(), 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestGetOrFetchDoesNotStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	boom := errors.New("boom")

	_, err := GetOrFetch(ctx, store, PropertyKey(9), 0, func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func (failingStore) Clear(context.Context) error { return errors.New("store down") }

func TestGetOrFetchDegradesOnStoreFailure(t *testing.T) {
	got, err := GetOrFetch(context.Background(), failingStore{}, "k", time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "listings:"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	_, ok, err := store.Get(ctx, FeaturedKey())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, FeaturedKey(), []byte(`[1,2,4]`), 5*time.Minute))
	val, ok, err := store.Get(ctx, FeaturedKey())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2,4]`, string(val))
	assert.True(t, mr.Exists("listings:featured"))

	mr.FastForward(5*time.Minute + time.Second)
	_, ok, err = store.Get(ctx, FeaturedKey())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreClear(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, store.Set(ctx, FeaturedKey(), []byte(`[]`), time.Minute))
	require.NoError(t, store.Set(ctx, PropertyKey(5), []byte(`{}`), 0))

	require.NoError(t, store.Clear(ctx))

	assert.False(t, mr.Exists("listings:featured"))
	assert.False(t, mr.Exists("listings:property:5"))
	assert.False(t, mr.Exists("listings:keys"))
	assert.True(t, mr.Exists("unrelated"))
}

func TestRedisStoreWrapsErrors(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	mr.Close()

	_, _, err := store.Get(ctx, FeaturedKey())
	var cacheErr *CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, "get", cacheErr.Operation)
}

func TestRedisConfigValidate(t *testing.T) {
	cfg := &RedisConfig{Host: "localhost", Port: 6379}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:6379", cfg.Addr())

	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = &RedisConfig{Host: "localhost", Port: 6379, TLSEnabled: true, TLSCertFile: "/does/not/exist.pem"}
	assert.Error(t, cfg.Validate())
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	client, err := NewRedisClient(context.Background(), &RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	CloseRedis(client)
}
