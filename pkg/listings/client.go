package listings

import (
	"context"
	"time"

	apperrors "homefinder-listings/internal/errors"
	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/cache"
	"homefinder-listings/pkg/logger"
	"homefinder-listings/pkg/metrics"
)

const DefaultFeaturedTTL = 5 * time.Minute

// Client reads listings from a primary Store through a result cache.
// Reads that fail with a transport or server error are answered by the
// fallback Store when one is configured. Results served by the fallback
// are never cached.
type Client struct {
	primary     Store
	fallback    Store
	cache       cache.Store
	featuredTTL time.Duration
}

type ClientOption func(*Client)

func WithFallback(store Store) ClientOption {
	return func(c *Client) { c.fallback = store }
}

func WithCache(store cache.Store) ClientOption {
	return func(c *Client) {
		if store != nil {
			c.cache = store
		}
	}
}

func WithFeaturedTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl > 0 {
			c.featuredTTL = ttl
		}
	}
}

func NewClient(primary Store, opts ...ClientOption) *Client {
	c := &Client{
		primary:     primary,
		cache:       cache.NewMemoryStore(),
		featuredTTL: DefaultFeaturedTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Search(ctx context.Context, spec models.SearchSpec) (models.Page[models.Property], error) {
	page, err := c.primary.Search(ctx, spec)
	if err != nil && c.canFallback(ctx, "search", err) {
		return c.fallback.Search(ctx, spec)
	}
	return page, err
}

func (c *Client) Featured(ctx context.Context) ([]models.Property, error) {
	props, err := cache.GetOrFetch(ctx, c.cache, cache.FeaturedKey(), c.featuredTTL, c.primary.Featured)
	if err != nil && c.canFallback(ctx, "featured", err) {
		return c.fallback.Featured(ctx)
	}
	return props, err
}

// GetByID caches each listing until the next mutation.
func (c *Client) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	property, err := cache.GetOrFetch(ctx, c.cache, cache.PropertyKey(id), 0, func(ctx context.Context) (*models.Property, error) {
		return c.primary.GetByID(ctx, id)
	})
	if err != nil && c.canFallback(ctx, "get_by_id", err) {
		return c.fallback.GetByID(ctx, id)
	}
	return property, err
}

func (c *Client) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	created, err := c.primary.Create(ctx, property)
	if err != nil {
		return nil, err
	}
	c.ClearCache(ctx)
	return created, nil
}

func (c *Client) Update(ctx context.Context, id int64, property *models.Property) (*models.Property, error) {
	updated, err := c.primary.Update(ctx, id, property)
	if err != nil {
		return nil, err
	}
	c.ClearCache(ctx)
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.primary.Delete(ctx, id); err != nil {
		return err
	}
	c.ClearCache(ctx)
	return nil
}

func (c *Client) UploadImages(ctx context.Context, id int64, files []models.ImageFile) ([]string, error) {
	names, err := c.primary.UploadImages(ctx, id, files)
	if err != nil {
		return nil, err
	}
	c.ClearCache(ctx)
	return names, nil
}

// ClearCache drops every cached result. Failures are logged only.
func (c *Client) ClearCache(ctx context.Context) {
	if err := c.cache.Clear(ctx); err != nil {
		logger.GlobalLogger.Errorf("Failed to clear listings cache: %v", err)
	}
}

func (c *Client) canFallback(ctx context.Context, op string, err error) bool {
	if c.fallback == nil || ctx.Err() != nil {
		return false
	}
	if !apperrors.IsTransient(apperrors.MapError(err)) {
		return false
	}
	logger.GlobalLogger.Errorf("Primary store failed, answering %s from fallback: %v", op, err)
	metrics.RemoteFallbacksTotal.WithLabelValues(op).Inc()
	return true
}
