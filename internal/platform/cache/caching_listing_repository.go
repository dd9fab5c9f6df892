// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/feature/catalog/domain/entity"
	"market_backend/internal/feature/catalog/usecase"
)

// CachingListingRepository decorates a ListingRepository with Redis caching
// of the public list-all read path. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
// The cache is invalidated on every create so reads always see fresh writes.
type CachingListingRepository struct {
	inner usecase.ListingRepository
	rdb   *redis.Client
	ttl   time.Duration
	key   string
}

// Compile-time check to ensure the decorator still satisfies ListingRepository.
var _ usecase.ListingRepository = (*CachingListingRepository)(nil)

// NewCachingListingRepository decorates a ListingRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "listings".
func NewCachingListingRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ListingRepository, namespace string) *CachingListingRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "listings"
	}
	return &CachingListingRepository{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		key:   namespace + ":all",
	}
}

// Create inserts a listing and invalidates the cached catalog.
func (c *CachingListingRepository) Create(ctx context.Context, l *entity.ProduceListing) error {
	// First write to the underlying repository
	if err := c.inner.Create(ctx, l); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: don't fail the write if cache invalidation fails
	_ = c.rdb.Del(ctx, c.key).Err()
	return nil
}

// ListAll retrieves listings, checking cache first then falling back to the database.
func (c *CachingListingRepository) ListAll(ctx context.Context) ([]entity.ProduceListing, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListAll(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, c.key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.ProduceListing
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, c.key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, c.key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID is a passthrough; single-listing reads are not cached.
func (c *CachingListingRepository) FindByID(ctx context.Context, id uint) (*entity.ProduceListing, error) {
	return c.inner.FindByID(ctx, id)
}
