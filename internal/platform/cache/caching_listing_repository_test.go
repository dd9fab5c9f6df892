package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/catalog/domain/entity"
	"market_backend/internal/feature/catalog/usecase"
)

// mockListingRepository counts calls so cache hits and misses can be observed.
type mockListingRepository struct {
	listings     []entity.ProduceListing
	listAllCalls int
	createErr    error
}

func (m *mockListingRepository) Create(ctx context.Context, l *entity.ProduceListing) error {
	if m.createErr != nil {
		return m.createErr
	}
	l.ID = uint(len(m.listings) + 1)
	m.listings = append(m.listings, *l)
	return nil
}

func (m *mockListingRepository) ListAll(ctx context.Context) ([]entity.ProduceListing, error) {
	m.listAllCalls++
	out := make([]entity.ProduceListing, len(m.listings))
	copy(out, m.listings)
	return out, nil
}

func (m *mockListingRepository) FindByID(ctx context.Context, id uint) (*entity.ProduceListing, error) {
	for _, l := range m.listings {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, usecase.ErrListingNotFound
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client
}

func TestCachingListingRepository_ListAll(t *testing.T) {
	t.Run("second read is served from cache", func(t *testing.T) {
		rdb := setupTestRedis(t)
		inner := &mockListingRepository{}
		repo := NewCachingListingRepository(rdb, time.Minute, inner, "listings")

		require.NoError(t, inner.Create(context.Background(), &entity.ProduceListing{Kind: "Orange", Description: "d"}))

		first, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		second, err := repo.ListAll(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first, second, "cached read must match the database read")
		assert.Equal(t, 1, inner.listAllCalls, "second read should not hit the database")
	})

	t.Run("create invalidates the cache", func(t *testing.T) {
		rdb := setupTestRedis(t)
		inner := &mockListingRepository{}
		repo := NewCachingListingRepository(rdb, time.Minute, inner, "listings")

		require.NoError(t, repo.Create(context.Background(), &entity.ProduceListing{Kind: "Orange", Description: "first"}))

		before, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, before, 1)

		// A write through the decorator must be visible to the next read
		require.NoError(t, repo.Create(context.Background(), &entity.ProduceListing{Kind: "Apple", Description: "second"}))

		after, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, after, 2, "read after write must see the new listing")
		assert.Equal(t, "second", after[1].Description)
	})

	t.Run("nil redis client bypasses the cache", func(t *testing.T) {
		inner := &mockListingRepository{}
		repo := NewCachingListingRepository(nil, time.Minute, inner, "listings")

		_, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		_, err = repo.ListAll(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, inner.listAllCalls, "every read should hit the database without Redis")
	})

	t.Run("failed create does not invalidate", func(t *testing.T) {
		rdb := setupTestRedis(t)
		inner := &mockListingRepository{}
		repo := NewCachingListingRepository(rdb, time.Minute, inner, "listings")

		_, err := repo.ListAll(context.Background())
		require.NoError(t, err)

		inner.createErr = usecase.ErrDescriptionTaken
		assert.Error(t, repo.Create(context.Background(), &entity.ProduceListing{Kind: "Orange", Description: "dup"}))

		_, err = repo.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, inner.listAllCalls, "rejected write should leave the cache intact")
	})
}

func TestCachingListingRepository_FindByID(t *testing.T) {
	inner := &mockListingRepository{}
	repo := NewCachingListingRepository(setupTestRedis(t), time.Minute, inner, "listings")

	require.NoError(t, inner.Create(context.Background(), &entity.ProduceListing{Kind: "Orange", Description: "d"}))

	found, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Orange", found.Kind)

	_, err = repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, usecase.ErrListingNotFound)
}

func TestNewCachingListingRepository_Defaults(t *testing.T) {
	repo := NewCachingListingRepository(nil, 0, &mockListingRepository{}, "")

	assert.Equal(t, 5*time.Minute, repo.ttl)
	assert.Equal(t, "listings:all", repo.key)
}
