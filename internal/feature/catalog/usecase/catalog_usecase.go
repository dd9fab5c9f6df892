package usecase

import (
	"context"

	"market_backend/internal/feature/catalog/domain/entity"
)

// ListingRepository abstracts the persistence layer for produce listings.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ListingRepository interface {
	// Create persists a new listing.
	// Returns ErrDescriptionTaken if the description is already in use.
	Create(ctx context.Context, listing *entity.ProduceListing) error

	// ListAll returns every listing in insertion order.
	ListAll(ctx context.Context) ([]entity.ProduceListing, error)

	// FindByID retrieves a listing by its ID.
	FindByID(ctx context.Context, id uint) (*entity.ProduceListing, error)
}

// CatalogUsecase provides business logic for catalog operations.
type CatalogUsecase struct {
	listings ListingRepository
}

// NewCatalogUsecase creates a new CatalogUsecase with the given repository.
func NewCatalogUsecase(listings ListingRepository) *CatalogUsecase {
	return &CatalogUsecase{listings: listings}
}

// ListAll returns the full catalog in the order listings were added.
func (u *CatalogUsecase) ListAll(ctx context.Context) ([]entity.ProduceListing, error) {
	return u.listings.ListAll(ctx)
}

// AddListing creates a listing owned by the given account and returns its ID.
// The caller is responsible for having resolved accountID from a valid
// session, which guarantees the owner exists.
// Description uniqueness is enforced by the store's unique index, so two
// concurrent identical descriptions resolve to exactly one winner.
func (u *CatalogUsecase) AddListing(ctx context.Context, accountID uint, kind string, count int, description string) (uint, error) {
	if kind == "" || description == "" {
		return 0, ErrMissingFields
	}
	if count < 0 {
		return 0, ErrNegativeCount
	}

	listing := &entity.ProduceListing{
		Kind:        kind,
		Count:       count,
		Description: description,
		AccountID:   accountID,
	}
	if err := u.listings.Create(ctx, listing); err != nil {
		return 0, err
	}
	return listing.ID, nil
}

// Purchase acknowledges a simulated buy of the given listing.
// It verifies the listing exists and returns it unchanged; no inventory is
// decremented and no ownership changes.
func (u *CatalogUsecase) Purchase(ctx context.Context, listingID uint) (*entity.ProduceListing, error) {
	return u.listings.FindByID(ctx, listingID)
}
