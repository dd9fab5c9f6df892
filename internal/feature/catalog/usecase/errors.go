// Package usecase implements the business logic for the catalog feature.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when kind or description is empty.
	ErrMissingFields = errors.New("kind and description are required")

	// ErrNegativeCount is returned when the available count is negative.
	ErrNegativeCount = errors.New("count must not be negative")

	// ErrDescriptionTaken is returned when a listing with the same description already exists.
	ErrDescriptionTaken = errors.New("description already exists")

	// ErrListingNotFound is returned when a listing cannot be found by ID.
	ErrListingNotFound = errors.New("listing not found")
)
