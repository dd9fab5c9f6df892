// Package entity defines the domain models for the catalog feature.
package entity

import "time"

// ProduceListing represents a produce item offered on the marketplace.
// The owning account is an explicit foreign-key reference; listings never
// own or traverse the account record itself.
type ProduceListing struct {
	ID uint `gorm:"primaryKey"`

	// Kind is the produce type, e.g. "Orange".
	Kind string `gorm:"size:255;not null"`

	// Count is the number of items available. Zero means unknown.
	Count int `gorm:"not null;default:0"`

	// Description is the seller's text for the listing, unique across the catalog.
	Description string `gorm:"uniqueIndex;size:255;not null"`

	// AccountID references the owning account.
	AccountID uint `gorm:"index;not null"`

	// CreatedAt is the timestamp when the listing was created.
	CreatedAt time.Time
}
