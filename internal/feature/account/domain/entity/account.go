// Package entity はaccountフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// Account represents a registered user in the marketplace.
// It contains authentication credentials and the delivery address.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown on listings.
	Name string `gorm:"size:255;not null"`

	// Email is the address used for login lookup.
	// Indexed but not unique: the schema's only uniqueness constraint
	// on accounts is the delivery address.
	Email string `gorm:"index;size:255;not null"`

	// Password is the bcrypt hash of the account password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Address is the physical/delivery address, unique across all accounts.
	Address string `gorm:"uniqueIndex;size:255;not null"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the account was last updated.
	UpdatedAt time.Time
}
