// Package usecase implements the business logic for the account feature.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when a required registration field is empty.
	ErrMissingFields = errors.New("all fields are required")

	// ErrInvalidEmail is returned when an email does not contain an "@" separator.
	ErrInvalidEmail = errors.New("email is not valid")

	// ErrAccountNotFound is returned when an account cannot be found by email or ID.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredentials is returned when the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAddressAlreadyExists is returned when registering with an address
	// that already belongs to another account.
	ErrAddressAlreadyExists = errors.New("address already exists")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidToken is returned when a session token is malformed or badly signed.
	ErrInvalidToken = errors.New("invalid session token")
)
