// Package common defines shared constants and sentinel errors used across
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrInvalidToken is returned when a stored token cannot be parsed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNoCredential is returned when an operation needs a stored credential.
	ErrNoCredential = errors.New("no stored credential")

	// ErrInvalidField is returned when a submitted field violates its
	// documented enumeration or range.
	ErrInvalidField = errors.New("invalid field")
)
