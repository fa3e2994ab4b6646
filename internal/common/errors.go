// Package common defines shared constants and sentinel errors used across
// the VoltMate client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorUnavailable  = errors.New("server unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Account errors.
	ErrAccountInactive = errors.New("account is not active")

	// Booking errors.
	ErrSlotConflict = errors.New("slot conflicts with an existing booking")
	ErrOutsideHours = errors.New("slot is outside station opening hours")
	ErrInvalidSlot  = errors.New("invalid slot interval")

	// Charging errors.
	ErrNoActiveCharge = errors.New("no active charging session")
)
