// Package session owns the client's authentication session: the token pair,
// its decoded expiry, the cached user profile, and every state transition
// between them. Nothing else in the client writes session state.
package session

import (
	"context"
	"time"

	"github.com/voltmate/voltmate/internal/client/models"
)

// State is the session lifecycle state.
type State int

const (
	// StateUninitialized holds from process start until the first
	// Restore completes.
	StateUninitialized State = iota
	// StateAuthenticated means a usable token pair and an active account.
	StateAuthenticated
	// StateUnauthenticated means no session; the user must log in.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "uninitialized"
	}
}

// Snapshot is a read-only copy of the current session for consumers.
// AccessToken and RefreshToken are either both set or both empty.
type Snapshot struct {
	State        State
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *models.User
	Initializing bool
}

// Result is the uniform outcome of login and restore operations. Failures
// carry a user-displayable message; no error escapes the manager.
type Result struct {
	Success bool
	Message string
}

// Notifier shows a transient, user-visible notice ("session expired",
// "account is not active"). The notice precedes a forced logout so the user
// can read why they are being signed out.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) { f(ctx, message) }
