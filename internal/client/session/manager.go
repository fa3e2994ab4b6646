package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/bus"
	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/client/storage"
	"github.com/voltmate/voltmate/internal/client/token"
	"github.com/voltmate/voltmate/internal/common"
	"github.com/voltmate/voltmate/internal/logging"
)

// errSuperseded marks an async completion that arrived after the session it
// belonged to was destroyed. Its result must not be applied.
var errSuperseded = errors.New("session superseded")

const (
	msgSessionExpired = "session expired, please sign in again"
	msgAccountBlocked = "account is not active"
	msgLoginFailed    = "login failed"
)

// Options configures a Manager. API, Credentials, Events and Log are
// required; nil Scheduler, Notifier and Now fall back to production values.
type Options struct {
	API         api.Client
	Credentials *storage.Credentials
	Events      *bus.Bus
	Log         logging.Logger
	Scheduler   Scheduler
	Notifier    Notifier
	// RenewalLead is how long before access-token expiry silent renewal
	// fires. Zero means 300s.
	RenewalLead time.Duration
	// NoticeDelay is how long a failure notice stays on screen before the
	// forced logout completes.
	NoticeDelay time.Duration
	Now         func() time.Time
}

// Manager is the session lifecycle state machine. It is the sole writer of
// session state; other components read the token through AccessToken (the
// api.TokenSource contract) or signal through the notification bus.
//
// A mutex guards all fields below it: renewal timers fire on their own
// goroutine, so unlike the transport the manager cannot assume a single
// caller.
type Manager struct {
	api      api.Client
	creds    *storage.Credentials
	events   *bus.Bus
	log      logging.Logger
	sched    Scheduler
	notifier Notifier
	lead     time.Duration
	delay    time.Duration
	now      func() time.Time

	offInvalidated func()

	mu           sync.Mutex
	state        State
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	user         *models.User
	initializing bool
	restored     bool // one-time Restore guard, reset by Logout
	renewing     bool // single-flight guard shared by timer and manual triggers
	cancelTimer  func()
	cancelNotice func()
	epoch        uint64
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		api:      opts.API,
		creds:    opts.Credentials,
		events:   opts.Events,
		log:      opts.Log.With("component", "session"),
		sched:    opts.Scheduler,
		notifier: opts.Notifier,
		lead:     opts.RenewalLead,
		delay:    opts.NoticeDelay,
		now:      opts.Now,
		state:    StateUninitialized,
	}
	if m.sched == nil {
		m.sched = NewScheduler()
	}
	if m.notifier == nil {
		m.notifier = NotifierFunc(func(context.Context, string) {})
	}
	if m.lead == 0 {
		m.lead = 300 * time.Second
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.offInvalidated = m.events.On(common.EventSessionInvalidated, m.onInvalidated)
	return m
}

// Close unsubscribes from the bus and cancels pending timers. The session
// itself is left as-is; call Logout first to destroy it.
func (m *Manager) Close() {
	m.offInvalidated()
	m.mu.Lock()
	m.cancelTimerLocked()
	m.cancelNoticeLocked()
	m.mu.Unlock()
}

// AccessToken implements api.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken
}

// Snapshot returns a read-only copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:        m.state,
		AccessToken:  m.accessToken,
		RefreshToken: m.refreshToken,
		ExpiresAt:    m.expiresAt,
		Initializing: m.initializing,
	}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Restore rebuilds the session from persistent storage. It runs at most once
// per process lifetime (until a Logout resets the guard); concurrent callers
// observe the guard and return the current state without re-entering. The
// initializing flag drops in all outcomes.
func (m *Manager) Restore(ctx context.Context) State {
	m.mu.Lock()
	if m.restored {
		s := m.state
		m.mu.Unlock()
		return s
	}
	m.restored = true
	m.initializing = true
	epoch := m.epoch
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.initializing = false
		m.mu.Unlock()
	}()

	rec, err := m.creds.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to load persisted session", "error", err)
		m.reset(ctx, epoch, true)
		return m.State()
	}
	if rec == nil {
		m.reset(ctx, epoch, false)
		return m.State()
	}

	pair := &api.TokenPair{AccessToken: rec.AccessToken, RefreshToken: rec.RefreshToken}

	claims, derr := token.Decode(rec.AccessToken)
	if derr == nil && claims.ExpiresAt.After(m.now()) {
		// Access token still live: adopt it and confirm the account.
		if err := m.establish(ctx, epoch, pair, claims); err != nil {
			m.restoreFailed(ctx, epoch, err)
		}
		return m.State()
	}

	// Expired or undecodable token: one silent renewal attempt.
	if derr != nil {
		m.log.Debug(ctx, "persisted token not decodable, forcing renewal", "error", derr)
	}
	fresh, err := m.api.Refresh(ctx, rec.RefreshToken)
	if err != nil {
		m.log.Info(ctx, "session restore failed at refresh", "error", err)
		m.reset(ctx, epoch, true)
		return m.State()
	}
	freshClaims, err := token.Decode(fresh.AccessToken)
	if err != nil {
		m.log.Warn(ctx, "refreshed token not decodable", "error", err)
		m.reset(ctx, epoch, true)
		return m.State()
	}
	if err := m.establish(ctx, epoch, fresh, freshClaims); err != nil {
		m.restoreFailed(ctx, epoch, err)
	}
	return m.State()
}

func (m *Manager) restoreFailed(ctx context.Context, epoch uint64, err error) {
	if errors.Is(err, errSuperseded) {
		return
	}
	if errors.Is(err, common.ErrAccountInactive) {
		m.notifier.Notify(ctx, msgAccountBlocked)
	}
	m.log.Info(ctx, "session restore failed", "error", err)
	m.reset(ctx, epoch, true)
}

// Login authenticates with the backend. On success it persists the token
// pair, adopts the profile and arms the renewal timer. On failure the
// session is left exactly as it was before the attempt: a previously
// authenticated session survives a failed re-login.
func (m *Manager) Login(ctx context.Context, email string, password []byte) Result {
	m.mu.Lock()
	epoch := m.epoch
	prev := m.snapshotLocked()
	m.mu.Unlock()

	pair, err := m.api.Login(ctx, email, password)
	if err != nil {
		return Result{Success: false, Message: failureMessage(err, msgLoginFailed)}
	}

	claims, err := token.Decode(pair.AccessToken)
	if err != nil {
		m.log.Error(ctx, "login returned undecodable access token", "error", err)
		return Result{Success: false, Message: msgLoginFailed}
	}

	if err := m.establish(ctx, epoch, pair, claims); err != nil {
		if errors.Is(err, errSuperseded) {
			return Result{Success: false, Message: msgLoginFailed}
		}
		m.rollback(ctx, epoch, prev)
		if errors.Is(err, common.ErrAccountInactive) {
			return Result{Success: false, Message: msgAccountBlocked}
		}
		return Result{Success: false, Message: failureMessage(err, msgLoginFailed)}
	}

	m.log.Info(ctx, "login successful", "email", email)
	return Result{Success: true}
}

// rollback returns the session to the state captured before a failed login
// attempt. establish adopts and persists the new pair before the profile
// check, so on failure the prior authenticated session must be reinstated
// in memory and storage; when there was none, the half-written state is
// simply cleared. The prior renewal timer was never cancelled, so no
// rescheduling is needed.
func (m *Manager) rollback(ctx context.Context, epoch uint64, prev Snapshot) {
	if prev.State != StateAuthenticated {
		m.reset(ctx, epoch, true)
		return
	}

	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	m.accessToken = prev.AccessToken
	m.refreshToken = prev.RefreshToken
	m.expiresAt = prev.ExpiresAt
	m.user = prev.User
	m.state = StateAuthenticated
	m.mu.Unlock()

	rec := &storage.Record{
		AccessToken:  prev.AccessToken,
		RefreshToken: prev.RefreshToken,
		ExpiresAt:    prev.ExpiresAt,
		User:         prev.User,
	}
	if err := m.creds.Save(ctx, rec); err != nil {
		m.log.Warn(ctx, "failed to restore persisted session", "error", err)
	}
}

// Logout destroys the session: cancels pending timers, clears persistent
// storage, resets in-memory state and the Restore guard, and publishes
// EventSessionEnded so surfaces can leave authenticated views.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.epoch++
	m.cancelTimerLocked()
	m.cancelNoticeLocked()
	m.clearLocked()
	m.restored = false
	m.mu.Unlock()

	err := m.creds.Clear(ctx)
	m.events.Emit(common.EventSessionEnded, nil)
	return err
}

// SetUser replaces the cached profile without touching tokens; used by
// profile-editing flows after a successful update.
func (m *Manager) SetUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return common.ErrorUnauthorized
	}
	u := *user
	m.user = &u
	m.mu.Unlock()

	return m.creds.SaveUser(ctx, user)
}

// Renew triggers a silent renewal immediately, sharing the single-flight
// guard with the timer so concurrent triggers cannot race.
func (m *Manager) Renew(ctx context.Context) {
	m.renew(ctx)
}

// establish is the one path that adopts a freshly issued token pair: it
// writes tokens and the decoded expiry together, persists them, verifies
// the account is active, and arms the renewal timer. epoch pins the session
// generation; a mismatch anywhere aborts with errSuperseded and no visible
// effect.
func (m *Manager) establish(ctx context.Context, epoch uint64, pair *api.TokenPair, claims *token.Claims) error {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return errSuperseded
	}
	m.accessToken = pair.AccessToken
	m.refreshToken = pair.RefreshToken
	m.expiresAt = claims.ExpiresAt
	prevUser := m.user
	m.mu.Unlock()

	rec := &storage.Record{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    claims.ExpiresAt,
		User:         prevUser,
	}
	if err := m.creds.Save(ctx, rec); err != nil {
		return err
	}

	profile, err := m.api.GetProfile(ctx)
	if err != nil {
		return err
	}
	if profile.Status != common.UserStatusActive {
		return common.ErrAccountInactive
	}

	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return errSuperseded
	}
	m.user = profile
	m.state = StateAuthenticated
	m.scheduleRenewalLocked(claims.ExpiresAt)
	m.mu.Unlock()

	return m.creds.SaveUser(ctx, profile)
}

// renew refreshes the token pair using the current refresh token. Renewal
// attempts are serialized: if one is in flight, later triggers return
// immediately. A failed renewal is not retried; the user sees a notice and
// is logged out after the notice delay.
func (m *Manager) renew(ctx context.Context) {
	m.mu.Lock()
	if m.renewing || m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.renewing = true
	refresh := m.refreshToken
	epoch := m.epoch
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.renewing = false
		m.mu.Unlock()
	}()

	pair, err := m.api.Refresh(ctx, refresh)
	if err != nil {
		m.log.Info(ctx, "silent renewal failed", "error", err)
		m.failSession(ctx, epoch, failureMessage(err, msgSessionExpired))
		return
	}

	claims, err := token.Decode(pair.AccessToken)
	if err != nil {
		m.log.Error(ctx, "refreshed token not decodable", "error", err)
		m.failSession(ctx, epoch, msgSessionExpired)
		return
	}

	if err := m.establish(ctx, epoch, pair, claims); err != nil {
		if errors.Is(err, errSuperseded) {
			return
		}
		msg := msgSessionExpired
		if errors.Is(err, common.ErrAccountInactive) {
			msg = msgAccountBlocked
		}
		m.failSession(ctx, epoch, msg)
		return
	}

	m.log.Debug(ctx, "session renewed", "expires_at", claims.ExpiresAt)
}

// scheduleRenewalLocked arms the silent-renewal timer for
// expiresAt − lead, cancelling any prior timer first so at most one is ever
// pending. A zero or negative delay arms nothing: the session is effectively
// expired and the caller is expected to have renewed already.
func (m *Manager) scheduleRenewalLocked(expiresAt time.Time) {
	m.cancelTimerLocked()

	delay := expiresAt.Sub(m.now()) - m.lead
	if delay <= 0 {
		return
	}
	m.cancelTimer = m.sched.Schedule(delay, func() {
		m.renew(context.Background())
	})
}

// failSession shows a notice and schedules the forced logout after the
// notice delay. The delay is purely so the user can read the message.
// One failure can surface through several paths at once (a 401 emitted by
// the transport plus the renew error branch); the first notice wins and
// later ones for the same session are dropped.
func (m *Manager) failSession(ctx context.Context, epoch uint64, message string) {
	m.mu.Lock()
	if epoch != m.epoch || m.cancelNotice != nil {
		m.mu.Unlock()
		return
	}
	m.cancelTimerLocked()
	m.cancelNotice = m.sched.Schedule(m.delay, func() {
		_ = m.Logout(context.Background())
	})
	m.mu.Unlock()

	m.notifier.Notify(ctx, message)
}

// onInvalidated handles the transport's 401 signal; the effect is identical
// to a failed renewal.
func (m *Manager) onInvalidated(payload any) {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	epoch := m.epoch
	m.mu.Unlock()

	message := msgSessionExpired
	if s, ok := payload.(string); ok && s != "" {
		message = s
	}
	m.failSession(context.Background(), epoch, message)
}

// reset forces the unauthenticated state from an internal failure path.
// Unlike Logout it does not reset the Restore guard and publishes no event
// when nothing was established yet.
func (m *Manager) reset(ctx context.Context, epoch uint64, clearStorage bool) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	m.cancelTimerLocked()
	m.clearLocked()
	m.mu.Unlock()

	if clearStorage {
		if err := m.creds.Clear(ctx); err != nil {
			m.log.Warn(ctx, "failed to clear persisted session", "error", err)
		}
	}
}

// clearLocked wipes the in-memory session. Tokens are cleared together,
// never one without the other.
func (m *Manager) clearLocked() {
	m.accessToken = ""
	m.refreshToken = ""
	m.expiresAt = time.Time{}
	m.user = nil
	m.state = StateUnauthenticated
}

func (m *Manager) cancelTimerLocked() {
	if m.cancelTimer != nil {
		m.cancelTimer()
		m.cancelTimer = nil
	}
}

func (m *Manager) cancelNoticeLocked() {
	if m.cancelNotice != nil {
		m.cancelNotice()
		m.cancelNotice = nil
	}
}

// failureMessage prefers the backend's user-displayable {message} over the
// generic fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
