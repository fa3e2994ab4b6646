package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound requests. The value is "Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request uuid for backend correlation.
const RequestIDHeaderName = "X-Request-Id"

// IdempotencyKeyHeaderName is attached to mutating requests (bookings,
// payments) so retries do not duplicate server-side effects.
const IdempotencyKeyHeaderName = "Idempotency-Key"

// EventSessionInvalidated is published on the notification bus when the
// transport observes an authentication failure (HTTP 401) from the backend.
// The session manager reacts by forcing a logout.
const EventSessionInvalidated = "session:invalidated"

// EventSessionEnded is published after a logout completes, whether explicit
// or forced. Surfaces (the CLI REPL) use it to leave authenticated views.
const EventSessionEnded = "session:ended"

// UserStatusActive is the only account status under which a session is
// considered usable. Any other status forces a logout.
const UserStatusActive = "active"
