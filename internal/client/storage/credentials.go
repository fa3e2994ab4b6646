package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/common"
	"github.com/voltmate/voltmate/internal/cryptox"
)

// Storage keys of the persisted session snapshot.
const (
	keyAccessToken    = "access_token"
	keyRefreshToken   = "refresh_token"
	keyRefreshNonce   = "refresh_token_nonce"
	keyTokenExpiresAt = "token_expires_at"
	keyUserProfile    = "user_profile"

	keyDeviceSecret = "device_secret"
	keyDeviceSalt   = "device_salt"
)

var sessionKeys = []string{
	keyAccessToken, keyRefreshToken, keyRefreshNonce, keyTokenExpiresAt, keyUserProfile,
}

// Record is the session snapshot as persisted across process restarts.
type Record struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *models.User
}

// Credentials is a typed view over the key-value repository holding the
// session snapshot. The refresh token is sealed at rest with a key derived
// from a device-local secret; everything else is stored in the clear.
type Credentials struct {
	repo Repository
	key  []byte
}

// NewCredentials binds a credential store to repo, creating the device
// secret on first use.
func NewCredentials(ctx context.Context, repo Repository) (*Credentials, error) {
	got, err := repo.MultiGet(ctx, []string{keyDeviceSecret, keyDeviceSalt})
	if err != nil {
		return nil, fmt.Errorf("failed to load device secret: %w", err)
	}

	secret, salt := got[keyDeviceSecret], got[keyDeviceSalt]
	if secret == nil || salt == nil {
		secret = common.GenerateRandByteArray(32)
		salt = common.GenerateRandByteArray(16)
		err := repo.MultiSet(ctx, map[string][]byte{
			keyDeviceSecret: secret,
			keyDeviceSalt:   salt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store device secret: %w", err)
		}
	}

	return &Credentials{repo: repo, key: cryptox.DeriveStorageKey(secret, salt)}, nil
}

// Save persists the full session snapshot in one transaction.
func (c *Credentials) Save(ctx context.Context, rec *Record) error {
	sealed, nonce, err := cryptox.Seal([]byte(rec.RefreshToken), c.key)
	if err != nil {
		return fmt.Errorf("failed to seal refresh token: %w", err)
	}

	values := map[string][]byte{
		keyAccessToken:    []byte(rec.AccessToken),
		keyRefreshToken:   sealed,
		keyRefreshNonce:   nonce,
		keyTokenExpiresAt: []byte(strconv.FormatInt(rec.ExpiresAt.Unix(), 10)),
	}

	if rec.User != nil {
		profile, err := json.Marshal(rec.User)
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		values[keyUserProfile] = profile
	}

	return c.repo.MultiSet(ctx, values)
}

// Load reads the persisted snapshot. It returns (nil, nil) when no complete
// token pair is stored; a snapshot never carries one token without the other.
func (c *Credentials) Load(ctx context.Context) (*Record, error) {
	got, err := c.repo.MultiGet(ctx, sessionKeys)
	if err != nil {
		return nil, err
	}

	access := got[keyAccessToken]
	sealed := got[keyRefreshToken]
	nonce := got[keyRefreshNonce]
	if len(access) == 0 || len(sealed) == 0 || len(nonce) == 0 {
		return nil, nil
	}

	refresh, err := cryptox.Open(sealed, nonce, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal refresh token: %w", err)
	}

	rec := &Record{
		AccessToken:  string(access),
		RefreshToken: string(refresh),
	}

	if raw := got[keyTokenExpiresAt]; raw != nil {
		unix, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cached expiry: %w", err)
		}
		rec.ExpiresAt = time.Unix(unix, 0)
	}

	if raw := got[keyUserProfile]; raw != nil {
		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		rec.User = &user
	}

	return rec, nil
}

// SaveUser replaces only the cached profile, leaving tokens untouched.
func (c *Credentials) SaveUser(ctx context.Context, user *models.User) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return c.repo.Set(ctx, keyUserProfile, profile)
}

// Clear removes the session snapshot in one transaction. The device secret
// survives so future sessions reuse the same storage key.
func (c *Credentials) Clear(ctx context.Context) error {
	return c.repo.MultiRemove(ctx, sessionKeys)
}
