// Package token decodes bearer tokens issued by the VoltMate backend.
//
// The client only needs the expiry and issued-at claims to schedule silent
// renewal; signature verification is the backend's responsibility, so tokens
// are parsed unverified here.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voltmate/voltmate/internal/common"
)

// Claims is the subset of registered JWT claims the client cares about.
type Claims struct {
	// ExpiresAt is the absolute expiry of the access token.
	ExpiresAt time.Time
	// IssuedAt is when the token was minted. Zero if the claim is absent.
	IssuedAt time.Time
}

// Decode extracts expiry/issued-at claims from a bearer token without
// verifying its signature. A malformed token, or one without an exp claim,
// returns an error wrapping common.ErrInvalidToken; callers must treat that
// as "cannot determine expiry". Decode never panics.
func Decode(tokenString string) (c *Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = fmt.Errorf("%w: panic while decoding: %v", common.ErrInvalidToken, r)
		}
	}()

	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", common.ErrInvalidToken)
	}

	c = &Claims{ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		c.IssuedAt = claims.IssuedAt.Time
	}
	return c, nil
}
