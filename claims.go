package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by issued bearer tokens. The
// subject is the principal's username; everything a token proves is
// derived from the registered claims, no custom payload.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// Username returns the subject claim, the stable account identifier.
func (c *AccessClaims) Username() string {
	return c.Subject
}

// Expires returns the expiry timestamp, zero when absent.
func (c *AccessClaims) Expires() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued-at timestamp, zero when absent.
func (c *AccessClaims) Issued() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}
