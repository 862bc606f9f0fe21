package auth

import (
	"time"

	"github.com/goliatone/go-errors"
)

const (
	// DefaultTokenTTL bounds issued tokens when Config.TokenTTL is zero.
	DefaultTokenTTL = 30 * time.Minute

	// DefaultBcryptCost is the hashing cost used when Config.BcryptCost
	// is zero. Tests drop it to bcrypt.MinCost to stay fast.
	DefaultBcryptCost = 12
)

// Config carries the process-wide signing material and token policy. It
// is built once at startup and handed to the components that need it;
// nothing in this package reads global state.
type Config struct {
	// SigningKey is the symmetric key tokens are signed and verified
	// with. Required, known only to the server.
	SigningKey []byte

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration

	// Issuer and Audience are stamped into issued tokens and enforced
	// during validation when non-empty.
	Issuer   string
	Audience []string

	// BcryptCost is the work factor handed to bcrypt by the registration
	// and seeding paths.
	BcryptCost int
}

// Validate rejects configurations that cannot produce verifiable tokens.
func (c Config) Validate() error {
	if len(c.SigningKey) == 0 {
		return errors.New("signing key is required", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
	if c.TokenTTL < 0 {
		return errors.New("token TTL must not be negative", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
	return nil
}

func (c Config) ttl() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}
