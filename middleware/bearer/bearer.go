// Package bearer provides a fiber middleware that extracts an
// Authorization: Bearer credential, resolves it into a principal, and
// stores the result for downstream handlers.
package bearer

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	auth "github.com/stackmesh/go-auth"
)

// DefaultContextKey is where the resolved principal is stored in fiber
// locals when Config.ContextKey is empty.
const DefaultContextKey = "principal"

const bearerScheme = "Bearer"

// PrincipalResolver mirrors *auth.Resolver so tests can substitute one.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Principal, error)
}

// Config configures the middleware. Resolver is required.
type Config struct {
	Resolver PrincipalResolver

	// ContextKey is the fiber locals key the principal is stored under.
	ContextKey string

	// ErrorHandler maps resolution failures onto a response. The default
	// emits the WWW-Authenticate contract: 401 with a generic message for
	// anything unauthorized, 403 "Inactive user" for disabled accounts.
	ErrorHandler func(c *fiber.Ctx, err error) error
}

// New builds the middleware. Handlers behind it can rely on a non-nil,
// active principal in locals and in the request context.
func New(cfg Config) fiber.Handler {
	if cfg.Resolver == nil {
		panic("bearer: Config.Resolver is required")
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	return func(c *fiber.Ctx) error {
		raw, err := TokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		principal, err := cfg.Resolver.Resolve(c.UserContext(), raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, principal)
		c.SetUserContext(auth.WithPrincipal(c.UserContext(), principal))

		return c.Next()
	}
}

// TokenFromHeader pulls the raw token out of an Authorization header
// value. A missing header, a non-Bearer scheme, and an empty credential
// all yield the same unauthorized error.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", auth.ErrUnauthorized
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", auth.ErrUnauthorized
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", auth.ErrUnauthorized
	}

	return token, nil
}

// PrincipalFromLocals fetches the principal a New handler stored.
func PrincipalFromLocals(c *fiber.Ctx, key string) (*auth.Principal, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	principal, ok := c.Locals(key).(*auth.Principal)
	return principal, ok
}

// DefaultErrorHandler renders resolution failures per the bearer-token
// contract. Unauthorized responses carry WWW-Authenticate: Bearer and a
// deliberately generic message.
func DefaultErrorHandler(c *fiber.Ctx, err error) error {
	if auth.IsPrincipalDisabled(err) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"detail": "Inactive user",
		})
	}

	var rich *errors.Error
	if errors.As(err, &rich) && rich.Category == errors.CategoryInternal {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal server error",
		})
	}

	c.Set(fiber.HeaderWWWAuthenticate, bearerScheme)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Could not validate credentials",
	})
}
