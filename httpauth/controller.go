// Package httpauth wires the authentication core into a fiber
// application: a form-encoded token endpoint plus the protected probe
// routes every bearer-token consumer needs.
package httpauth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	auth "github.com/stackmesh/go-auth"
	"github.com/stackmesh/go-auth/middleware/bearer"
)

// TokenResponse is the OAuth2-shaped body a successful login returns.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginRequest is the form payload for the token endpoint.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate runs validation rules.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Controller serves the login endpoint and the protected user routes.
type Controller struct {
	store    auth.CredentialStore
	tokens   *auth.TokenService
	resolver *auth.Resolver
	logger   auth.Logger
}

// ControllerOption customizes the controller.
type ControllerOption func(*Controller)

// WithLogger overrides the controller logger.
func WithLogger(logger auth.Logger) ControllerOption {
	return func(ct *Controller) {
		if logger != nil {
			ct.logger = logger
		}
	}
}

// NewController builds a controller around a credential store and a
// token service; the resolver is composed from the same two pieces.
func NewController(store auth.CredentialStore, tokens *auth.TokenService, opts ...ControllerOption) *Controller {
	ct := &Controller{
		store:  store,
		tokens: tokens,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ct)
		}
	}

	ct.resolver = auth.NewResolver(store, tokens)
	if ct.logger != nil {
		ct.resolver = ct.resolver.WithLogger(ct.logger)
	}

	return ct
}

// RegisterRoutes mounts the token endpoint and the protected routes.
func (ct *Controller) RegisterRoutes(app fiber.Router) {
	protected := bearer.New(bearer.Config{Resolver: ct.resolver})

	app.Post("/auth/token", ct.IssueToken)
	app.Get("/users/me", protected, ct.Me)
	app.Get("/users/me/items", protected, ct.MyItems)
}

// IssueToken implements the login contract: form-encoded username and
// password in, a bearer token out. Every authentication failure maps to
// the same 401 so the response does not leak which credential was wrong.
func (ct *Controller) IssueToken(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return ct.unauthorized(c)
	}

	if err := payload.Validate(); err != nil {
		return ct.unauthorized(c)
	}

	principal, err := auth.Authenticate(c.UserContext(), ct.store, payload.Username, payload.Password)
	if err != nil {
		ct.log().Info("login rejected", "username", payload.Username)
		return ct.unauthorized(c)
	}

	token, err := ct.tokens.Generate(principal.Username)
	if err != nil {
		ct.log().Error("token generation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal server error",
		})
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated principal. The password hash never
// serializes; Principal marks it json:"-".
func (ct *Controller) Me(c *fiber.Ctx) error {
	principal, ok := bearer.PrincipalFromLocals(c, "")
	if !ok {
		return bearer.DefaultErrorHandler(c, auth.ErrUnauthorized)
	}
	return c.JSON(principal)
}

// MyItems is a protected probe route demonstrating ownership scoping.
func (ct *Controller) MyItems(c *fiber.Ctx) error {
	principal, ok := bearer.PrincipalFromLocals(c, "")
	if !ok {
		return bearer.DefaultErrorHandler(c, auth.ErrUnauthorized)
	}
	return c.JSON([]fiber.Map{
		{"item_id": "Foo", "owner": principal.Username},
	})
}

func (ct *Controller) unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Incorrect username or password",
	})
}

func (ct *Controller) log() auth.Logger {
	if ct.logger != nil {
		return ct.logger
	}
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
