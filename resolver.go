package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Authenticate verifies a username/password pair against the store. It is
// the login path only; token-bearing requests go through Resolver. An
// unknown username and a wrong password both yield ErrInvalidCredentials
// so the response does not reveal whether the account exists.
func Authenticate(ctx context.Context, store CredentialStore, username, password string) (*Principal, error) {
	principal, err := store.FindByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "credential store lookup failed")
	}

	if principal == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, principal.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return principal, nil
}

// Resolver turns a raw bearer token into an active principal: validate
// the token, look the subject up in the store, enforce the disabled flag.
// It holds no per-request state and is safe for concurrent use.
type Resolver struct {
	store  CredentialStore
	tokens TokenValidator
	logger Logger
}

// NewResolver composes a token validator with a credential store.
func NewResolver(store CredentialStore, tokens TokenValidator) *Resolver {
	return &Resolver{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
	}
}

// WithLogger overrides the resolver logger.
func (r *Resolver) WithLogger(logger Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Resolve runs the per-request resolution chain. Token failures of any
// kind and unknown subjects collapse to ErrUnauthorized so a caller
// cannot probe which check failed; a disabled account is the one case
// that is distinguished, since the caller already proved possession of a
// valid token. Store failures other than not-found surface as internal
// errors rather than rejections.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Principal, error) {
	claims, err := r.tokens.Validate(token)
	if err != nil {
		r.logger.Debug("token validation failed", "error", err)
		return nil, ErrUnauthorized
	}

	subject := claims.Username()
	if subject == "" {
		r.logger.Debug("token carries no subject")
		return nil, ErrUnauthorized
	}

	principal, err := r.store.FindByUsername(ctx, subject)
	if err != nil {
		if errors.IsNotFound(err) {
			r.logger.Debug("token subject not in store", "subject", subject)
			return nil, ErrUnauthorized
		}
		r.logger.Error("credential store lookup failed", "subject", subject, "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "credential store lookup failed")
	}

	if principal == nil {
		return nil, ErrUnauthorized
	}

	// Freshness over statelessness: the disabled flag is re-read on every
	// request, so disabling an account takes effect before its tokens expire.
	if principal.Disabled {
		r.logger.Info("rejected disabled principal", "subject", subject)
		return nil, ErrPrincipalDisabled
	}

	return principal, nil
}
