package auth

import (
	"github.com/goliatone/go-errors"
)

const (
	textCodeTokenExpired       = "TOKEN_EXPIRED"
	textCodeTokenSignature     = "TOKEN_BAD_SIGNATURE"
	textCodeTokenMalformed     = "TOKEN_MALFORMED"
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeUnauthorized       = "UNAUTHORIZED"
	textCodePrincipalDisabled  = "PRINCIPAL_DISABLED"
	textCodePrincipalNotFound  = "PRINCIPAL_NOT_FOUND"
)

// ErrTokenExpired is returned by TokenService.Validate when the token's
// signature verifies but its expiry has passed.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignature is returned when the token does not verify under the
// server's signing key.
var ErrTokenSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(textCodeTokenSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when the token cannot be decoded at all.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(textCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is the single failure mode of the login path; it
// covers both unknown usernames and wrong passwords so callers cannot
// tell which one happened.
var ErrInvalidCredentials = errors.New("incorrect username or password", errors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is returned by ComparePasswordAndHash for
// any verification failure, malformed stored hashes included.
var ErrMismatchedHashAndPassword = errors.New("hashed password does not match", errors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrUnauthorized is the collapsed rejection the resolver hands back for
// every token failure and for unknown subjects. The specific cause is
// logged server side, never surfaced.
var ErrUnauthorized = errors.New("could not validate credentials", errors.CategoryAuth).
	WithTextCode(textCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrPrincipalDisabled is the one rejection the resolver does distinguish:
// the caller held a valid token for an account that exists but is disabled.
var ErrPrincipalDisabled = errors.New("inactive user", errors.CategoryAuthz).
	WithTextCode(textCodePrincipalDisabled).
	WithCode(errors.CodeForbidden)

// ErrPrincipalNotFound is the store-level not-found error. The resolver
// swallows it into ErrUnauthorized before anything leaves the package.
var ErrPrincipalNotFound = errors.New("principal not found", errors.CategoryNotFound).
	WithTextCode(textCodePrincipalNotFound).
	WithCode(errors.CodeNotFound)

// IsTokenExpired reports whether err carries the expired-token text code.
func IsTokenExpired(err error) bool {
	return hasTextCode(err, textCodeTokenExpired)
}

// IsTokenMalformed reports whether err carries the malformed-token text code.
func IsTokenMalformed(err error) bool {
	return hasTextCode(err, textCodeTokenMalformed)
}

// IsUnauthorized reports whether err is the resolver's collapsed rejection.
func IsUnauthorized(err error) bool {
	return hasTextCode(err, textCodeUnauthorized)
}

// IsPrincipalDisabled reports whether err is the inactive-account rejection.
func IsPrincipalDisabled(err error) bool {
	return hasTextCode(err, textCodePrincipalDisabled)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}
