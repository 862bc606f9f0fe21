package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	auth "github.com/stackmesh/go-auth"
)

func activePrincipal(t *testing.T, username, password string) *auth.Principal {
	t.Helper()
	hash, err := auth.HashPasswordCost(password, bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.Principal{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password returns principal", func(t *testing.T) {
		store := &MockStore{}
		store.On("FindByUsername", ctx, "johndoe").
			Return(activePrincipal(t, "johndoe", "secret"), nil)

		principal, err := auth.Authenticate(ctx, store, "johndoe", "secret")
		assert.NoError(t, err)
		assert.Equal(t, "johndoe", principal.Username)

		store.AssertExpectations(t)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		store := &MockStore{}
		store.On("FindByUsername", ctx, "johndoe").
			Return(activePrincipal(t, "johndoe", "secret"), nil)

		_, err := auth.Authenticate(ctx, store, "johndoe", "not the password")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown username is invalid credentials", func(t *testing.T) {
		store := &MockStore{}
		store.On("FindByUsername", ctx, "nobody").
			Return(nil, auth.ErrPrincipalNotFound)

		_, err := auth.Authenticate(ctx, store, "nobody", "x")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("store failure is not credential failure", func(t *testing.T) {
		store := &MockStore{}
		store.On("FindByUsername", ctx, "johndoe").
			Return(nil, errors.New("connection refused", errors.CategoryInternal))

		_, err := auth.Authenticate(ctx, store, "johndoe", "secret")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tokens := auth.NewTokenService(auth.Config{
		SigningKey: testSigningKey,
		TokenTTL:   30 * time.Minute,
	}, auth.WithClock(func() time.Time { return now }))

	mintToken := func(t *testing.T, subject string) string {
		t.Helper()
		token, err := tokens.Generate(subject)
		assert.NoError(t, err)
		return token
	}

	t.Run("active principal resolves", func(t *testing.T) {
		store := &MockStore{}
		store.On("FindByUsername", ctx, "johndoe").
			Return(activePrincipal(t, "johndoe", "secret"), nil)

		resolver := auth.NewResolver(store, tokens)

		principal, err := resolver.Resolve(ctx, mintToken(t, "johndoe"))
		assert.NoError(t, err)
		assert.Equal(t, "johndoe", principal.Username)
		assert.True(t, principal.Active())

		store.AssertExpectations(t)
	})

	t.Run("disabled principal is forbidden", func(t *testing.T) {
		disabled := activePrincipal(t, "alice", "secret")
		disabled.Disabled = true

		store := &MockStore{}
		store.On("FindByUsername", ctx, "alice").Return(disabled, nil)

		resolver := auth.NewResolver(store, tokens)

		_, err := resolver.Resolve(ctx, mintToken(t, "alice"))
		assert.ErrorIs(t, err, auth.ErrPrincipalDisabled)
		assert.True(t, auth.IsPrincipalDisabled(err))
	})

	t.Run("unknown subject is unauthorized", func(t *testing.T) {
		store := &MockStore{}
		store.On("FindByUsername", ctx, "ghost").
			Return(nil, auth.ErrPrincipalNotFound)

		resolver := auth.NewResolver(store, tokens)

		_, err := resolver.Resolve(ctx, mintToken(t, "ghost"))
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("token failures are indistinguishable", func(t *testing.T) {
		store := &MockStore{}
		resolver := auth.NewResolver(store, tokens)

		_, malformedErr := resolver.Resolve(ctx, "syntactically-invalid")

		forger := auth.NewTokenService(auth.Config{
			SigningKey: []byte("attacker-key"),
			TokenTTL:   30 * time.Minute,
		}, auth.WithClock(func() time.Time { return now }))
		forged, err := forger.Generate("johndoe")
		assert.NoError(t, err)

		_, forgedErr := resolver.Resolve(ctx, forged)

		assert.ErrorIs(t, malformedErr, auth.ErrUnauthorized)
		assert.ErrorIs(t, forgedErr, auth.ErrUnauthorized)
		assert.Equal(t, malformedErr, forgedErr)

		// the store is never consulted for a bad token
		store.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		expiredVerifier := auth.NewTokenService(auth.Config{
			SigningKey: testSigningKey,
			TokenTTL:   30 * time.Minute,
		}, auth.WithClock(func() time.Time { return now.Add(31 * time.Minute) }))

		store := &MockStore{}
		resolver := auth.NewResolver(store, expiredVerifier)

		_, err := resolver.Resolve(ctx, mintToken(t, "johndoe"))
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("token without subject is unauthorized", func(t *testing.T) {
		validator := &MockValidator{}
		validator.On("Validate", "no-subject").Return(&auth.AccessClaims{}, nil)

		store := &MockStore{}
		resolver := auth.NewResolver(store, validator)

		_, err := resolver.Resolve(ctx, "no-subject")
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("store failure surfaces as internal", func(t *testing.T) {
		store := &MockStore{}
		store.On("FindByUsername", ctx, "johndoe").
			Return(nil, errors.New("connection refused", errors.CategoryInternal))

		resolver := auth.NewResolver(store, tokens)

		_, err := resolver.Resolve(ctx, mintToken(t, "johndoe"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("disabled flag is re-read per request", func(t *testing.T) {
		token := mintToken(t, "johndoe")

		store := &MockStore{}
		active := activePrincipal(t, "johndoe", "secret")
		disabled := activePrincipal(t, "johndoe", "secret")
		disabled.Disabled = true

		store.On("FindByUsername", ctx, "johndoe").Return(active, nil).Once()
		store.On("FindByUsername", ctx, "johndoe").Return(disabled, nil).Once()

		resolver := auth.NewResolver(store, tokens)

		_, err := resolver.Resolve(ctx, token)
		assert.NoError(t, err)

		// same still-valid token, but the account was disabled in between
		_, err = resolver.Resolve(ctx, token)
		assert.ErrorIs(t, err, auth.ErrPrincipalDisabled)
	})
}
