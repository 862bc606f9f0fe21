package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	auth "github.com/stackmesh/go-auth"
)

// MockStore implements auth.CredentialStore for testing.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindByUsername(ctx context.Context, username string) (*auth.Principal, error) {
	args := m.Called(ctx, username)
	var principal *auth.Principal
	if v := args.Get(0); v != nil {
		principal = v.(*auth.Principal)
	}
	return principal, args.Error(1)
}

// MockValidator implements auth.TokenValidator for testing.
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(token string) (*auth.AccessClaims, error) {
	args := m.Called(token)
	var claims *auth.AccessClaims
	if v := args.Get(0); v != nil {
		claims = v.(*auth.AccessClaims)
	}
	return claims, args.Error(1)
}

// MockLogger implements auth.Logger for testing.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, args ...any) { m.Called(msg, args) }
func (m *MockLogger) Info(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.Called(msg, args) }
func (m *MockLogger) Error(msg string, args ...any) { m.Called(msg, args) }
