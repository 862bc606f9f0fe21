package auth

import (
	"context"
	"fmt"
)

// Logger is the minimal logging surface the package needs. Messages are
// followed by alternating key/value pairs, slog style.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CredentialStore is the read-only lookup capability the resolver and the
// login path depend on. Implementations own persistence; this package
// never writes through it.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Principal, error)
}

// TokenValidator verifies a raw bearer token and returns its claims.
// *TokenService satisfies it; tests substitute their own.
type TokenValidator interface {
	Validate(token string) (*AccessClaims, error)
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { d.print("ERR", msg, args...) }
func (d defLogger) Warn(msg string, args ...any)  { d.print("WRN", msg, args...) }
func (d defLogger) Info(msg string, args ...any)  { d.print("INF", msg, args...) }
func (d defLogger) Debug(msg string, args ...any) { d.print("DBG", msg, args...) }

func (defLogger) print(level, msg string, args ...any) {
	if len(args) > 0 {
		fmt.Printf("[%s] AUTH %s %v\n", level, msg, args)
		return
	}
	fmt.Printf("[%s] AUTH %s\n", level, msg)
}
