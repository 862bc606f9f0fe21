// Package auth provides password hashing, bearer-token issuance and
// validation, and principal resolution for HTTP services.
//
// The package is built around two small components:
//
//   - TokenService hashes nothing and stores nothing; it signs and
//     verifies time-bounded HS256 bearer tokens with a process-wide
//     symmetric key.
//   - Resolver composes token validation with a CredentialStore lookup
//     and an account-status check, turning a raw bearer token into an
//     active *Principal or a rejection.
//
// Everything is request scoped: tokens are stateless, principals are
// never cached between requests, and the only I/O is the credential
// store lookup handed in at construction time.
package auth
