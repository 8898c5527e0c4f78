// Package auth resolves bearer credentials into caller identities. Token
// verification itself is delegated to the external identity provider;
// this package only consumes it.
package auth

import (
	"context"
	"errors"
)

// RoleAdmin is the elevated role claim recognized by the authorization
// gate. Any other value (or no value) means a regular customer.
const RoleAdmin = "admin"

// Identity is the verified caller: a stable subject id plus an optional
// role claim carried per-request, never as ambient state.
type Identity struct {
	Subject string
	Role    string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

var (
	ErrMissingCredential = errors.New("missing or malformed authorization header")
	ErrInvalidCredential = errors.New("invalid or expired token")
	ErrUnavailable       = errors.New("identity provider unavailable")
)

// Resolver verifies a bearer token and yields the caller identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}
