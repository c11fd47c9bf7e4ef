// Package identity is the credential side of the system. Handlers never
// touch password hashes or tokens directly; they go through Provider.
package identity

import (
	"context"
	"errors"
)

var (
	ErrAlreadyExists     = errors.New("identity: email already registered")
	ErrNotFound          = errors.New("identity: no identity for email")
	ErrInvalidCredential = errors.New("identity: invalid credential")
)

// Provider issues and verifies user credentials. VerifyPassword serves
// the password login protocol; VerifyToken serves the token protocol.
// Both are supported on the login route.
type Provider interface {
	Register(ctx context.Context, email, password, displayName string) (string, error)
	LookupByEmail(ctx context.Context, email string) (string, error)
	VerifyPassword(ctx context.Context, email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	IssueToken(uid string) (string, error)
	UpdatePassword(ctx context.Context, uid, newPassword string) error
}
