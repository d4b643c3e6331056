// Package session implements the session store: the signed-in identity and
// its opaque token, hydrated from and persisted to a bridge, plus the demo
// directory that plays the authentication backend.
package session

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Identity is the signed-in user as the storefront sees it.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	Phone   string `json:"phone,omitempty"`
}

type Credentials struct {
	Email    string
	Password string
}

type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// ProfilePatch carries the fields to change; nil fields are left as they are.
type ProfilePatch struct {
	Name  *string
	Email *string
	Phone *string
}

func (p ProfilePatch) apply(id Identity) Identity {
	if p.Name != nil {
		id.Name = *p.Name
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.Phone != nil {
		id.Phone = *p.Phone
	}
	return id
}

// Authenticator is the authentication backend. Both methods return the
// identity with an opaque token. Bad credentials are reported with
// ErrInvalidCredentials and an email collision with ErrEmailTaken; any other
// error is a backend failure.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Identity, string, error)
	Register(ctx context.Context, reg Registration) (Identity, string, error)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
