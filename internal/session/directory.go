package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/cryptox"
)

const DefaultTokenTTL = 24 * time.Hour

type account struct {
	identity Identity
	salt     []byte
	verifier []byte
}

// Directory is an in-memory Authenticator seeded with the demo accounts.
// Passwords are kept only as salted argon2id verifiers.
type Directory struct {
	mu       sync.Mutex
	accounts map[string]*account
	lastID   int

	secret  []byte
	ttl     time.Duration
	latency time.Duration
}

type DirectoryOption func(*Directory)

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(ttl time.Duration) DirectoryOption {
	return func(d *Directory) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithLatency delays every call to simulate a remote backend.
func WithLatency(latency time.Duration) DirectoryOption {
	return func(d *Directory) { d.latency = latency }
}

// NewDirectory returns a directory holding the two demo accounts:
// user@example.com / password and admin@example.com / admin.
func NewDirectory(secret []byte, opts ...DirectoryOption) *Directory {
	d := &Directory{
		accounts: make(map[string]*account),
		secret:   secret,
		ttl:      DefaultTokenTTL,
	}
	for _, o := range opts {
		o(d)
	}

	d.add(Identity{Email: "user@example.com", Name: "John Doe"}, "password")
	d.add(Identity{Email: "admin@example.com", Name: "Admin User", IsAdmin: true}, "admin")

	return d
}

// add stores a new account under the next id. Callers hold d.mu or own d
// exclusively.
func (d *Directory) add(id Identity, password string) Identity {
	d.lastID++
	id.ID = strconv.Itoa(d.lastID)
	id.Email = normalizeEmail(id.Email)

	salt, verifier := cryptox.NewVerifier([]byte(password))
	d.accounts[id.Email] = &account{identity: id, salt: salt, verifier: verifier}
	return id
}

func (d *Directory) Authenticate(ctx context.Context, creds Credentials) (Identity, string, error) {
	if err := d.wait(ctx); err != nil {
		return Identity{}, "", err
	}

	d.mu.Lock()
	acc, ok := d.accounts[normalizeEmail(creds.Email)]
	d.mu.Unlock()

	if !ok || !cryptox.CheckPassword([]byte(creds.Password), acc.salt, acc.verifier) {
		return Identity{}, "", ErrInvalidCredentials
	}
	return d.issue(acc.identity)
}

// Register creates a non-admin account. Name, email and password are
// required.
func (d *Directory) Register(ctx context.Context, reg Registration) (Identity, string, error) {
	if err := d.wait(ctx); err != nil {
		return Identity{}, "", err
	}

	email := normalizeEmail(reg.Email)
	if email == "" || reg.Password == "" || strings.TrimSpace(reg.Name) == "" {
		return Identity{}, "", fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}

	d.mu.Lock()
	if _, taken := d.accounts[email]; taken {
		d.mu.Unlock()
		return Identity{}, "", ErrEmailTaken
	}
	id := d.add(Identity{Email: email, Name: strings.TrimSpace(reg.Name), Phone: reg.Phone}, reg.Password)
	d.mu.Unlock()

	return d.issue(id)
}

// Verify parses a token issued by this directory and returns the account
// it belongs to.
func (d *Directory) Verify(token string) (Identity, error) {
	claims, err := ParseToken(token, d.secret)
	if err != nil {
		return Identity{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, acc := range d.accounts {
		if acc.identity.ID == claims.UserID {
			return acc.identity, nil
		}
	}
	return Identity{}, common.ErrorNotFound
}

func (d *Directory) issue(id Identity) (Identity, string, error) {
	token, err := GenerateToken(id, d.secret, d.ttl)
	if err != nil {
		return Identity{}, "", err
	}
	return id, token, nil
}

func (d *Directory) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
