package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/logging"
)

// Snapshot is the session as observers see it. Identity and Token are zero
// values while Anonymous.
type Snapshot struct {
	Authenticated bool     `json:"authenticated"`
	Identity      Identity `json:"identity"`
	Token         string   `json:"-"`
}

// Store holds the session. It is either Anonymous (no token, no identity) or
// Authenticated (both present); no other combination is ever observable.
type Store struct {
	mu       sync.Mutex
	token    string
	identity Identity

	auth Authenticator
	json *bridge.JSON
	log  logging.Logger

	subsMu sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// NewStore hydrates a session from b. The session is Authenticated only when
// both a non-empty token and a decodable identity are stored; a half-present
// pair is discarded.
func NewStore(ctx context.Context, b bridge.Bridge, auth Authenticator, log logging.Logger) *Store {
	s := &Store{
		auth: auth,
		json: bridge.NewJSON(b, log),
		log:  log.With("store", "session"),
		subs: make(map[int]func(Snapshot)),
	}

	var token string
	var identity Identity
	hasToken := s.json.Read(ctx, common.TokenKey, &token) && token != ""
	hasIdentity := s.json.Read(ctx, common.IdentityKey, &identity) && identity.ID != ""

	switch {
	case hasToken && hasIdentity:
		s.token, s.identity = token, identity
		s.log.Debug(ctx, "session hydrated", "user", identity.ID)
	case hasToken || hasIdentity:
		s.log.Warn(ctx, "discarding partial session", "token", hasToken, "identity", hasIdentity)
		if err := s.json.Remove(ctx, common.TokenKey, common.IdentityKey); err != nil {
			s.log.Warn(ctx, "stale session not removed", "error", err)
		}
	}

	return s
}

// Login authenticates creds. Bad credentials return (false, nil) and leave
// the store untouched; a backend failure is returned as the error.
func (s *Store) Login(ctx context.Context, creds Credentials) (bool, error) {
	identity, token, err := s.auth.Authenticate(ctx, creds)
	if err == nil {
		err = checkIssued(identity, token)
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		s.log.Info(ctx, "login rejected", "email", normalizeEmail(creds.Email))
		return false, nil
	case err != nil:
		return false, err
	}

	s.signIn(ctx, identity, token)
	return true, nil
}

// Register creates an account and signs it in. An email that is already
// registered, or an incomplete registration, returns (false, nil).
func (s *Store) Register(ctx context.Context, reg Registration) (bool, error) {
	identity, token, err := s.auth.Register(ctx, reg)
	if err == nil {
		err = checkIssued(identity, token)
	}
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, common.ErrorValidation):
		s.log.Info(ctx, "registration rejected", "email", normalizeEmail(reg.Email), "reason", err)
		return false, nil
	case err != nil:
		return false, err
	}

	s.signIn(ctx, identity, token)
	return true, nil
}

// checkIssued rejects a successful reply that would leave a half-signed-in
// session.
func checkIssued(identity Identity, token string) error {
	if token == "" || identity.ID == "" {
		return fmt.Errorf("%w: authenticator returned no token or user id", common.ErrorInternal)
	}
	return nil
}

func (s *Store) signIn(ctx context.Context, identity Identity, token string) {
	s.mu.Lock()
	s.token, s.identity = token, identity
	err := s.json.WriteAll(ctx, map[string]any{
		common.TokenKey:    token,
		common.IdentityKey: identity,
	})
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "session not persisted", "error", err)
	}
	s.log.Info(ctx, "signed in", "user", identity.ID, "admin", identity.IsAdmin)
	s.publish(snap)
}

// Logout clears the session. Logging out while Anonymous is a no-op apart
// from removing any stored keys.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	was := s.token != ""
	s.token, s.identity = "", Identity{}
	err := s.json.Remove(ctx, common.TokenKey, common.IdentityKey)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "session removal not persisted", "error", err)
	}
	if was {
		s.publish(snap)
	}
}

// UpdateProfile merges patch into the current identity. It returns false
// when nobody is signed in.
func (s *Store) UpdateProfile(ctx context.Context, patch ProfilePatch) bool {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return false
	}
	s.identity = patch.apply(s.identity)
	err := s.json.Write(ctx, common.IdentityKey, s.identity)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "profile not persisted", "error", err)
	}
	s.publish(snap)
	return true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Authenticated: s.token != "", Identity: s.identity, Token: s.token}
}

func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().Authenticated
}

// Identity returns the signed-in identity, if any.
func (s *Store) Identity() (Identity, bool) {
	snap := s.Snapshot()
	return snap.Identity, snap.Authenticated
}

func (s *Store) Token() string {
	return s.Snapshot().Token
}

func (s *Store) IsAdmin() bool {
	snap := s.Snapshot()
	return snap.Authenticated && snap.Identity.IsAdmin
}

// Subscribe registers fn to receive a snapshot after every session change.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) publish(snap Snapshot) {
	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
