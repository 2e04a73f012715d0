// Package session owns the credential lifecycle: restoring a persisted token
// at startup, logging in or registering, and logging out.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"

	"github.com/desertthunder/listenr/internal/models"
	"github.com/desertthunder/listenr/internal/shared"
)

// AuthAPI is the part of the backend the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// TokenStore persists the credential token. Load returns "" when none is
// stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Identity is an authenticated user.
type Identity struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
	Bio       string
	IsAdmin   bool
}

func identityFrom(u *models.User) *Identity {
	return &Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Bio:       u.Bio,
		IsAdmin:   u.IsAdmin,
	}
}

// Session is a snapshot of the authentication state. A nil Identity is
// anonymous.
type Session struct {
	Identity *Identity
	Token    string
	Loading  bool
}

// Authenticated reports whether an identity is resolved.
func (s Session) Authenticated() bool {
	return s.Identity != nil
}

// Username returns the authenticated username, or "" for guests.
func (s Session) Username() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Username
}

// Store is the single session of the process.
type Store struct {
	api    AuthAPI
	tokens TokenStore
	logger *log.Logger
	now    func() time.Time

	mu        sync.Mutex
	session   Session
	observers []func(Session)
}

// New creates a store in the loading state. Call [Store.Restore] next.
func New(api AuthAPI, tokens TokenStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		api:     api,
		tokens:  tokens,
		logger:  logger,
		now:     time.Now,
		session: Session{Loading: true},
	}
}

// Session returns the current snapshot.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Token returns the current credential token, "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Token
}

// Subscribe registers fn to receive every new snapshot.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Restore resolves the persisted token, if any. Failures are not reported:
// the token is dropped and the session becomes anonymous. The returned error
// is only for a token store that cannot be read.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.resolve(nil, "")
		return fmt.Errorf("failed to load token: %w", err)
	}
	if token == "" {
		s.resolve(nil, "")
		return nil
	}

	if expired(token, s.now()) {
		s.logger.Debug("persisted token expired")
		s.discard(ctx)
		return nil
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		s.logger.Debug("persisted token rejected", "err", err)
		s.discard(ctx)
		return nil
	}

	s.resolve(identityFrom(user), token)
	return nil
}

// Login exchanges credentials for a token and resolves it. On failure the
// session is unchanged and the error carries the server's message.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(ctx, token)
}

// Register creates an account, then behaves like [Store.Login].
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	token, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	return s.adopt(ctx, token)
}

// Logout forgets the token and becomes anonymous. It makes no network call.
func (s *Store) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	s.resolve(nil, "")
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// adopt persists token only once it resolves to an identity, so a failed
// sign-in leaves the stored credential alone.
func (s *Store) adopt(ctx context.Context, token string) error {
	user, err := s.api.Me(ctx, token)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	s.resolve(identityFrom(user), token)
	return nil
}

func (s *Store) discard(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear token", "err", err)
	}
	s.resolve(nil, "")
}

// resolve installs a settled session and notifies observers outside the lock.
func (s *Store) resolve(id *Identity, token string) {
	s.mu.Lock()
	s.session = Session{Identity: id, Token: token}
	snapshot := s.session
	observers := append([]func(Session){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// expired reports whether token is a JWT whose exp has passed. Tokens that
// are not JWTs or carry no exp are left for the server to judge.
func expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// Require returns the identity or [shared.ErrNotAuthenticated].
func (s *Store) Require() (*Identity, error) {
	sess := s.Session()
	if !sess.Authenticated() {
		return nil, shared.ErrNotAuthenticated
	}
	return sess.Identity, nil
}
