package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

// Navigation targets used across the client.
const (
	RouteHome   = "/"
	RouteLogin  = "/auth/login"
	RouteOrders = "/orders"
)

var _ port.SessionReader = (*Session)(nil)

// Session owns the authenticated identity. It is the single writer of session
// state; everything else reads through Current.
type Session struct {
	mu   sync.RWMutex
	cur  domain.Session
	auth port.AuthGateway
	repo port.SessionRepository
	nav  port.Navigator
}

// NewSession hydrates from the persisted session record. A corrupt record is
// cleared and the client starts unauthenticated.
func NewSession(
	ctx context.Context,
	auth port.AuthGateway,
	repo port.SessionRepository,
	nav port.Navigator,
) *Session {
	const op = "NewSession"
	log := slog.With("op", op)

	s := &Session{auth: auth, repo: repo, nav: nav}

	stored, err := repo.LoadSession(ctx)
	if err != nil {
		log.Warn("discarding unreadable session record", "err", err)
		if err := repo.ClearSession(ctx); err != nil {
			log.Error("failed to clear session record", "err", err)
		}
		return s
	}
	s.cur = stored
	return s
}

// Current returns the session and whether it holds a usable identity.
func (s *Session) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur, s.cur.Valid()
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *Session) HasRole(role domain.Role) bool {
	cur, ok := s.Current()
	return ok && cur.User.Role == role
}

// Login authenticates against the backend and persists the resulting session.
// Input is trimmed before it goes on the wire.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	const op = "Session.Login"

	creds.Email = strings.TrimSpace(creds.Email)
	creds.Password = strings.TrimSpace(creds.Password)

	sess, err := s.auth.Login(ctx, creds)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.install(ctx, sess)
	return sess.User, nil
}

// Signup registers a new account and persists the resulting session.
func (s *Session) Signup(ctx context.Context, data domain.SignupData) (domain.User, error) {
	const op = "Session.Signup"

	data.Email = strings.TrimSpace(data.Email)
	data.Name = strings.TrimSpace(data.Name)

	sess, err := s.auth.Register(ctx, data)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.install(ctx, sess)
	return sess.User, nil
}

func (s *Session) VerifyOTP(ctx context.Context, email, otp string) error {
	const op = "Session.VerifyOTP"
	if err := s.auth.VerifyOTP(ctx, strings.TrimSpace(email), strings.TrimSpace(otp)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Session) ResendOTP(ctx context.Context, email string) error {
	const op = "Session.ResendOTP"
	if err := s.auth.ResendOTP(ctx, strings.TrimSpace(email)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Logout clears the identity and returns to the login view.
func (s *Session) Logout(ctx context.Context) {
	s.clear(ctx)
	s.nav.NavigateTo(RouteLogin)
}

// HandleUnauthorized reacts to a 401 anywhere in the client: the session is
// gone, go sign in again.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	s.clear(ctx)
	s.nav.NavigateTo(RouteLogin)
}

// HandleForbidden reacts to a 403: identity is fine, the view is not allowed.
func (s *Session) HandleForbidden(context.Context) {
	s.nav.NavigateTo(RouteHome)
}

func (s *Session) install(ctx context.Context, sess domain.Session) {
	const op = "Session.install"

	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()

	if err := s.repo.SaveSession(ctx, sess); err != nil {
		slog.With("op", op).Error("failed to persist session", "err", err)
	}
}

func (s *Session) clear(ctx context.Context) {
	const op = "Session.clear"

	s.mu.Lock()
	s.cur = domain.Session{}
	s.mu.Unlock()

	if err := s.repo.ClearSession(ctx); err != nil {
		slog.With("op", op).Error("failed to clear session record", "err", err)
	}
}
