package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

const (
	sessionKey = "storefront_user"
	tokenKey   = "storefront_token"
)

var _ port.SessionRepository = (*SessionRepository)(nil)

type sessionRecord struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}

// SessionRepository persists the session record and the bearer token under
// separate keys, so either can be cleared alone.
type SessionRepository struct {
	db kvdb
}

func NewSessionRepository(db kvdb) SessionRepository {
	return SessionRepository{db}
}

// LoadSession reads the persisted identity. A record that no longer parses is
// discarded together with the token and reported as ErrCorruptState. A
// missing record is not an error; it yields the zero session.
func (r SessionRepository) LoadSession(ctx context.Context) (domain.Session, error) {
	const op = "SessionRepository.LoadSession"

	raw, ok, err := getValue(ctx, r.db, sessionKey)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.Session{}, nil
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		if clrErr := r.ClearSession(ctx); clrErr != nil {
			slog.With("op", op).Error("failed to discard corrupt session", "err", clrErr)
		}
		return domain.Session{}, fmt.Errorf("%s: %w: %w", op, ErrCorruptState, err)
	}

	token, _, err := getValue(ctx, r.db, tokenKey)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Session{
		User: domain.User{
			UserID: rec.UserID,
			Email:  rec.Email,
			Name:   rec.Name,
			Phone:  rec.Phone,
			Role:   domain.RoleFromBackend(rec.Role),
		},
		Token: token,
	}, nil
}

func (r SessionRepository) SaveSession(ctx context.Context, s domain.Session) error {
	const op = "SessionRepository.SaveSession"

	rec := sessionRecord{
		UserID: s.User.UserID,
		Email:  s.User.Email,
		Name:   s.User.Name,
		Phone:  s.User.Phone,
		Role:   string(s.User.Role),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := setValue(ctx, r.db, sessionKey, string(b)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := setValue(ctx, r.db, tokenKey, s.Token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r SessionRepository) ClearSession(ctx context.Context) error {
	const op = "SessionRepository.ClearSession"

	err := errors.Join(
		deleteValue(ctx, r.db, sessionKey),
		deleteValue(ctx, r.db, tokenKey),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
