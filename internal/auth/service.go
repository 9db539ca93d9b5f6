package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service signs users in and out and resolves session cookies.
type Service struct {
	provider Provider
	store    Store
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(provider Provider, store Store, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Login authenticates the credentials and opens a session. The session never
// outlives the ID token it was created from.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	tokens, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, exp, err := ParseIDToken(tokens.IDToken)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expires := now.Add(s.ttl)
	if !exp.IsZero() && exp.Before(expires) {
		expires = exp
	}
	sess := &Session{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(user.Role),
		AccessToken: tokens.AccessToken,
		IDToken:     tokens.IDToken,
		ExpiresAt:   expires,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("auth: create session: %w", err)
	}
	s.logger.InfoContext(ctx, "login", slog.String("user_id", user.ID), slog.String("role", sess.Role))
	return sess, nil
}

// Logout ends the session; unknown sessions are not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	sess, err := s.store.Get(ctx, sessionID, s.now())
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	if sess != nil {
		if err := s.provider.SignOut(ctx, sess.AccessToken); err != nil {
			s.logger.WarnContext(ctx, "provider_sign_out_failed", slog.String("err", err.Error()))
		}
	}
	return s.store.Delete(ctx, sessionID)
}

// Resolve returns the live session for id.
func (s *Service) Resolve(ctx context.Context, sessionID string) (*Session, bool) {
	if sessionID == "" {
		return nil, false
	}
	sess, err := s.store.Get(ctx, sessionID, s.now())
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			s.logger.WarnContext(ctx, "session_lookup_failed", slog.String("err", err.Error()))
		}
		return nil, false
	}
	return sess, true
}

// TTL is the configured maximum session lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }
