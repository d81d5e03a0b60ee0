// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/middleware"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
)

type Service struct {
	users    UserProvider
	sessions session.Store
	logger   *slog.Logger
}

var _ middleware.PrincipalResolver = (*Service)(nil)

func NewService(users UserProvider, sessions session.Store, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifies credentials and opens a session. Unknown email, backend
// lookup failure and wrong password all collapse into ErrInvalidCredentials;
// the dummy verification keeps the unknown-email path on the same bcrypt
// timing as a real mismatch.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*UserInfo, string, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logger.Error("login lookup failed", "error", err)
		}
		_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
		return nil, "", ErrInvalidCredentials
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &u.PasswordHash)
	if err != nil {
		s.logger.Error("password verification failed", "user_id", u.ID, "error", err)
		return nil, "", ErrInvalidCredentials
	}
	if !valid {
		s.logger.Warn("login rejected", "reason", "bad_password", "user_id", u.ID)
		return nil, "", ErrInvalidCredentials
	}

	if !u.EmailVerified {
		s.logger.Warn("login rejected", "reason", "unverified", "user_id", u.ID)
		return nil, "", ErrEmailNotVerified
	}

	sessionToken, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return u, sessionToken, nil
}

func (s *Service) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionToken)
}

// ResolvePrincipal turns a session token into the authenticated principal.
// A session pointing at a deleted account counts as an invalid session.
func (s *Service) ResolvePrincipal(ctx context.Context, sessionToken string) (*middleware.Principal, error) {
	userID, err := s.sessions.Resolve(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("session user %s gone: %w", userID, core.ErrUnauthorized)
		}
		return nil, err
	}

	return &middleware.Principal{ID: u.ID, GlobalRole: u.GlobalRole}, nil
}
