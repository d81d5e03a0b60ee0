// AngelaMos | 2026
// service.go

package reset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/mailer"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/token"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/user"
)

// MsgResetRequested is returned for every reset request, match or not.
// The fixed wording and fixed status are what keep the endpoints useless
// for probing which emails are registered.
const (
	MsgResetRequested = "If a matching account exists, a password reset email has been sent."
	MsgPasswordReset  = "Your password has been reset."
)

// UserDirectory is the slice of the user service this package needs.
// FindByID returns (nil, nil) for an unknown id.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

type TokenSigner interface {
	Sign(claims token.Claims, purpose token.Purpose) (string, error)
	Verify(raw string, purpose token.Purpose) (*token.Claims, error)
}

type Service struct {
	repo     Repository
	users    UserDirectory
	signer   TokenSigner
	mailer   mailer.Mailer
	baseURL  string
	tokenTTL time.Duration
	logger   *slog.Logger

	now func() time.Time
}

func NewService(
	repo Repository,
	users UserDirectory,
	signer TokenSigner,
	m mailer.Mailer,
	baseURL string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		signer:   signer,
		mailer:   m,
		baseURL:  baseURL,
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateToken signs and persists a reset grant for the user. Existing
// grants are left alone; each is independently valid until it expires or
// is consumed.
func (s *Service) CreateToken(ctx context.Context, u *user.User) (string, error) {
	raw, err := s.signer.Sign(token.Claims{UserID: u.ID, Email: u.Email}, token.PurposeReset)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}

	now := s.now()
	t := &ResetToken{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		Token:     raw,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return "", err
	}
	return raw, nil
}

// FindByToken returns (nil, nil) when the token has no stored row.
func (s *Service) FindByToken(ctx context.Context, raw string) (*ResetToken, error) {
	t, err := s.repo.FindByToken(ctx, raw)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Validate is a pure check: the token exists and has not expired. It never
// consumes the token.
func (s *Service) Validate(ctx context.Context, raw string) (bool, error) {
	t, err := s.FindByToken(ctx, raw)
	if err != nil {
		return false, err
	}
	if t == nil || t.ExpiredAt(s.now()) {
		return false, nil
	}
	return true, nil
}

// Invalidate discards a token. Deleting one that is already gone is fine;
// two requests racing to consume the same token must both succeed here.
func (s *Service) Invalidate(ctx context.Context, raw string) error {
	_, err := s.repo.DeleteByToken(ctx, raw)
	return err
}

// SendResetEmail mails a reset link to an account picked by id. An unknown
// id yields the generic success message; only signing, storage or delivery
// failures for a real account surface as errors.
func (s *Service) SendResetEmail(ctx context.Context, userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", core.ValidationError("invalid user id")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", core.InternalError(err)
	}
	if u == nil {
		s.logger.Warn("reset requested for unknown user", "user_id", userID)
		return MsgResetRequested, nil
	}

	return s.issueAndSend(ctx, u)
}

// SendForgotEmail is the unauthenticated variant, keyed by email address.
func (s *Service) SendForgotEmail(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", core.ValidationError("email is required")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.logger.Warn("reset requested for unknown email", "email", email)
			return MsgResetRequested, nil
		}
		return "", core.InternalError(err)
	}

	return s.issueAndSend(ctx, u)
}

func (s *Service) issueAndSend(ctx context.Context, u *user.User) (string, error) {
	raw, err := s.CreateToken(ctx, u)
	if err != nil {
		return "", core.InternalError(err)
	}

	link := fmt.Sprintf("%s/auth/reset-password/%s/%s", s.baseURL, u.ID, raw)
	if err := s.mailer.SendPasswordReset(ctx, u.Email, u.Firstname, link); err != nil {
		s.logger.Error("reset email failed", "user_id", u.ID, "error", err)
		return "", core.UnavailableError(err, "password reset email could not be sent")
	}

	s.logger.Info("reset email sent", "user_id", u.ID)
	return MsgResetRequested, nil
}

// ResetPassword completes the flow: the link's user must exist, the token
// must be live and belong to that user, and the new password must be
// confirmed. An unknown user id still reads as success.
func (s *Service) ResetPassword(
	ctx context.Context,
	userID string,
	raw string,
	req ResetPasswordRequest,
) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", core.ValidationError("invalid user id")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", core.InternalError(err)
	}
	if u == nil {
		s.logger.Warn("password reset for unknown user", "user_id", userID)
		return MsgPasswordReset, nil
	}

	t, err := s.FindByToken(ctx, raw)
	if err != nil {
		return "", core.InternalError(err)
	}
	if t == nil || t.ExpiredAt(s.now()) || t.UserID != u.ID {
		s.logger.Warn("password reset token rejected", "user_id", userID)
		return "", core.BadTokenError()
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		return "", core.MissingFieldsError(missing)
	}
	if req.Password != req.PasswordConfirmation {
		return "", core.ValidationError("password confirmation does not match")
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return "", core.InternalError(fmt.Errorf("hash password: %w", err))
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return "", core.InternalError(err)
	}

	// Best effort: the password has already changed, and an unconsumed row
	// dies at its expires_at anyway.
	if err := s.Invalidate(ctx, raw); err != nil {
		s.logger.Error("consumed token cleanup failed", "user_id", u.ID, "error", err)
	}

	s.logger.Info("password reset", "user_id", u.ID)
	return MsgPasswordReset, nil
}

// DeleteExpired drops every token past its expiry. Called by the sweeper.
func (s *Service) DeleteExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx)
}
