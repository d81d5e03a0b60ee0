// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/auth"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/mailer"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/token"
)

// Outcome messages are fixed strings. Verification in particular answers
// identically whether or not the account exists, so the endpoint cannot be
// used to probe for registered ids.
const (
	MsgRegistered = "Registration successful. Check your email to verify your account."
	MsgVerified   = "Account verified. You can now log in."
	MsgDeleted    = "Account deleted."
)

// TokenSigner is the slice of the token package this service needs.
type TokenSigner interface {
	Sign(claims token.Claims, purpose token.Purpose) (string, error)
	Verify(raw string, purpose token.Purpose) (*token.Claims, error)
}

type Service struct {
	repo    Repository
	signer  TokenSigner
	mailer  mailer.Mailer
	baseURL string
	logger  *slog.Logger
}

var _ auth.UserProvider = (*Service)(nil)

func NewService(
	repo Repository,
	signer TokenSigner,
	m mailer.Mailer,
	baseURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:    repo,
		signer:  signer,
		mailer:  m,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Register creates an unverified account and emails a verification link.
// The account row survives a failed email send; the caller gets a 503 and
// can retry delivery without re-registering.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		s.logger.Warn("registration rejected",
			"reason", "missing_fields",
			"fields", missing,
			"email", req.Email,
		)
		return "", core.MissingFieldsError(missing)
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", core.InternalError(fmt.Errorf("check email: %w", err))
	}
	if exists {
		s.logger.Warn("registration rejected",
			"reason", "email_taken",
			"email", req.Email,
		)
		return "", core.EmailRegisteredError()
	}

	if req.Password != req.PasswordConfirmation {
		s.logger.Warn("registration rejected",
			"reason", "password_mismatch",
			"email", req.Email,
		)
		return "", core.ValidationError("password confirmation does not match")
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return "", core.InternalError(fmt.Errorf("hash password: %w", err))
	}

	u := &User{
		ID:            uuid.New().String(),
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Email:         req.Email,
		PasswordHash:  hash,
		EmailVerified: false,
		GlobalRole:    string(RoleRegularUser),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return "", core.EmailRegisteredError()
		}
		return "", core.InternalError(err)
	}

	verifyToken, err := s.signer.Sign(token.Claims{UserID: u.ID, Email: u.Email}, token.PurposeVerify)
	if err != nil {
		return "", core.InternalError(fmt.Errorf("sign verification token: %w", err))
	}

	link := fmt.Sprintf("%s/auth/verify-user/%s/%s", s.baseURL, u.ID, verifyToken)
	if err := s.mailer.SendVerification(ctx, u.Email, u.Firstname, link); err != nil {
		s.logger.Error("verification email failed",
			"user_id", u.ID,
			"error", err,
		)
		return "", core.UnavailableError(err, "account created but the verification email could not be sent")
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	return MsgRegistered, nil
}

// Verify consumes an email verification link. Already-verified accounts and
// unknown ids both get the success message; only a malformed id or a token
// that fails validation for an existing account produce an error.
func (s *Service) Verify(ctx context.Context, userID string, rawToken string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", core.ValidationError("invalid user id")
	}

	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return "", core.InternalError(err)
	}
	if u == nil {
		s.logger.Warn("verification for unknown user", "user_id", userID)
		return MsgVerified, nil
	}

	claims, err := s.signer.Verify(rawToken, token.PurposeVerify)
	if err != nil {
		s.logger.Warn("verification token rejected", "user_id", userID, "error", err)
		return "", core.BadTokenError()
	}
	if claims.UserID != u.ID {
		s.logger.Warn("verification token subject mismatch", "user_id", userID)
		return "", core.BadTokenError()
	}

	if u.EmailVerified {
		return MsgVerified, nil
	}

	if err := s.repo.MarkVerified(ctx, u.ID); err != nil {
		// Row deleted between load and update collapses into the generic
		// success, same as a lookup miss.
		if errors.Is(err, core.ErrNotFound) {
			return MsgVerified, nil
		}
		return "", core.InternalError(err)
	}

	s.logger.Info("user verified", "user_id", u.ID)
	return MsgVerified, nil
}

// FindByID returns (nil, nil) when no such user exists. Callers that need
// an anti-enumeration branch test for nil instead of unwrapping errors.
func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("user")
		}
		return nil, core.InternalError(err)
	}
	return u, nil
}

func (s *Service) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", core.ValidationError("invalid user id")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", core.NotFoundError("user")
		}
		return "", core.InternalError(err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return MsgDeleted, nil
}

func (s *Service) List(ctx context.Context, params ListUsersParams) (*ListUsersResponse, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, core.InternalError(err)
	}

	resp := &ListUsersResponse{
		Users:  make([]UserResponse, 0, len(users)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for i := range users {
		resp.Users = append(resp.Users, ToUserResponse(&users[i]))
	}
	return resp, nil
}

// GetByID and GetByEmail adapt the entity to the shape the auth package
// consumes, keeping that package free of a dependency on this one.
func (s *Service) GetByID(ctx context.Context, id string) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.UserInfo, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:            u.ID,
		Email:         u.Email,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		PasswordHash:  u.PasswordHash,
		GlobalRole:    u.GlobalRole,
		EmailVerified: u.EmailVerified,
	}
}
