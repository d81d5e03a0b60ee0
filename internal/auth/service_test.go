// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
)

type fakeProvider struct {
	byID    map[string]*UserInfo
	byEmail map[string]*UserInfo
	err     error
}

func newFakeProvider(users ...*UserInfo) *fakeProvider {
	p := &fakeProvider{
		byID:    map[string]*UserInfo{},
		byEmail: map[string]*UserInfo{},
	}
	for _, u := range users {
		p.byID[u.ID] = u
		p.byEmail[u.Email] = u
	}
	return p
}

func (p *fakeProvider) GetByID(ctx context.Context, id string) (*UserInfo, error) {
	if p.err != nil {
		return nil, p.err
	}
	u, ok := p.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (p *fakeProvider) GetByEmail(ctx context.Context, email string) (*UserInfo, error) {
	if p.err != nil {
		return nil, p.err
	}
	u, ok := p.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	return u, nil
}

type fakeSessions struct {
	tokens    map[string]string
	createErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]string{}}
}

func (s *fakeSessions) Create(ctx context.Context, userID string) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	token := "session-for-" + userID
	s.tokens[token] = userID
	return token, nil
}

func (s *fakeSessions) Resolve(ctx context.Context, token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", fmt.Errorf("resolve session: %w", core.ErrUnauthorized)
	}
	return userID, nil
}

func (s *fakeSessions) Destroy(ctx context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func verifiedUser(t *testing.T) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword("open-sesame-42")
	require.NoError(t, err)
	return &UserInfo{
		ID:            "u1",
		Email:         "ada@example.com",
		Firstname:     "Ada",
		Lastname:      "Lovelace",
		PasswordHash:  hash,
		GlobalRole:    "REGULAR_USER",
		EmailVerified: true,
	}
}

func TestLogin_Success(t *testing.T) {
	u := verifiedUser(t)
	sessions := newFakeSessions()
	svc := NewService(newFakeProvider(u), sessions, slog.New(slog.DiscardHandler))

	got, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "open-sesame-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "u1", sessions.tokens[token])
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newFakeProvider(), newFakeSessions(), slog.New(slog.DiscardHandler))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(newFakeProvider(verifiedUser(t)), newFakeSessions(), slog.New(slog.DiscardHandler))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_LookupFailureReadsAsInvalidCredentials(t *testing.T) {
	provider := newFakeProvider()
	provider.err = errors.New("connection refused")
	svc := NewService(provider, newFakeSessions(), slog.New(slog.DiscardHandler))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "open-sesame-42",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	u := verifiedUser(t)
	u.EmailVerified = false
	svc := NewService(newFakeProvider(u), newFakeSessions(), slog.New(slog.DiscardHandler))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "open-sesame-42",
	})
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestResolvePrincipal(t *testing.T) {
	u := verifiedUser(t)
	sessions := newFakeSessions()
	svc := NewService(newFakeProvider(u), sessions, slog.New(slog.DiscardHandler))

	token, err := sessions.Create(context.Background(), "u1")
	require.NoError(t, err)

	principal, err := svc.ResolvePrincipal(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.ID)
	assert.Equal(t, "REGULAR_USER", principal.GlobalRole)
}

func TestResolvePrincipal_DeletedUser(t *testing.T) {
	sessions := newFakeSessions()
	svc := NewService(newFakeProvider(), sessions, slog.New(slog.DiscardHandler))

	// Session exists but the account behind it is gone.
	token, err := sessions.Create(context.Background(), "ghost")
	require.NoError(t, err)

	_, err = svc.ResolvePrincipal(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestResolvePrincipal_UnknownToken(t *testing.T) {
	svc := NewService(newFakeProvider(), newFakeSessions(), slog.New(slog.DiscardHandler))

	_, err := svc.ResolvePrincipal(context.Background(), "bogus")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	sessions := newFakeSessions()
	svc := NewService(newFakeProvider(), sessions, slog.New(slog.DiscardHandler))

	token, err := sessions.Create(context.Background(), "u1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Empty(t, sessions.tokens)

	// Empty token is a no-op, not an error.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
