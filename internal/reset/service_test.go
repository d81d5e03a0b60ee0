// AngelaMos | 2026
// service_test.go

package reset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/token"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/user"
)

type fakeTokenRepo struct {
	byToken   map[string]*ResetToken
	createErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byToken: map[string]*ResetToken{}}
}

func (f *fakeTokenRepo) Create(ctx context.Context, t *ResetToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byToken[t.Token] = t
	return nil
}

func (f *fakeTokenRepo) FindByToken(ctx context.Context, raw string) (*ResetToken, error) {
	t, ok := f.byToken[raw]
	if !ok {
		return nil, fmt.Errorf("find reset token: %w", core.ErrNotFound)
	}
	return t, nil
}

func (f *fakeTokenRepo) DeleteByToken(ctx context.Context, raw string) (int64, error) {
	if _, ok := f.byToken[raw]; !ok {
		return 0, nil
	}
	delete(f.byToken, raw)
	return 1, nil
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var n int64
	for raw, t := range f.byToken {
		if t.ExpiredAt(time.Now()) {
			delete(f.byToken, raw)
			n++
		}
	}
	return n, nil
}

type fakeDirectory struct {
	byID      map[string]*user.User
	byEmail   map[string]*user.User
	passwords map[string]string
	updateErr error
}

func newFakeDirectory(users ...*user.User) *fakeDirectory {
	d := &fakeDirectory{
		byID:      map[string]*user.User{},
		byEmail:   map[string]*user.User{},
		passwords: map[string]string{},
	}
	for _, u := range users {
		d.byID[u.ID] = u
		d.byEmail[u.Email] = u
	}
	return d
}

func (d *fakeDirectory) FindByID(ctx context.Context, id string) (*user.User, error) {
	return d.byID[id], nil
}

func (d *fakeDirectory) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := d.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	return u, nil
}

func (d *fakeDirectory) UpdatePassword(ctx context.Context, id, hash string) error {
	if d.updateErr != nil {
		return d.updateErr
	}
	d.passwords[id] = hash
	return nil
}

type fakeSigner struct {
	signErr error
	counter int
}

func (f *fakeSigner) Sign(claims token.Claims, purpose token.Purpose) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.counter++
	return fmt.Sprintf("reset-token-%d-%s", f.counter, claims.UserID), nil
}

func (f *fakeSigner) Verify(raw string, purpose token.Purpose) (*token.Claims, error) {
	return nil, core.ErrTokenInvalid
}

type fakeMailer struct {
	sendErr error
	sent    int
	lastTo  string
}

func (f *fakeMailer) SendVerification(ctx context.Context, to, name, link string) error {
	return nil
}

func (f *fakeMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent++
	f.lastTo = to
	return nil
}

type fixture struct {
	svc    *Service
	repo   *fakeTokenRepo
	dir    *fakeDirectory
	mailer *fakeMailer
	now    time.Time
	user   *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	u := &user.User{
		ID:        uuid.New().String(),
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     "ada@example.com",
	}
	repo := newFakeTokenRepo()
	dir := newFakeDirectory(u)
	m := &fakeMailer{}
	svc := NewService(
		repo, dir, &fakeSigner{}, m,
		"https://app.example.com", time.Hour,
		slog.New(slog.DiscardHandler),
	)

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &fixture{svc: svc, repo: repo, dir: dir, mailer: m, now: now, user: u}
}

func (f *fixture) issueToken(t *testing.T) string {
	t.Helper()

	raw, err := f.svc.CreateToken(context.Background(), f.user)
	require.NoError(t, err)
	return raw
}

func TestCreateToken_ExpiresInOneHour(t *testing.T) {
	f := newFixture(t)

	raw := f.issueToken(t)

	stored := f.repo.byToken[raw]
	require.NotNil(t, stored)
	assert.Equal(t, f.user.ID, stored.UserID)
	assert.Equal(t, f.now.Add(time.Hour), stored.ExpiresAt)
}

func TestCreateToken_MultipleOutstanding(t *testing.T) {
	f := newFixture(t)

	first := f.issueToken(t)
	second := f.issueToken(t)

	// Issuing a new token does not revoke the previous one.
	assert.NotEqual(t, first, second)
	assert.Len(t, f.repo.byToken, 2)
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	raw := f.issueToken(t)

	ok, err := f.svc.Validate(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.Validate(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidate_Expired(t *testing.T) {
	f := newFixture(t)
	raw := f.issueToken(t)

	f.svc.now = func() time.Time { return f.now.Add(time.Hour + time.Second) }

	ok, err := f.svc.Validate(context.Background(), raw)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidate_ToleratesMissing(t *testing.T) {
	f := newFixture(t)

	assert.NoError(t, f.svc.Invalidate(context.Background(), "never-existed"))
}

func TestSendResetEmail_GenericMessageForUnknownUser(t *testing.T) {
	f := newFixture(t)

	msg, err := f.svc.SendResetEmail(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Equal(t, MsgResetRequested, msg)
	assert.Zero(t, f.mailer.sent)
}

func TestSendResetEmail_Match(t *testing.T) {
	f := newFixture(t)

	msg, err := f.svc.SendResetEmail(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgResetRequested, msg)
	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, "ada@example.com", f.mailer.lastTo)
	assert.Len(t, f.repo.byToken, 1)
}

func TestSendForgotEmail_SameMessageEitherWay(t *testing.T) {
	f := newFixture(t)

	matched, err := f.svc.SendForgotEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)

	missed, err := f.svc.SendForgotEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)

	assert.Equal(t, matched, missed)
	assert.Equal(t, 1, f.mailer.sent)
}

func TestSendResetEmail_MailerDown(t *testing.T) {
	f := newFixture(t)
	f.mailer.sendErr = errors.New("smtp refused")

	_, err := f.svc.SendResetEmail(context.Background(), f.user.ID)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
}

func TestResetPassword_FullFlow(t *testing.T) {
	f := newFixture(t)
	raw := f.issueToken(t)

	msg, err := f.svc.ResetPassword(context.Background(), f.user.ID, raw, ResetPasswordRequest{
		Password:             "new-password-99",
		PasswordConfirmation: "new-password-99",
	})
	require.NoError(t, err)
	assert.Equal(t, MsgPasswordReset, msg)

	// Password stored hashed, token consumed.
	hash := f.dir.passwords[f.user.ID]
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "new-password-99", hash)
	assert.Empty(t, f.repo.byToken)
}

func TestResetPassword_UnknownUserLooksLikeSuccess(t *testing.T) {
	f := newFixture(t)

	msg, err := f.svc.ResetPassword(context.Background(), uuid.New().String(), "tok", ResetPasswordRequest{
		Password:             "x12345678",
		PasswordConfirmation: "x12345678",
	})
	require.NoError(t, err)
	assert.Equal(t, MsgPasswordReset, msg)
	assert.Empty(t, f.dir.passwords)
}

func TestResetPassword_BadToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResetPassword(context.Background(), f.user.ID, "forged", ResetPasswordRequest{
		Password:             "x12345678",
		PasswordConfirmation: "x12345678",
	})

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "BAD_TOKEN", appErr.Code)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	raw := f.issueToken(t)

	f.svc.now = func() time.Time { return f.now.Add(2 * time.Hour) }

	_, err := f.svc.ResetPassword(context.Background(), f.user.ID, raw, ResetPasswordRequest{
		Password:             "x12345678",
		PasswordConfirmation: "x12345678",
	})

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "BAD_TOKEN", appErr.Code)
}

func TestResetPassword_ForeignToken(t *testing.T) {
	f := newFixture(t)

	other := &user.User{ID: uuid.New().String(), Email: "eve@example.com"}
	f.dir.byID[other.ID] = other
	f.dir.byEmail[other.Email] = other

	raw, err := f.svc.CreateToken(context.Background(), other)
	require.NoError(t, err)

	_, err = f.svc.ResetPassword(context.Background(), f.user.ID, raw, ResetPasswordRequest{
		Password:             "x12345678",
		PasswordConfirmation: "x12345678",
	})

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "BAD_TOKEN", appErr.Code)
}

func TestResetPassword_ConfirmationMismatch(t *testing.T) {
	f := newFixture(t)
	raw := f.issueToken(t)

	_, err := f.svc.ResetPassword(context.Background(), f.user.ID, raw, ResetPasswordRequest{
		Password:             "x12345678",
		PasswordConfirmation: "different",
	})

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	// Token survives a failed attempt.
	assert.Len(t, f.repo.byToken, 1)
}

func TestResetPassword_MissingFields(t *testing.T) {
	f := newFixture(t)
	raw := f.issueToken(t)

	_, err := f.svc.ResetPassword(context.Background(), f.user.ID, raw, ResetPasswordRequest{})

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "MISSING_FIELDS", appErr.Code)
	assert.Equal(t, "missing required fields: password, passwordConfirmation", appErr.Message)
}
