// AngelaMos | 2026
// handler_test.go

package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/token"
)

func newTestRouter(svc *Service) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint_Success(t *testing.T) {
	router := newTestRouter(newTestService(newFakeRepo(), &fakeSigner{}, &fakeMailer{}))

	rec := postJSON(t, router, "/auth/register", `{
		"firstname": "James",
		"lastname": "Smith",
		"email": "james.smith@example.com",
		"password": "engine-room-9",
		"passwordConfirmation": "engine-room-9"
	}`)

	// Registration acknowledges with 200: the account is pending until the
	// verification link is followed, so nothing addressable was created yet.
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		StatusCode int    `json:"status_code"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.StatusCode)
	assert.Equal(t, MsgRegistered, body.Message)
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	router := newTestRouter(newTestService(newFakeRepo(), &fakeSigner{}, &fakeMailer{}))

	rec := postJSON(t, router, "/auth/register", `{"lastname": "Lovelace"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_FIELDS")
	assert.Contains(t, rec.Body.String(), "firstname, email, password, passwordConfirmation")
}

func TestRegisterEndpoint_MalformedBody(t *testing.T) {
	router := newTestRouter(newTestService(newFakeRepo(), &fakeSigner{}, &fakeMailer{}))

	rec := postJSON(t, router, "/auth/register", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	repo.add(&User{ID: uuid.New().String(), Email: "ada@example.com"})
	router := newTestRouter(newTestService(repo, &fakeSigner{}, &fakeMailer{}))

	rec := postJSON(t, router, "/auth/register", `{
		"firstname": "Ada",
		"lastname": "Lovelace",
		"email": "ada@example.com",
		"password": "engine-room-9",
		"passwordConfirmation": "engine-room-9"
	}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_ALREADY_REGISTERED")
}

func TestVerifyEndpoint(t *testing.T) {
	repo := newFakeRepo()
	id := uuid.New().String()
	repo.add(&User{ID: id, Email: "ada@example.com"})
	signer := &fakeSigner{claims: &token.Claims{UserID: id}}
	router := newTestRouter(newTestService(repo, signer, &fakeMailer{}))

	req := httptest.NewRequest(http.MethodGet, "/auth/verify-user/"+id+"/some-token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgVerified)
	assert.True(t, repo.byID[id].EmailVerified)
}
