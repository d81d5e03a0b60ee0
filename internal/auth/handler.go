// AngelaMos | 2026
// handler.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/config"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/middleware"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/session"
)

// AccountCloser deletes an account permanently. Implemented by the user
// service; declared here so the handler can close accounts without a
// package dependency on it.
type AccountCloser interface {
	Delete(ctx context.Context, id string) (string, error)
}

type Handler struct {
	service    *Service
	accounts   AccountCloser
	sessionCfg config.SessionConfig
	validate   *validator.Validate
}

func NewHandler(service *Service, accounts AccountCloser, sessionCfg config.SessionConfig) *Handler {
	return &Handler{
		service:    service,
		accounts:   accounts,
		sessionCfg: sessionCfg,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.Logout)
	r.Delete("/auth/account", h.DeleteAccount)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, sessionToken, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			core.Unauthorized(w, "invalid credentials")
		case errors.Is(err, ErrEmailNotVerified):
			core.Unauthorized(w, "email not verified")
		default:
			core.JSONError(w, err)
		}
		return
	}

	h.setSessionCookie(w, sessionToken)
	core.Message(w, http.StatusCreated, fmt.Sprintf("Welcome back, %s %s!", u.Firstname, u.Lastname))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			core.JSONError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	core.Message(w, http.StatusOK, "Logged out.")
}

// DeleteAccount removes the authenticated user's own account, then ends
// the session that authorized the call.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "missing session")
		return
	}

	msg, err := h.accounts.Delete(r.Context(), userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if cookie, err := r.Cookie(session.CookieName); err == nil {
		//nolint:errcheck // account is already gone, session expiry will catch stragglers
		_ = h.service.Logout(r.Context(), cookie.Value)
	}
	h.clearSessionCookie(w)

	core.Message(w, http.StatusOK, msg)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionCfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.sessionCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.sessionCfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
