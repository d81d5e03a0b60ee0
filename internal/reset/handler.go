// AngelaMos | 2026
// handler.go

package reset

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/forgot-password", h.ForgotPassword)
	r.Post("/auth/reset-password/{userID}/{token}", h.ResetPassword)
}

func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/reset-password", h.RequestReset)
}

// RequestReset mails a reset link to the logged-in user's own address.
func (h *Handler) RequestReset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "missing session")
		return
	}

	msg, err := h.service.SendResetEmail(r.Context(), userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, http.StatusOK, msg)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	msg, err := h.service.SendForgotEmail(r.Context(), req.Email)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, http.StatusOK, msg)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	rawToken := chi.URLParam(r, "token")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	msg, err := h.service.ResetPassword(r.Context(), userID, rawToken, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, http.StatusOK, msg)
}
