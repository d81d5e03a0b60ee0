// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
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

// RegisterRoutes mounts the public account lifecycle endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Get("/auth/verify-user/{userID}/{token}", h.Verify)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	// Presence is checked by the service so the error can list every
	// missing field at once; the struct rules only vet what was supplied.
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	msg, err := h.service.Register(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, http.StatusOK, msg)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	rawToken := chi.URLParam(r, "token")

	msg, err := h.service.Verify(r.Context(), userID, rawToken)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, http.StatusOK, msg)
}
