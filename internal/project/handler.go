// AngelaMos | 2026
// handler.go

package project

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

// RegisterRoutes mounts the project surface. Every route here sits behind
// the session authenticator.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
			r.Put("/members/{userID}", h.SetMemberRole)
			r.Delete("/members/{userID}", h.RemoveMember)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "missing session")
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToProjectResponse(p))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "missing session")
		return
	}

	projects, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, projects)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal.ID == "" {
		core.Unauthorized(w, "missing session")
		return
	}
	projectID := chi.URLParam(r, "projectID")

	p, roster, err := h.service.Get(r.Context(), principal.ID, principal.GlobalRole, projectID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToProjectDetailResponse(p, roster))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal.ID == "" {
		core.Unauthorized(w, "missing session")
		return
	}
	projectID := chi.URLParam(r, "projectID")

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(r.Context(), principal.ID, principal.GlobalRole, projectID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToProjectResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal.ID == "" {
		core.Unauthorized(w, "missing session")
		return
	}
	projectID := chi.URLParam(r, "projectID")

	if err := h.service.Delete(r.Context(), principal.ID, principal.GlobalRole, projectID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SetMemberRole(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal.ID == "" {
		core.Unauthorized(w, "missing session")
		return
	}
	projectID := chi.URLParam(r, "projectID")
	targetUserID := chi.URLParam(r, "userID")

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.SetMemberRole(
		r.Context(), principal.ID, principal.GlobalRole, projectID, targetUserID, req.Role,
	); err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "Member role updated.")
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal.ID == "" {
		core.Unauthorized(w, "missing session")
		return
	}
	projectID := chi.URLParam(r, "projectID")
	targetUserID := chi.URLParam(r, "userID")

	if err := h.service.RemoveMember(
		r.Context(), principal.ID, principal.GlobalRole, projectID, targetUserID,
	); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
