// AngelaMos | 2026
// dto.go

package project

import (
	"time"
)

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=25"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=25"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type MemberRequest struct {
	Role string `json:"role" validate:"required,oneof=OWNER ADMIN EDITOR VIEWER MEMBER"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Members []MemberResponse `json:"members"`
}

// ProjectWithRole is a listing row: a project plus the caller's grant in it.
type ProjectWithRole struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Role        string    `db:"role" json:"role"`
}

func ToProjectResponse(p *Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func ToProjectDetailResponse(p *Project, roster []Membership) ProjectDetailResponse {
	resp := ProjectDetailResponse{
		ProjectResponse: ToProjectResponse(p),
		Members:         make([]MemberResponse, 0, len(roster)),
	}
	for _, m := range roster {
		resp.Members = append(resp.Members, MemberResponse{
			UserID: m.UserID,
			Role:   string(m.Role),
		})
	}
	return resp
}
