// AngelaMos | 2026
// service.go

package project

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
)

// Role sets for the standard checks. Read access takes any grant including
// legacy MEMBER rows; management needs ADMIN, which OWNER outranks.
var (
	RolesRead   = []Role{RoleViewer, RoleMember}
	RolesManage = []Role{RoleAdmin}
)

type Service struct {
	repo   Repository
	authz  *Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *Authorizer, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		authz:  authz,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateProjectRequest) (*Project, error) {
	if req.Name == "" {
		return nil, core.MissingFieldsError([]string{"name"})
	}
	if len(req.Name) > 25 {
		return nil, core.ValidationError("name must be at most 25 characters")
	}
	if len(req.Description) > 500 {
		return nil, core.ValidationError("description must be at most 500 characters")
	}

	p := &Project{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateWithOwner(ctx, p, ownerID); err != nil {
		return nil, core.InternalError(err)
	}

	s.logger.Info("project created", "project_id", p.ID, "owner_id", ownerID)
	return p, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID string,
	globalRole string,
	projectID string,
) (*Project, []Membership, error) {
	if err := s.authz.Authorize(ctx, userID, globalRole, projectID, RolesRead...); err != nil {
		return nil, nil, err
	}

	p, roster, err := s.repo.GetWithRoster(ctx, projectID)
	if err != nil {
		// Only reachable by a global ADMIN; members always passed the
		// roster load inside Authorize.
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil, core.NotFoundError("project")
		}
		return nil, nil, core.InternalError(err)
	}
	return p, roster, nil
}

func (s *Service) Update(
	ctx context.Context,
	userID string,
	globalRole string,
	projectID string,
	req UpdateProjectRequest,
) (*Project, error) {
	if err := s.authz.Authorize(ctx, userID, globalRole, projectID, RolesManage...); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("project")
		}
		return nil, core.InternalError(err)
	}

	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > 25 {
			return nil, core.ValidationError("name must be between 1 and 25 characters")
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		if len(*req.Description) > 500 {
			return nil, core.ValidationError("description must be at most 500 characters")
		}
		p.Description = *req.Description
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.NotFoundError("project")
		}
		return nil, core.InternalError(err)
	}

	s.logger.Info("project updated", "project_id", p.ID, "user_id", userID)
	return p, nil
}

func (s *Service) Delete(
	ctx context.Context,
	userID string,
	globalRole string,
	projectID string,
) error {
	if err := s.authz.Authorize(ctx, userID, globalRole, projectID, RolesManage...); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("project")
		}
		return core.InternalError(err)
	}

	s.logger.Info("project deleted", "project_id", projectID, "user_id", userID)
	return nil
}

// ListMine returns the caller's own projects. No authorization check:
// the membership join is the filter.
func (s *Service) ListMine(ctx context.Context, userID string) ([]ProjectWithRole, error) {
	projects, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, core.InternalError(err)
	}
	return projects, nil
}

// SetMemberRole grants or changes a member's role in the project.
func (s *Service) SetMemberRole(
	ctx context.Context,
	userID string,
	globalRole string,
	projectID string,
	targetUserID string,
	roleName string,
) error {
	if err := s.authz.Authorize(ctx, userID, globalRole, projectID, RolesManage...); err != nil {
		return err
	}

	role, ok := ParseRole(roleName)
	if !ok {
		return core.ValidationError("unknown role: " + roleName)
	}
	if _, err := uuid.Parse(targetUserID); err != nil {
		return core.ValidationError("invalid user id")
	}

	if err := s.repo.UpsertMember(ctx, projectID, targetUserID, role); err != nil {
		return core.InternalError(err)
	}

	s.logger.Info("member role set",
		"project_id", projectID,
		"target_user_id", targetUserID,
		"role", role,
		"user_id", userID,
	)
	return nil
}

func (s *Service) RemoveMember(
	ctx context.Context,
	userID string,
	globalRole string,
	projectID string,
	targetUserID string,
) error {
	if err := s.authz.Authorize(ctx, userID, globalRole, projectID, RolesManage...); err != nil {
		return err
	}

	if err := s.repo.RemoveMember(ctx, projectID, targetUserID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("membership")
		}
		return core.InternalError(err)
	}

	s.logger.Info("member removed",
		"project_id", projectID,
		"target_user_id", targetUserID,
		"user_id", userID,
	)
	return nil
}
