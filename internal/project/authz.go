// AngelaMos | 2026
// authz.go

package project

import (
	"context"
	"errors"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/user"
)

// RosterLoader is the slice of the repository the authorizer reads.
type RosterLoader interface {
	GetWithRoster(ctx context.Context, projectID string) (*Project, []Membership, error)
}

// Authorizer decides whether a principal may act on a project. A global
// ADMIN passes every check. Everyone else needs a grant in the project
// satisfying one of the required roles. A missing project answers
// Forbidden, identical to a missing grant, so unauthorized callers cannot
// tell which projects exist.
type Authorizer struct {
	projects RosterLoader
}

func NewAuthorizer(projects RosterLoader) *Authorizer {
	return &Authorizer{projects: projects}
}

// Authorize returns nil when access is allowed. An empty required set
// grants access unconditionally, the same as a route with no role
// requirement attached.
func (a *Authorizer) Authorize(
	ctx context.Context,
	userID string,
	globalRole string,
	projectID string,
	required ...Role,
) error {
	if user.ParseGlobalRole(globalRole) == user.RoleAdmin {
		return nil
	}
	if len(required) == 0 {
		return nil
	}

	_, roster, err := a.projects.GetWithRoster(ctx, projectID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.ForbiddenError("")
		}
		return core.InternalError(err)
	}

	for _, m := range roster {
		if m.UserID != userID {
			continue
		}
		for _, req := range required {
			if m.Role.Satisfies(req) {
				return nil
			}
		}
	}
	return core.ForbiddenError("")
}
