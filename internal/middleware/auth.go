// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/session"
)

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
)

// Principal is the authenticated caller handed to downstream components:
// the minimum identity the guards need for their decisions.
type Principal struct {
	ID         string
	GlobalRole string
}

// PrincipalResolver turns a session token into a live Principal. Resolution
// happens on every request so revoked accounts drop out immediately.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*Principal, error)
}

// Authenticator is the session gate: it short-circuits with 401 before any
// protected handler runs. Authorization (per-project roles) happens later,
// in the handlers, with the principal this gate injects.
func Authenticator(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				core.JSONError(w, core.UnauthorizedError("missing session"))
				return
			}

			principal, err := resolver.ResolvePrincipal(r.Context(), cookie.Value)
			if err != nil {
				// Only a rejected token is the caller's fault; a store
				// outage must not masquerade as a logged-out session.
				if errors.Is(err, core.ErrUnauthorized) {
					core.JSONError(w, core.UnauthorizedError("invalid session"))
					return
				}
				core.JSONError(w, core.InternalError(err))
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDKey, principal.ID)
			ctx = context.WithValue(ctx, UserRoleKey, principal.GlobalRole)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetUserRole(r.Context())

			if userRole == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[userRole]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole("ADMIN")(next)
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetUserRole(ctx context.Context) string {
	if role, ok := ctx.Value(UserRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetPrincipal(ctx context.Context) Principal {
	return Principal{
		ID:         GetUserID(ctx),
		GlobalRole: GetUserRole(ctx),
	}
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == "ADMIN"
}
