// AngelaMos | 2026
// entity.go

package project

import (
	"time"
)

// Role is a per-project grant. OWNER outranks ADMIN outranks EDITOR
// outranks VIEWER. MEMBER is a legacy grant that sits outside the ladder:
// it only satisfies a check that names it explicitly.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
	RoleMember Role = "MEMBER"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleEditor, RoleViewer, RoleMember:
		return Role(s), true
	default:
		return "", false
	}
}

// Satisfies reports whether holding r meets the requirement req. Ranked
// roles satisfy anything at or below their rank; MEMBER only matches
// MEMBER.
func (r Role) Satisfies(req Role) bool {
	if r == req {
		return true
	}
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[req]
	if !ok {
		return false
	}
	return have >= want
}

type Project struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Membership struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ProjectID string    `db:"project_id"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
