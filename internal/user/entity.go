// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// GlobalRole is the account-wide privilege tier. Unknown values read from
// storage map to RoleUnrecognized so newer role names degrade to "no
// privilege" instead of failing loads.
type GlobalRole string

const (
	RoleRegularUser  GlobalRole = "REGULAR_USER"
	RoleAdmin        GlobalRole = "ADMIN"
	RoleUnrecognized GlobalRole = "UNRECOGNIZED"
)

func ParseGlobalRole(s string) GlobalRole {
	switch GlobalRole(s) {
	case RoleRegularUser:
		return RoleRegularUser
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnrecognized
	}
}

type User struct {
	ID            string    `db:"id"`
	Firstname     string    `db:"firstname"`
	Lastname      string    `db:"lastname"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	EmailVerified bool      `db:"email_verified"`
	GlobalRole    string    `db:"global_role"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (u *User) Role() GlobalRole {
	return ParseGlobalRole(u.GlobalRole)
}

func (u *User) IsAdmin() bool {
	return u.Role() == RoleAdmin
}

func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
