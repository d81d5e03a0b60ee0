// AngelaMos | 2026
// provider.go

package auth

import (
	"context"
)

// UserInfo is the account snapshot login and session resolution work with.
// The user package implements UserProvider; defining the shape here keeps
// the dependency pointing in one direction.
type UserInfo struct {
	ID            string
	Email         string
	Firstname     string
	Lastname      string
	PasswordHash  string
	GlobalRole    string
	EmailVerified bool
}

// UserProvider returns core.ErrNotFound (wrapped) when no account matches.
type UserProvider interface {
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
}
