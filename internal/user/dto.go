// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type RegisterRequest struct {
	Firstname            string `json:"firstname" validate:"omitempty,max=100"`
	Lastname             string `json:"lastname" validate:"omitempty,max=100"`
	Email                string `json:"email" validate:"omitempty,email,max=255"`
	Password             string `json:"password" validate:"omitempty,min=8,max=128"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"omitempty,max=128"`
}

// MissingFields reports absent required fields in declaration order so the
// failure message is stable regardless of which subset is missing.
func (r *RegisterRequest) MissingFields() []string {
	var missing []string
	if r.Firstname == "" {
		missing = append(missing, "firstname")
	}
	if r.Lastname == "" {
		missing = append(missing, "lastname")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Password == "" {
		missing = append(missing, "password")
	}
	if r.PasswordConfirmation == "" {
		missing = append(missing, "passwordConfirmation")
	}
	return missing
}

type UserResponse struct {
	ID            string    `json:"id"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	GlobalRole    string    `json:"global_role"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		GlobalRole:    u.GlobalRole,
		CreatedAt:     u.CreatedAt,
	}
}

type ListUsersParams struct {
	Limit  int
	Offset int
}

type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
