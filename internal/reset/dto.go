// AngelaMos | 2026
// dto.go

package reset

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password             string `json:"password" validate:"omitempty,min=8,max=128"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"omitempty,max=128"`
}

func (r *ResetPasswordRequest) MissingFields() []string {
	var missing []string
	if r.Password == "" {
		missing = append(missing, "password")
	}
	if r.PasswordConfirmation == "" {
		missing = append(missing, "passwordConfirmation")
	}
	return missing
}
