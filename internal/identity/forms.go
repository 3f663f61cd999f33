package identity

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate reports empty fields. Credential checks belong to the provider.
func (f LoginForm) Validate() error {
	if validate.Struct(trimmedLogin(f)) != nil {
		return &FormError{Message: "Please fill in all fields"}
	}
	return nil
}

func trimmedLogin(f LoginForm) LoginForm {
	return LoginForm{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

type ResetForm struct {
	Email string `json:"email" validate:"required"`
}

func (f ResetForm) Validate() error {
	if validate.Var(strings.TrimSpace(f.Email), "required") != nil {
		return &FormError{Message: "Please enter your email address"}
	}
	return nil
}

// PasswordSwitchForm moves an administrator from Google to password sign-in.
type PasswordSwitchForm struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f PasswordSwitchForm) Validate() error {
	switch {
	case f.NewPassword == "" || f.ConfirmPassword == "":
		return &FormError{Message: "Please fill both fields."}
	case f.NewPassword != f.ConfirmPassword:
		return &FormError{Message: "Passwords don't match."}
	case validate.Var(f.NewPassword, "min=6") != nil:
		return &FormError{Message: "Password must be at least 6 characters."}
	}
	return nil
}
