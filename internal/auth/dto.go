// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/go-playground/validator/v10"

	"github.com/lalonstore/lalon-store-api/internal/user"
)

// Signup and login accept either an email or a Bangladeshi phone number
// as the account identifier; at least one must be present.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=150"`
	LastName  string `json:"lastName"  validate:"required,min=1,max=150"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Phone     string `json:"phone"     validate:"omitempty,bd_phone"`
	Address   string `json:"address"   validate:"omitempty,max=500"`
	Password  string `json:"password"  validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Phone    string `json:"phone"    validate:"omitempty,bd_phone"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginData struct {
	User        *user.User `json:"user"`
	AccessToken string     `json:"accessToken"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	//nolint:errcheck // tag name is a compile-time constant
	_ = v.RegisterValidation("bd_phone", user.ValidBDPhone)
	v.RegisterStructValidation(
		requireEmailOrPhone,
		SignupRequest{},
		LoginRequest{},
	)
	return v
}

// requireEmailOrPhone flags both identifier fields when neither is
// present, so the response names each one.
func requireEmailOrPhone(sl validator.StructLevel) {
	switch req := sl.Current().Interface().(type) {
	case SignupRequest:
		if req.Email == "" && req.Phone == "" {
			sl.ReportError(req.Email, "email", "Email", "email_or_phone", "")
			sl.ReportError(req.Phone, "phone", "Phone", "email_or_phone", "")
		}
	case LoginRequest:
		if req.Email == "" && req.Phone == "" {
			sl.ReportError(req.Email, "email", "Email", "email_or_phone", "")
			sl.ReportError(req.Phone, "phone", "Phone", "email_or_phone", "")
		}
	}
}
