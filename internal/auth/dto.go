package auth

import (
	"strings"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/core/common/validation"
	"github.com/frahmantamala/salary-calculator/internal/user"
)

const MinPasswordLength = 4

// RegisterDTO is the sign-up form.
type RegisterDTO struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Role     user.Role `json:"role"`
}

// Normalize trims the text fields and defaults the role to individual.
// The password is kept as typed.
func (d RegisterDTO) Normalize() RegisterDTO {
	d.Username = strings.TrimSpace(d.Username)
	d.Name = strings.TrimSpace(d.Name)
	d.Surname = strings.TrimSpace(d.Surname)
	if d.Role == "" {
		d.Role = user.RoleIndividual
	}
	return d
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required().MinLength(MinPasswordLength, internal.ErrCodePasswordTooShort)
	v.Field("name", d.Name).Required()
	v.Field("surname", d.Surname).Required()
	v.Field("role", string(d.Role)).
		OneOf(internal.ErrCodeInvalidRole, string(user.RoleCompany), string(user.RoleIndividual))

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// LoginDTO is the sign-in form.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
