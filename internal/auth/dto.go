package auth

import (
	"strings"

	"github.com/frahmantamala/hrconsole/internal/core/common/validation"
)

// CredentialsDTO is the body of both login and register requests.
type CredentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims both fields.
func (d CredentialsDTO) Normalize() CredentialsDTO {
	return CredentialsDTO{
		Email:    strings.TrimSpace(d.Email),
		Password: strings.TrimSpace(d.Password),
	}
}

// Validate checks required fields and the email syntax.
func (d CredentialsDTO) Validate() error {
	if err := validation.ValidateCredentials(d.Email, d.Password); err != nil {
		return err
	}
	return nil
}
