//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
)

// User is an application account record owned by the backend. The Token field
// is populated only on the sign-in response and is never listed back.
type User struct {
	ID           string          `json:"_id"`
	Email        string          `json:"email"`
	FullName     string          `json:"full_name"`
	Role         domainauth.Role `json:"role"`
	PersonNumber string          `json:"person_number,omitempty"`
	Registered   bool            `json:"registered"`
	Token        string          `json:"token,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateUserRequest carries the fields accepted when creating a user.
type CreateUserRequest struct {
	Email        string          `json:"email"`
	FullName     string          `json:"full_name"`
	Password     string          `json:"password"`
	Role         domainauth.Role `json:"role"`
	PersonNumber string          `json:"person_number,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("user email is required")
	}
	if r.Password == "" {
		return errors.New("user password is required")
	}
	if !r.Role.Valid() {
		return errors.New("invalid user role")
	}
	return nil
}

// UpdateUserRequest carries partial updates; nil fields are left unchanged.
type UpdateUserRequest struct {
	Email        *string          `json:"email,omitempty"`
	FullName     *string          `json:"full_name,omitempty"`
	Role         *domainauth.Role `json:"role,omitempty"`
	PersonNumber *string          `json:"person_number,omitempty"`
	Registered   *bool            `json:"registered,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *UpdateUserRequest) Validate() error {
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		return errors.New("user email cannot be empty")
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("invalid user role")
	}
	return nil
}

// RegisterRequest completes the account for an SSO-known but unregistered
// sales person.
type RegisterRequest struct {
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *RegisterRequest) Validate() error {
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// SignInRequest carries local sign-in credentials.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *SignInRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
