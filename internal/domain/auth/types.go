package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSalesPerson Role = "salesPerson"
	RoleCustomer    Role = "customer"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSalesPerson, RoleCustomer:
		return true
	}
	return false
}

// Profile is the identity shape delivered by the Oracle SSO provider.
// Both callback carriers (inline payload and code exchange) produce it.
type Profile struct {
	ID             string `json:"_id"`
	SalesPersonID  string `json:"salesperson_id"`
	Name           string `json:"salesperson_name"`
	EmployeeNumber string `json:"employee_number"`
	Registered     bool   `json:"registered"`
}

// Session is the server-side record we keep for an authenticated user.
// ID is an opaque session identifier; Token is the bearer token sent on
// every backend API call.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PersonNumber string    `json:"person_number"`
	Role         Role      `json:"role"`
	Token        string    `json:"token"`
	Registered   bool      `json:"registered"`
	ExpiresAt    time.Time `json:"expires_at"`
}

var (
	// ErrPartialSession is returned when a session is missing its ID or token.
	// A session is either fully absent or fully present; partial sessions are
	// never persisted.
	ErrPartialSession = errors.New("partial session: ID and token are both required")

	// ErrInvalidRole is returned when a session carries a role outside the closed set.
	ErrInvalidRole = errors.New("invalid session role")
)

// Validate enforces the full-session invariant before persistence.
func (s Session) Validate() error {
	if s.ID == "" || s.Token == "" {
		return ErrPartialSession
	}
	if !s.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// Expired reports whether the session expiry has passed.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// IsAdmin reports whether the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
