//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// LeadStatus tracks where a lead sits in the funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusDropped   LeadStatus = "dropped"
)

// Valid reports whether the lead status is supported.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusDropped:
		return true
	default:
		return false
	}
}

// Lead is a prospective customer record owned by the backend.
type Lead struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Company     string     `json:"company"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Status      LeadStatus `json:"status"`
	AssignedTo  string     `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Description string     `json:"description,omitempty"`
}

// CreateLeadRequest carries the fields accepted when creating a lead.
type CreateLeadRequest struct {
	Name        string     `json:"name"`
	Company     string     `json:"company"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Status      LeadStatus `json:"status,omitempty"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("lead name is required")
	}
	if r.Status != "" && !r.Status.Valid() {
		return errors.New("invalid lead status")
	}
	return nil
}

// UpdateLeadRequest carries partial updates; nil fields are left unchanged.
type UpdateLeadRequest struct {
	Name        *string     `json:"name,omitempty"`
	Company     *string     `json:"company,omitempty"`
	Email       *string     `json:"email,omitempty"`
	Phone       *string     `json:"phone,omitempty"`
	Status      *LeadStatus `json:"status,omitempty"`
	AssignedTo  *string     `json:"assigned_to,omitempty"`
	Description *string     `json:"description,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *UpdateLeadRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("lead name cannot be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("invalid lead status")
	}
	return nil
}
