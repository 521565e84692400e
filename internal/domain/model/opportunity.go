//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// OpportunityStage tracks pipeline progression for an opportunity.
type OpportunityStage string

const (
	OpportunityStageProspecting OpportunityStage = "prospecting"
	OpportunityStageProposal    OpportunityStage = "proposal"
	OpportunityStageNegotiation OpportunityStage = "negotiation"
	OpportunityStageWon         OpportunityStage = "won"
	OpportunityStageLost        OpportunityStage = "lost"
)

// Valid reports whether the stage is supported.
func (s OpportunityStage) Valid() bool {
	switch s {
	case OpportunityStageProspecting, OpportunityStageProposal,
		OpportunityStageNegotiation, OpportunityStageWon, OpportunityStageLost:
		return true
	default:
		return false
	}
}

// Opportunity is a qualified deal in the pipeline, owned by the backend.
type Opportunity struct {
	ID         string           `json:"_id"`
	Title      string           `json:"title"`
	CustomerID string           `json:"customer_id"`
	LeadID     string           `json:"lead_id,omitempty"`
	Stage      OpportunityStage `json:"stage"`
	Amount     float64          `json:"amount"`
	Currency   string           `json:"currency"`
	OwnerID    string           `json:"owner_id"`
	CloseDate  *time.Time       `json:"close_date,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CreateOpportunityRequest carries the fields accepted when creating an opportunity.
type CreateOpportunityRequest struct {
	Title      string           `json:"title"`
	CustomerID string           `json:"customer_id"`
	LeadID     string           `json:"lead_id,omitempty"`
	Stage      OpportunityStage `json:"stage,omitempty"`
	Amount     float64          `json:"amount"`
	Currency   string           `json:"currency,omitempty"`
	OwnerID    string           `json:"owner_id,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *CreateOpportunityRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("opportunity title is required")
	}
	if r.Amount < 0 {
		return errors.New("opportunity amount cannot be negative")
	}
	if r.Stage != "" && !r.Stage.Valid() {
		return errors.New("invalid opportunity stage")
	}
	return nil
}

// UpdateOpportunityRequest carries partial updates; nil fields are left unchanged.
type UpdateOpportunityRequest struct {
	Title     *string           `json:"title,omitempty"`
	Stage     *OpportunityStage `json:"stage,omitempty"`
	Amount    *float64          `json:"amount,omitempty"`
	Currency  *string           `json:"currency,omitempty"`
	OwnerID   *string           `json:"owner_id,omitempty"`
	CloseDate *time.Time        `json:"close_date,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *UpdateOpportunityRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("opportunity title cannot be empty")
	}
	if r.Amount != nil && *r.Amount < 0 {
		return errors.New("opportunity amount cannot be negative")
	}
	if r.Stage != nil && !r.Stage.Valid() {
		return errors.New("invalid opportunity stage")
	}
	return nil
}
