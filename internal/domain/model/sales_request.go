//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// SalesRequestStatus tracks approval state for a sales request.
type SalesRequestStatus string

const (
	SalesRequestStatusPending  SalesRequestStatus = "pending"
	SalesRequestStatusApproved SalesRequestStatus = "approved"
	SalesRequestStatusRejected SalesRequestStatus = "rejected"
)

// Valid reports whether the status is supported.
func (s SalesRequestStatus) Valid() bool {
	switch s {
	case SalesRequestStatusPending, SalesRequestStatusApproved, SalesRequestStatusRejected:
		return true
	default:
		return false
	}
}

// SalesRequestItem is a single requested line.
type SalesRequestItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SalesRequest is a customer request awaiting conversion into an order.
type SalesRequest struct {
	ID         string             `json:"_id"`
	CustomerID string             `json:"customer_id"`
	Items      []SalesRequestItem `json:"items"`
	Status     SalesRequestStatus `json:"status"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CreateSalesRequestRequest carries the fields accepted when creating a sales request.
type CreateSalesRequestRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []SalesRequestItem `json:"items"`
	Notes      string             `json:"notes,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *CreateSalesRequestRequest) Validate() error {
	if strings.TrimSpace(r.CustomerID) == "" {
		return errors.New("customer ID is required")
	}
	if len(r.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for _, it := range r.Items {
		if it.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
	}
	return nil
}

// UpdateSalesRequestRequest carries partial updates; nil fields are left unchanged.
type UpdateSalesRequestRequest struct {
	Items  []SalesRequestItem  `json:"items,omitempty"`
	Status *SalesRequestStatus `json:"status,omitempty"`
	Notes  *string             `json:"notes,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *UpdateSalesRequestRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("invalid sales request status")
	}
	for _, it := range r.Items {
		if it.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
	}
	return nil
}
